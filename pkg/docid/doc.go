// Package docid derives short, deterministic identifiers for document pages
// and queries.
//
// # Core Concepts
//
//  1. PageKey: canonical encoding of a (filename, page number) pair as
//     "{filename}-{page}". Filenames are normalized to carry a ".pdf"
//     extension. Decoding splits on the last hyphen, so filenames that
//     contain hyphens survive the round trip.
//
//  2. Document ID: the first N (default 8) lowercase hex characters of the
//     SHA-256 digest of a page key.
//
//  3. Query ID: the first N (default 5) lowercase hex characters of the
//     SHA-256 digest of the raw query text.
//
//  4. Stable UUID: a name-based (v5) UUID of a key or query, used where a
//     globally unique row identity is needed.
//
// # Usage Examples
//
//	key, err := docid.NewPageKey("report", 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	key.String() // "report.pdf-3"
//
//	id, _ := docid.DocumentID("report", 3, docid.DefaultDocumentIDLength)
//	qid := docid.QueryID("what is the rated torque?", docid.DefaultQueryIDLength)
//
//	filename, page, err := docid.DecodeKey("report-with-dash.pdf-3")
//	// "report-with-dash.pdf", 3
//
// Identifiers are truncated digests and are not guaranteed to be unique.
// Callers that build tables from many keys should check for collisions; see
// package mapping.
package docid
