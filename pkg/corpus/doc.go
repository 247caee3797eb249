// Package corpus lists the source documents of a collection and counts
// their pages.
//
// Page counting is the one place where failures are not propagated: a file
// that cannot be read or parsed is logged and reported as unavailable, so a
// single bad document never aborts a scan.
package corpus
