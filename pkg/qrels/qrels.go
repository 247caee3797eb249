// Package qrels reads and writes TREC relevance judgments and resolves the
// judged document IDs back to source pages.
package qrels

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Judgment is one line of a qrels file:
//
//	{query_id} {iteration} {doc_id} {relevance} [comment...]
type Judgment struct {
	QueryID   string
	Iteration string
	DocID     string
	Relevance int
	Comment   string
}

// Relevant returns true if the document was judged relevant.
func (j Judgment) Relevant() bool {
	return j.Relevance > 0
}

// String renders the judgment as a qrels line without the newline.
func (j Judgment) String() string {
	iter := j.Iteration
	if iter == "" {
		iter = "0"
	}
	line := fmt.Sprintf("%s %s %s %d", j.QueryID, iter, j.DocID, j.Relevance)
	if c := strings.TrimSpace(j.Comment); c != "" {
		line += " " + c
	}
	return line
}

// Parse reads judgments from r. Blank lines and lines with fewer than four
// fields are skipped. Everything after the fourth field is the comment.
func Parse(r io.Reader) ([]Judgment, error) {
	var judgments []Judgment

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}

		rel, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid relevance %q: %w", lineNo, fields[3], err)
		}

		judgments = append(judgments, Judgment{
			QueryID:   fields[0],
			Iteration: fields[1],
			DocID:     fields[2],
			Relevance: rel,
			Comment:   strings.Join(fields[4:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading qrels: %w", err)
	}

	return judgments, nil
}

// Write writes one line per judgment to w.
func Write(w io.Writer, judgments []Judgment) error {
	bw := bufio.NewWriter(w)
	for _, j := range judgments {
		if _, err := bw.WriteString(j.String() + "\n"); err != nil {
			return fmt.Errorf("error writing qrels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing qrels: %w", err)
	}
	return nil
}

// Pool lists the judged documents of each query.
type Pool struct {
	order []string
	docs  map[string][]string
}

// NewPool groups judgments by query. Documents are de-duplicated per query
// and kept in first-seen order; queries are kept in first-seen order too.
func NewPool(judgments []Judgment) *Pool {
	p := &Pool{docs: make(map[string][]string)}
	seen := make(map[string]map[string]bool)

	for _, j := range judgments {
		if _, ok := p.docs[j.QueryID]; !ok {
			p.order = append(p.order, j.QueryID)
			p.docs[j.QueryID] = nil
			seen[j.QueryID] = make(map[string]bool)
		}
		if seen[j.QueryID][j.DocID] {
			continue
		}
		seen[j.QueryID][j.DocID] = true
		p.docs[j.QueryID] = append(p.docs[j.QueryID], j.DocID)
	}
	return p
}

// QueryIDs returns the pooled queries in first-seen order.
func (p *Pool) QueryIDs() []string {
	return append([]string(nil), p.order...)
}

// Docs returns the judged document IDs of queryID.
func (p *Pool) Docs(queryID string) []string {
	return append([]string(nil), p.docs[queryID]...)
}

// Has returns true if queryID has at least one judged document.
func (p *Pool) Has(queryID string) bool {
	return len(p.docs[queryID]) > 0
}

// Len returns the number of pooled queries.
func (p *Pool) Len() int {
	return len(p.order)
}
