package qrels

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Topic is a query with its identifier and optional group label.
type Topic struct {
	ID   string
	Text string

	// Group is the text between the first pair of square brackets in Text,
	// e.g. "APV 993 (LINE01-PROF01)". Empty when Text has none.
	Group string
}

var groupPattern = regexp.MustCompile(`\[(.*?)\]`)

// NewTopic creates a topic and extracts its group.
func NewTopic(id, text string) Topic {
	t := Topic{ID: id, Text: text}
	if m := groupPattern.FindStringSubmatch(text); m != nil {
		t.Group = m[1]
	}
	return t
}

// LoadTopics reads a topics file holding a single object of query ID to
// query text. Files ending in ".yaml" or ".yml" are parsed as YAML,
// everything else as JSON. Topics are sorted by group, then by ID.
func LoadTopics(fs afero.Fs, path string) ([]Topic, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading topics file: %w", err)
	}

	var raw map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing topics file %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("error parsing topics file %s: not an object", path)
	}

	topics := make([]Topic, 0, len(raw))
	for id, text := range raw {
		topics = append(topics, NewTopic(id, text))
	}
	SortTopics(topics)
	return topics, nil
}

// SortTopics orders topics by group, then by ID.
func SortTopics(topics []Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Group != topics[j].Group {
			return topics[i].Group < topics[j].Group
		}
		return topics[i].ID < topics[j].ID
	})
}

// Texts returns the query text of each topic.
func Texts(topics []Topic) []string {
	texts := make([]string, len(topics))
	for i, t := range topics {
		texts[i] = t.Text
	}
	return texts
}

// FilterJudged keeps the topics with at least one judged document in pool.
func FilterJudged(topics []Topic, pool *Pool) []Topic {
	var judged []Topic
	for _, t := range topics {
		if pool.Has(t.ID) {
			judged = append(judged, t)
		}
	}
	return judged
}
