package qrels

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopic(t *testing.T) {
	tests := []struct {
		text  string
		group string
	}{
		{"What is the rated torque? [APV 993 (LINE01-PROF01)]", "APV 993 (LINE01-PROF01)"},
		{"[first] and [second]", "first"},
		{"no group", ""},
		{"empty []", ""},
		{"unclosed [bracket", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			topic := NewTopic("1", tt.text)
			assert.Equal(t, tt.group, topic.Group)
			assert.Equal(t, tt.text, topic.Text)
		})
	}
}

func TestLoadTopics(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/topics.json", []byte(`{
  "3": "pump pressure [B]",
  "1": "valve torque [B]",
  "2": "motor speed [A]",
  "4": "no group"
}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/topics.yaml", []byte(
		"\"3\": pump pressure [B]\n\"1\": valve torque [B]\n\"2\": motor speed [A]\n\"4\": no group\n"), 0o644))

	want := []Topic{
		{ID: "4", Text: "no group"},
		{ID: "2", Text: "motor speed [A]", Group: "A"},
		{ID: "1", Text: "valve torque [B]", Group: "B"},
		{ID: "3", Text: "pump pressure [B]", Group: "B"},
	}

	for _, path := range []string{"/topics.json", "/topics.yaml"} {
		t.Run(path, func(t *testing.T) {
			got, err := LoadTopics(fs, path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, []string{"no group", "motor speed [A]", "valve torque [B]", "pump pressure [B]"}, Texts(got))
		})
	}
}

func TestLoadTopics_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`["a"]`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/null.json", []byte(`null`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("- a\n- b\n"), 0o644))

	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{"missing", "/missing.json", "error reading topics file"},
		{"array json", "/bad.json", "error parsing topics file"},
		{"null json", "/null.json", "not an object"},
		{"sequence yaml", "/bad.yml", "error parsing topics file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTopics(fs, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFilterJudged(t *testing.T) {
	topics := []Topic{
		NewTopic("1", "one"),
		NewTopic("2", "two"),
		NewTopic("3", "three"),
	}
	pool := NewPool([]Judgment{{QueryID: "3", DocID: "d"}, {QueryID: "1", DocID: "d"}})

	got := FilterJudged(topics, pool)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}
