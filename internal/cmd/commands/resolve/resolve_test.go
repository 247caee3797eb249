package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/jsonfile"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/sqlite"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "docmap.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func saveMappings(t *testing.T, dir string) {
	t.Helper()
	docFwd, docRev, err := mapping.BuildDocumentMapping(map[string]int{"a.pdf": 2})
	require.NoError(t, err)
	require.NoError(t, jsonfile.Save(docFwd, docRev,
		filepath.Join(dir, "doc_mapping.json"), filepath.Join(dir, "doc_reverse_mapping.json"), nil))

	qFwd, qRev, err := mapping.BuildQueryMapping([]string{"hello"})
	require.NoError(t, err)
	require.NoError(t, jsonfile.Save(qFwd, qRev,
		filepath.Join(dir, "query_mapping.json"), filepath.Join(dir, "query_reverse_mapping.json"), nil))
}

func newCommand() (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}, ui
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, ``)
	saveMappings(t, dir)

	c, ui := newCommand()
	code := c.Run([]string{"-config", cfgPath, "c220277d", "2cf24", "report-3"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "c220277d\tdocument\ta.pdf\tpage 1")
	assert.Contains(t, out, "2cf24\tquery\thello")
	assert.Contains(t, out, "65765050\tkey\treport.pdf-3")
}

func TestResolve_WithoutSavedMappings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, ``)

	c, ui := newCommand()
	code := c.Run([]string{"-config", cfgPath, "a.pdf-1", "c220277d"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.OutputWriter.String(), "c220277d\tkey\ta.pdf-1")
	assert.Contains(t, ui.ErrorWriter.String(), "c220277d: not a known ID or a combined key")
}

func TestResolve_Catalog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `output {
  catalog = "catalog.db"
}`)

	fwd, rev, err := mapping.BuildDocumentMapping(map[string]int{"manual-v2.pdf": 1})
	require.NoError(t, err)
	catalog, err := sqlite.Open(sqlite.Config{Path: filepath.Join(dir, "catalog.db")})
	require.NoError(t, err)
	require.NoError(t, catalog.Save(ctx, mapping.KindDocument, fwd, rev))
	require.NoError(t, catalog.Close())

	c, ui := newCommand()
	code := c.Run([]string{"-config", cfgPath, fwd["manual-v2.pdf-1"]})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "document\tmanual-v2.pdf\tpage 1")
}

func TestResolve_CatalogLookup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `output {
  catalog = "catalog.db"
}`)
	// The JSON files are not read when a catalog is configured.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc_reverse_mapping.json"), []byte(`[`), 0o644))

	catalog, err := sqlite.Open(sqlite.Config{Path: filepath.Join(dir, "catalog.db")})
	require.NoError(t, err)
	docFwd, docRev, err := mapping.BuildDocumentMapping(map[string]int{"a.pdf": 1})
	require.NoError(t, err)
	require.NoError(t, catalog.Save(ctx, mapping.KindDocument, docFwd, docRev))
	qFwd, qRev, err := mapping.BuildQueryMapping([]string{"hello"})
	require.NoError(t, err)
	require.NoError(t, catalog.Save(ctx, mapping.KindQuery, qFwd, qRev))
	require.NoError(t, catalog.Close())

	c, ui := newCommand()
	code := c.Run([]string{"-config", cfgPath, "c220277d", "2cf24", "ffffffff"})
	assert.Equal(t, 1, code)

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "c220277d\tdocument\ta.pdf\tpage 1")
	assert.Contains(t, out, "2cf24\tquery\thello")
	assert.Contains(t, ui.ErrorWriter.String(), "ffffffff: not a known ID or a combined key")
	assert.NotContains(t, ui.ErrorWriter.String(), "error loading")
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, ``)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc_mapping.json"), []byte(`[`), 0o644))

	t.Run("no arguments", func(t *testing.T) {
		c, ui := newCommand()
		assert.Equal(t, 1, c.Run([]string{"-config", cfgPath}))
		assert.Contains(t, ui.ErrorWriter.String(), "at least one ID or key is required")
	})

	t.Run("corrupt mapping", func(t *testing.T) {
		c, ui := newCommand()
		assert.Equal(t, 1, c.Run([]string{"-config", cfgPath, "abc"}))
		assert.Contains(t, ui.ErrorWriter.String(), "error loading document mapping")
	})
}
