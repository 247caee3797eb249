package corpus

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFCounter_CountPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/one.pdf", minimalPDF(1), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/three.pdf", minimalPDF(3), 0o644))

	c := NewPDFCounter(fs, hclog.NewNullLogger())

	n, ok := c.CountPages("/docs/one.pdf")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = c.CountPages("/docs/three.pdf")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestPDFCounter_OsFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.pdf")
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, minimalPDF(2), 0o644))

	n, ok := NewPDFCounter(nil, nil).CountPages(path)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestPDFCounter_Unavailable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/corrupt.pdf", []byte("this is not a pdf"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/empty.pdf", nil, 0o644))

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Error})
	c := NewPDFCounter(fs, logger)

	for _, path := range []string{"/docs/corrupt.pdf", "/docs/empty.pdf", "/docs/missing.pdf"} {
		t.Run(path, func(t *testing.T) {
			buf.Reset()
			n, ok := c.CountPages(path)
			assert.False(t, ok)
			assert.Equal(t, 0, n)
			assert.Contains(t, buf.String(), "error counting pages")
			assert.Contains(t, buf.String(), path)
		})
	}
}
