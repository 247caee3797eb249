package corpus

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"a.pdf", "b.pdf", "bad.pdf", "skip.txt"} {
		require.NoError(t, afero.WriteFile(fs, "/docs/"+name, []byte("x"), 0o644))
	}

	s := NewScanner(ScannerConfig{
		Fs: fs,
		Counter: fakeCounter{
			"/docs/a.pdf": 2,
			"/docs/b.pdf": 0,
		},
	})

	res, err := s.Scan("/docs", ".pdf")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a.pdf": 2, "b.pdf": 0}, res.Pages)
	assert.Equal(t, []string{"/docs/bad.pdf"}, res.Skipped)
}

func TestScanner_PDFCounterDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/report.pdf", minimalPDF(4), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/corrupt.pdf", []byte("%PDF-1.4 nope"), 0o644))

	res, err := NewScanner(ScannerConfig{Fs: fs}).Scan("/docs", ".pdf")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"report.pdf": 4}, res.Pages)
	assert.Equal(t, []string{"/docs/corrupt.pdf"}, res.Skipped)
}

func TestScanner_NotDirectory(t *testing.T) {
	s := NewScanner(ScannerConfig{Fs: afero.NewMemMapFs(), Counter: fakeCounter{}})
	_, err := s.Scan("/nope", ".pdf")
	assert.True(t, errors.Is(err, ErrNotDirectory))
}
