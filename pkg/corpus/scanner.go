package corpus

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// Scanner builds the page counts of every document in a folder.
type Scanner struct {
	fs      afero.Fs
	counter PageCounter
	logger  hclog.Logger
}

// ScannerConfig holds configuration for a Scanner.
type ScannerConfig struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// Counter defaults to a PDFCounter on Fs.
	Counter PageCounter

	Logger hclog.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Counter == nil {
		cfg.Counter = NewPDFCounter(cfg.Fs, cfg.Logger)
	}
	return &Scanner{
		fs:      cfg.Fs,
		counter: cfg.Counter,
		logger:  cfg.Logger.Named("corpus-scanner"),
	}
}

// ScanResult holds the page counts of a scanned folder.
type ScanResult struct {
	// Pages maps each document's base name to its page count.
	Pages map[string]int

	// Skipped lists the paths whose page count was unavailable.
	Skipped []string
}

// Scan lists the documents in folder ending with suffix and counts their
// pages. Documents whose count is unavailable are skipped.
func (s *Scanner) Scan(folder, suffix string) (*ScanResult, error) {
	files, err := ListFiles(s.fs, folder, suffix)
	if err != nil {
		return nil, err
	}

	res := &ScanResult{Pages: make(map[string]int, len(files))}
	for _, path := range files {
		n, ok := s.counter.CountPages(path)
		if !ok {
			s.logger.Warn("skipping document with unknown page count", "path", path)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		res.Pages[filepath.Base(path)] = n
	}

	s.logger.Info("scanned corpus",
		"folder", folder,
		"documents", len(res.Pages),
		"skipped", len(res.Skipped),
	)
	return res, nil
}
