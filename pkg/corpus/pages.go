package corpus

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
)

// PageCounter counts the pages of a document. ok is false when the count is
// unavailable.
type PageCounter interface {
	CountPages(path string) (pages int, ok bool)
}

// PDFCounter counts PDF pages with pdfcpu.
type PDFCounter struct {
	fs     afero.Fs
	logger hclog.Logger
}

var _ PageCounter = (*PDFCounter)(nil)

var disableConfigDir sync.Once

// NewPDFCounter creates a PDF page counter reading from fs, which defaults
// to the OS filesystem.
func NewPDFCounter(fs afero.Fs, logger hclog.Logger) *PDFCounter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	// pdfcpu otherwise writes a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	return &PDFCounter{
		fs:     fs,
		logger: logger.Named("pdf-counter"),
	}
}

// CountPages returns the number of pages in the PDF at path. Any read or
// parse error is logged and reported as unavailable.
func (c *PDFCounter) CountPages(path string) (int, bool) {
	n, err := c.count(path)
	if err != nil {
		c.logger.Error("error counting pages", "path", path, "error", err)
		return 0, false
	}
	return n, true
}

func (c *PDFCounter) count(path string) (n int, err error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err = api.PageCount(f, conf)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative page count %d", n)
	}
	return n, nil
}
