package corpus

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when a folder argument is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ListFiles returns the immediate children of folder whose names end with
// suffix, joined with folder and sorted by name. The match is a
// case-sensitive suffix comparison, not an extension or glob match.
// Subdirectories are never returned.
func ListFiles(fs afero.Fs, folder, suffix string) ([]string, error) {
	info, err := fs.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: the provided path %q is not a directory", ErrNotDirectory, folder)
	}

	entries, err := afero.ReadDir(fs, folder)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", folder, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	return files, nil
}
