package sink

import (
	"os"
	"path/filepath"

	errs "github.com/matzehuels/netviz/pkg/errors"
)

// DefaultPath is where the HTML page is written when no path is given.
const DefaultPath = "graph_files/graph.html"

// WriteFile writes data to path, creating parent directories as needed.
// Failures are returned as IO_ERROR wrapping the OS error.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeIO, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// SiblingPath returns path with its extension replaced by ext, so that
// "out/graph.html" and "svg" give "out/graph.svg".
func SiblingPath(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + "." + ext
}
