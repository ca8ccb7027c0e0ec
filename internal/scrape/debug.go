package scrape

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

var fileNameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_", "&", "_", "=", "_",
)

// DebugFileName maps a URL to its dump file name, e.g.
// "https://acme.com/about" -> "debug_acme.com_about.txt".
func DebugFileName(targetURL string) string {
	name := strings.TrimPrefix(targetURL, "https://")
	name = strings.TrimPrefix(name, "http://")
	return "debug_" + fileNameReplacer.Replace(name) + ".txt"
}

// DebugWriter dumps the rendered text and HTML source of each browser fetch
// for offline inspection.
type DebugWriter struct {
	dir string
}

// NewDebugWriter creates dir if needed.
func NewDebugWriter(dir string) (*DebugWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "debug: create dir %s", dir)
	}
	return &DebugWriter{dir: dir}, nil
}

// Write stores one dump and returns its path.
func (d *DebugWriter) Write(targetURL, text, source string) (string, error) {
	path := filepath.Join(d.dir, DebugFileName(targetURL))
	content := "=== RENDERED TEXT ===\n" + text + "\n\n=== HTML SOURCE ===\n" + source
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", eris.Wrapf(err, "debug: write %s", path)
	}
	return path, nil
}
