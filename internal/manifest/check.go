package manifest

import (
	"os"
	"path/filepath"
	"strings"
)

// MissingFiles returns the file references of d that do not exist under
// baseDir, each once, in entry order. Absolute IRIs are skipped.
func MissingFiles(d *Document, baseDir string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, f := range d.Files() {
		if seen[f] || strings.Contains(f, "://") {
			continue
		}
		seen[f] = true
		if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(f))); err != nil {
			missing = append(missing, f)
		}
	}
	return missing
}
