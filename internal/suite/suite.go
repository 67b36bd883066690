package suite

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches the manifest of every top-level test directory.
const DefaultPattern = "*/manifest.ttl"

// OutputName is the file name of a projected manifest.
const OutputName = "manifest.jsonld"

// ErrBadPattern is returned for a malformed discovery pattern.
var ErrBadPattern = errors.New("invalid discovery pattern")

// Suite is one test directory of a suite.
type Suite struct {
	Name         string // directory path relative to the suite root, slash separated
	Dir          string
	ManifestPath string
	OutputPath   string
}

// ManifestIRI returns the IRI the manifest is published under, given the
// IRI of the suite root.
func (s Suite) ManifestIRI(suiteIRI string) string {
	if suiteIRI != "" && !strings.HasSuffix(suiteIRI, "/") {
		suiteIRI += "/"
	}
	return suiteIRI + s.Name + "/manifest"
}

// ForManifest describes the test directory holding manifestPath. The suite
// root is taken to be the parent of that directory.
func ForManifest(manifestPath string) (Suite, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return Suite{}, err
	}
	dir := filepath.Dir(abs)
	return Suite{
		Name:         filepath.Base(dir),
		Dir:          dir,
		ManifestPath: abs,
		OutputPath:   filepath.Join(dir, OutputName),
	}, nil
}

// Discover returns the suites under root whose manifest matches pattern,
// sorted by name. An empty pattern selects DefaultPattern.
func Discover(root, pattern string) ([]Suite, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite root is not a directory: %s", root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var result []Suite
	for _, m := range matches {
		dir := path.Dir(m)
		if dir == "." {
			// A manifest at the root has no test directory name.
			continue
		}
		abs := filepath.Join(absRoot, filepath.FromSlash(dir))
		result = append(result, Suite{
			Name:         dir,
			Dir:          abs,
			ManifestPath: filepath.Join(absRoot, filepath.FromSlash(m)),
			OutputPath:   filepath.Join(abs, OutputName),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
