package projection

import (
	"os"
	"path/filepath"
	"sync"
)

// Prober answers file-existence questions relative to a base directory. It
// caches answers and is safe for concurrent use.
type Prober struct {
	base string

	mu    sync.Mutex
	cache map[string]bool
	stat  func(string) (os.FileInfo, error)
}

// NewProber returns a Prober rooted at base.
func NewProber(base string) *Prober {
	return &Prober{base: base, cache: make(map[string]bool), stat: os.Stat}
}

// Path returns the filesystem path that rel refers to.
func (p *Prober) Path(rel string) string {
	return filepath.Join(p.base, filepath.FromSlash(rel))
}

// Exists reports whether rel names an existing file under the base
// directory. Absolute IRIs point outside the suite and are not probed.
func (p *Prober) Exists(rel string) bool {
	if isAbsolute(rel) {
		return true
	}
	path := p.Path(rel)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ok, seen := p.cache[path]; seen {
		return ok
	}
	_, err := p.stat(path)
	ok := err == nil
	p.cache[path] = ok
	return ok
}
