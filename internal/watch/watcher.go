package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/shexspec/mfgen/internal/diag"
	"github.com/shexspec/mfgen/internal/suite"
)

// DefaultDebounce is how long a directory must be quiet before it is
// regenerated.
const DefaultDebounce = 200 * time.Millisecond

// Handler regenerates one suite.
type Handler func(ctx context.Context, s suite.Suite) error

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *zap.Logger
	// Ignore lists files the handler writes besides each suite's
	// OutputPath. Events on them never trigger a regeneration.
	Ignore []string
}

// Watcher watches the directories of a set of suites.
type Watcher struct {
	fsw      *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	log      *zap.Logger

	byDir  map[string]suite.Suite
	ignore map[string]bool

	pendingMu sync.Mutex
	pending   map[string]bool // suite dir → changed since last flush
}

// New starts watching the directories of suites. Call Run to process
// events.
func New(suites []suite.Suite, handler Handler, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		handler:  handler,
		debounce: opts.Debounce,
		log:      diag.OrNop(opts.Logger),
		byDir:    make(map[string]suite.Suite, len(suites)),
		ignore:   make(map[string]bool),
		pending:  make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, path := range opts.Ignore {
		w.ignore[absPath(path)] = true
	}
	for _, s := range suites {
		if s.OutputPath != "" {
			w.ignore[absPath(s.OutputPath)] = true
		}
		dir := filepath.Clean(s.Dir)
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		w.byDir[dir] = s
		w.log.Debug("watching directory", zap.String("suite", s.Name), zap.String("dir", dir))
	}
	return w, nil
}

// Run processes events until ctx is canceled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handleEvent records the suite touched by event and reports whether it is
// relevant.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	dir := filepath.Dir(filepath.Clean(event.Name))
	s, ok := w.byDir[dir]
	if !ok {
		return false
	}
	name := filepath.Base(event.Name)
	// Our own output and its temp files.
	if strings.HasPrefix(name, ".") || w.ignore[absPath(event.Name)] {
		return false
	}

	w.pendingMu.Lock()
	w.pending[dir] = true
	w.pendingMu.Unlock()

	w.log.Debug("change detected", zap.String("suite", s.Name), zap.String("file", name), zap.Stringer("op", event.Op))
	return true
}

// flush regenerates every suite with pending changes.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	dirs := make([]string, 0, len(w.pending))
	for d := range w.pending {
		dirs = append(dirs, d)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()
	slices.Sort(dirs)

	for _, d := range dirs {
		if ctx.Err() != nil {
			return
		}
		s := w.byDir[d]
		start := time.Now()
		if err := w.handler(ctx, s); err != nil {
			w.log.Warn("regeneration failed", zap.String("suite", s.Name), zap.Error(err))
			continue
		}
		w.log.Info("regenerated", zap.String("suite", s.Name), zap.Duration("took", time.Since(start)))
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
