package dataset

import (
	"path/filepath"
	"sync"

	"github.com/KaramelBytes/hrdash/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Loader memoizes Load by path for its own lifetime. Concurrent first loads of
// the same path share one read: the first caller reads, the rest wait for its
// result. Failed loads are not cached, and neither is a read that was
// invalidated while it ran.
type Loader struct {
	opt Options
	log *logging.Logger

	mu     sync.RWMutex
	tables map[string]*Table
	gens   map[string]uint64 // bumped by Invalidate
	epoch  uint64            // bumped by Reset
	group  singleflight.Group

	// read is swapped in tests to count file reads.
	read func(path string, opt Options) (*Table, error)
}

// NewLoader creates an empty cache.
func NewLoader(opt Options, log *logging.Logger) *Loader {
	return &Loader{
		opt:    opt,
		log:    log,
		tables: make(map[string]*Table),
		gens:   make(map[string]uint64),
		read:   Load,
	}
}

func cacheKey(path string) string { return filepath.Clean(path) }

// Load returns the cached table for path, reading it on first use.
func (l *Loader) Load(path string) (*Table, error) {
	key := cacheKey(path)
	l.mu.RLock()
	t, ok := l.tables[key]
	l.mu.RUnlock()
	if ok {
		l.log.Debugf("dataset cache hit: %s", key)
		return t, nil
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		l.mu.RLock()
		cached, ok := l.tables[key]
		gen, epoch := l.gens[key], l.epoch
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}
		l.log.Infof("loading dataset: %s", key)
		t, err := l.read(path, l.opt)
		if err != nil {
			l.log.Warnf("dataset load failed: %v", err)
			return nil, err
		}
		l.mu.Lock()
		current := l.gens[key] == gen && l.epoch == epoch
		if current {
			l.tables[key] = t
		}
		l.mu.Unlock()
		if !current {
			l.log.Debugf("dataset %s invalidated during load; result not cached", key)
		}
		rows, cols := t.Shape()
		l.log.Infof("loaded %s rows=%d cols=%d", t.Name, rows, cols)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.log.Debugf("dataset load shared between concurrent callers: %s", key)
	}
	return v.(*Table), nil
}

// Cached reports whether path is currently memoized.
func (l *Loader) Cached(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.tables[cacheKey(path)]
	return ok
}

// Invalidate drops the cached table for path so the next Load re-reads it.
func (l *Loader) Invalidate(path string) {
	key := cacheKey(path)
	l.mu.Lock()
	delete(l.tables, key)
	l.gens[key]++
	l.mu.Unlock()
	l.group.Forget(key)
	l.log.Debugf("dataset cache invalidated: %s", key)
}

// Reset drops every cached table.
func (l *Loader) Reset() {
	l.mu.Lock()
	for k := range l.tables {
		delete(l.tables, k)
		l.group.Forget(k)
	}
	l.epoch++
	l.mu.Unlock()
}
