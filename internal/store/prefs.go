package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const prefsFileName = "prefs.json"

// Prefs is a flat string key-value store backed by <dir>/prefs.json.
// Missing or corrupt files read as empty.
type Prefs struct {
	mu    sync.Mutex
	store Store
	vals  map[string]string
}

func (s Store) prefsPath() string {
	return filepath.Join(s.Dir, prefsFileName)
}

// OpenPrefs loads the preference file. A Store without a Dir yields an
// in-memory Prefs whose writes are dropped.
func (s Store) OpenPrefs() (*Prefs, error) {
	p := &Prefs{store: s, vals: map[string]string{}}
	if strings.TrimSpace(s.Dir) == "" {
		return p, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.prefsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, err
	}
	var vals map[string]string
	if err := json.Unmarshal(b, &vals); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return p, nil
	}
	if vals != nil {
		p.vals = vals
	}
	return p, nil
}

func (p *Prefs) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.vals[key]
	return v, ok
}

// GetOr returns def when key is absent.
func (p *Prefs) GetOr(key, def string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

// Set stores one value and writes the file before returning.
func (p *Prefs) Set(key, value string) error {
	return p.SetMany(map[string]string{key: value})
}

func (p *Prefs) SetMany(kv map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range kv {
		p.vals[k] = v
	}
	return p.flushLocked()
}

func (p *Prefs) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.vals))
	for k := range p.vals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (p *Prefs) flushLocked() error {
	if strings.TrimSpace(p.store.Dir) == "" {
		return nil
	}
	if err := p.store.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p.vals, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(p.store.Dir, "prefs.json.*.tmp", p.store.prefsPath(), b, 0o644)
}
