// Package enactedby implements the Enacted-By Matcher Pipeline (§4.9): a
// three-tier priority pattern registry (specific-act, powers-clause,
// footnote-fallback) that discovers which primary legislation empowers a
// piece of secondary legislation.
package enactedby

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// PatternType enumerates the three matcher classes of §4.9, grouped and run
// in priority order: specific-act patterns first, then powers-clause; only
// when both yield nothing does footnote-fallback run (§9 "Pattern registry").
type PatternType int

const (
	PatternSpecificAct      PatternType = 1
	PatternPowersClause     PatternType = 2
	PatternFootnoteFallback PatternType = 3
)

// Priority returns the fixed priority associated with a pattern type
// (specific-act=100, powers-clause=50, footnote-fallback=10, §4.9).
func (t PatternType) Priority() int {
	switch t {
	case PatternSpecificAct:
		return 100
	case PatternPowersClause:
		return 50
	case PatternFootnoteFallback:
		return 10
	default:
		return 0
	}
}

// TabledLawID is a {type, year, number} triple a specific-act pattern hit
// resolves to directly (§4.9).
type TabledLawID struct {
	TypeCode string `yaml:"type_code"`
	Year     string `yaml:"year"`
	Number   string `yaml:"number"`
}

func (l TabledLawID) SlashForm() string {
	return fmt.Sprintf("%s/%s/%s", l.TypeCode, l.Year, l.Number)
}

// patternFile is the on-disk YAML shape for a specific-act pattern entry,
// hot-reloadable the way the source registry's format patterns are.
type patternFile struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Regex    string      `yaml:"regex"`
	LawID    TabledLawID `yaml:"law_id"`
}

// Pattern is a single compiled specific-act entry: {pattern_type, id, name,
// priority, pattern, action} per §9.
type Pattern struct {
	ID       string
	Name     string
	Type     PatternType
	Priority int
	Regex    *regexp.Regexp
	LawID    TabledLawID
}

// Registry holds the hot-reloadable specific-act pattern table; the
// powers-clause and footnote-fallback tiers are fixed Go regexes compiled in
// matcher.go, not registry entries (§9 grounds only the specific-act table
// on the teacher's YAML-driven registry — the other two tiers are
// compiled-in per §4.9's own description of them as regex families, not a
// lookup table).
type Registry struct {
	mu       sync.RWMutex
	patterns map[string]*Pattern
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{patterns: make(map[string]*Pattern)}
}

// NewRegistryWithDirectory creates a Registry and loads patterns from dir.
func NewRegistryWithDirectory(dir string) (*Registry, error) {
	r := NewRegistry()
	r.dir = dir
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds or replaces a compiled pattern.
func (r *Registry) Register(p *Pattern) error {
	if p == nil {
		return fmt.Errorf("pattern cannot be nil")
	}
	if p.Regex == nil {
		return fmt.Errorf("pattern %q has no compiled regex", p.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns[p.ID] = p
	return nil
}

// Unregister removes a pattern by id.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patterns[id]; !ok {
		return fmt.Errorf("pattern %q not found", id)
	}
	delete(r.patterns, id)
	return nil
}

// Get returns a pattern by id.
func (r *Registry) Get(id string) (*Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patterns[id]
	return p, ok
}

// List returns every registered specific-act pattern, in no particular order.
func (r *Registry) List() []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Pattern, 0, len(r.patterns))
	for _, p := range r.patterns {
		out = append(out, p)
	}
	return out
}

// LoadDirectory loads every .yaml/.yml file in dir as a specific-act pattern.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, name)); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading enacted-by patterns: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single YAML specific-act pattern file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	re, err := regexp.Compile(pf.Regex)
	if err != nil {
		return fmt.Errorf("compiling regex in %s: %w", path, err)
	}
	return r.Register(&Pattern{
		ID:       pf.ID,
		Name:     pf.Name,
		Type:     PatternSpecificAct,
		Priority: PatternSpecificAct.Priority(),
		Regex:    re,
		LawID:    pf.LawID,
	})
}

// Reload clears and re-loads every pattern from the configured directory.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return nil
	}
	r.mu.Lock()
	r.patterns = make(map[string]*Pattern)
	r.mu.Unlock()
	return r.LoadDirectory(r.dir)
}

// Watch starts watching the pattern directory for changes, reloading on any
// write/create/remove event.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", r.dir, err)
	}
	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case <-r.stopChan:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
					_ = r.Reload()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// StopWatch stops the directory watcher started by Watch.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}
