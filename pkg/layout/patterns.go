package layout

import (
	"sort"
	"sync"
)

const (
	PatternA = "layout-a"
	PatternB = "layout-b"
)

// DefaultPatterns returns fresh copies of the built-in patterns.
func DefaultPatterns() map[string]Pattern {
	return map[string]Pattern{
		PatternA: {
			"vegetables": {W: 2, H: 1},
			"fruits":     {W: 1, H: 2},
			"dairy":      {W: 1, H: 1},
			"meat":       {W: 1, H: 1},
			"seafood":    {W: 1, H: 1},
			"grains":     {W: 2, H: 1},
			"beverages":  {W: 1, H: 1},
			"snacks":     {W: 1, H: 1},
		},
		PatternB: {
			"vegetables": {W: 1, H: 2},
			"fruits":     {W: 1, H: 1},
			"dairy":      {W: 1, H: 1},
			"meat":       {W: 2, H: 1},
			"frozen":     {W: 1, H: 2},
			"condiments": {W: 1, H: 1},
			"bakery":     {W: 2, H: 1},
		},
	}
}

// PatternTable is the set of named patterns the presentation layer can choose from.
// It is safe for concurrent use.
type PatternTable struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
}

func NewPatternTable(overrides map[string]Pattern) *PatternTable {
	t := &PatternTable{patterns: DefaultPatterns()}
	for name, p := range overrides {
		t.Set(name, p)
	}
	return t
}

func (p Pattern) clone() Pattern {
	cp := make(Pattern, len(p))
	for id, fp := range p {
		cp[id] = fp
	}
	return cp
}

func (t *PatternTable) Set(name string, p Pattern) {
	cp := p.clone()
	t.mu.Lock()
	t.patterns[name] = cp
	t.mu.Unlock()
}

// Lookup returns a copy; writes to it never reach the table.
func (t *PatternTable) Lookup(name string) (Pattern, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.patterns[name]
	if !ok {
		return nil, false
	}
	return p.clone(), true
}

func (t *PatternTable) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.patterns))
	for name := range t.patterns {
		names = append(names, name)
	}
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}
