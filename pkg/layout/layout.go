// Package layout places category tiles on a fixed-width grid.
//
// Placement is greedy first-fit in row-major order: tiles are taken in the order given
// and each lands at the lowest row, then lowest column, where its whole footprint is free.
// There is no backtracking, so the same input always yields the same grid.
package layout

import (
	"errors"
	"fmt"
)

var ErrConfig = errors.New("layout configuration error")

// MaxColumns bounds the grid width; every row is allocated at full width.
const MaxColumns = 12

// ConfigError is returned before packing starts when the input can never be placed.
type ConfigError struct {
	CategoryID string
	Reason     string
}

func (e *ConfigError) Error() string {
	if e.CategoryID == "" {
		return fmt.Sprintf("layout: %s", e.Reason)
	}
	return fmt.Sprintf("layout: category %q: %s", e.CategoryID, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

type Footprint struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

var defaultFootprint = Footprint{W: 1, H: 1}

// Pattern maps a category id to its footprint in grid cells.
type Pattern map[string]Footprint

// Footprint returns the tile size for id. Categories missing from the pattern
// fall back to a single cell; that is not an error.
func (p Pattern) Footprint(id string) Footprint {
	if f, ok := p[id]; ok {
		return f
	}
	return defaultFootprint
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Icon string `json:"icon,omitempty"`
}

type Placement struct {
	CategoryID string `json:"category_id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
}

// Grid holds the owning category id per cell, "" for empty cells.
type Grid [][]string

type Layout struct {
	Columns    int         `json:"columns"`
	Grid       Grid        `json:"grid"`
	Placements []Placement `json:"placements"`
}

func (l Layout) Rows() int {
	return len(l.Grid)
}

// Generate packs categories into a grid that is columns wide.
func Generate(categories []Category, pattern Pattern, columns int) (Layout, error) {
	if err := validate(categories, pattern, columns); err != nil {
		return Layout{}, err
	}

	out := Layout{
		Columns:    columns,
		Grid:       Grid{},
		Placements: make([]Placement, 0, len(categories)),
	}

	for _, cat := range categories {
		fp := pattern.Footprint(cat.ID)
		x, y := out.Grid.firstFit(fp, columns)
		out.Grid.fill(cat.ID, x, y, fp, columns)
		out.Placements = append(out.Placements, Placement{CategoryID: cat.ID, X: x, Y: y, W: fp.W, H: fp.H})
	}
	return out, nil
}

func validate(categories []Category, pattern Pattern, columns int) error {
	if columns <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("column count must be positive, got %d", columns)}
	}
	if columns > MaxColumns {
		return &ConfigError{Reason: fmt.Sprintf("column count %d exceeds maximum %d", columns, MaxColumns)}
	}
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if _, dup := seen[cat.ID]; dup {
			return &ConfigError{CategoryID: cat.ID, Reason: "duplicate category"}
		}
		seen[cat.ID] = struct{}{}

		fp := pattern.Footprint(cat.ID)
		if fp.W <= 0 || fp.H <= 0 {
			return &ConfigError{CategoryID: cat.ID, Reason: fmt.Sprintf("footprint %dx%d must be positive", fp.W, fp.H)}
		}
		if fp.W > columns {
			return &ConfigError{CategoryID: cat.ID, Reason: fmt.Sprintf("footprint width %d exceeds grid width %d", fp.W, columns)}
		}
	}
	return nil
}

// firstFit scans rows top to bottom. Rows past the end of the grid are empty,
// so the scan stops at the latest at y == len(g).
func (g Grid) firstFit(fp Footprint, columns int) (int, int) {
	for y := 0; ; y++ {
		for x := 0; x+fp.W <= columns; x++ {
			if g.free(x, y, fp) {
				return x, y
			}
		}
	}
}

func (g Grid) free(x, y int, fp Footprint) bool {
	for dy := 0; dy < fp.H; dy++ {
		row := y + dy
		if row >= len(g) {
			return true
		}
		for dx := 0; dx < fp.W; dx++ {
			if g[row][x+dx] != "" {
				return false
			}
		}
	}
	return true
}

func (g *Grid) fill(id string, x, y int, fp Footprint, columns int) {
	for len(*g) < y+fp.H {
		*g = append(*g, make([]string, columns))
	}
	for dy := 0; dy < fp.H; dy++ {
		for dx := 0; dx < fp.W; dx++ {
			(*g)[y+dy][x+dx] = id
		}
	}
}
