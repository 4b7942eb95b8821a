package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cats(ids ...string) []Category {
	out := make([]Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, Category{ID: id, Name: id})
	}
	return out
}

func TestGenerateWideTileFirst(t *testing.T) {
	pattern := Pattern{"a": {W: 2, H: 1}, "b": {W: 1, H: 1}, "c": {W: 1, H: 1}}

	l, err := Generate(cats("a", "b", "c"), pattern, 2)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"a", "a"}, {"b", "c"}}, l.Grid)
	assert.Equal(t, 2, l.Rows())
	assert.Equal(t, []Placement{
		{CategoryID: "a", X: 0, Y: 0, W: 2, H: 1},
		{CategoryID: "b", X: 0, Y: 1, W: 1, H: 1},
		{CategoryID: "c", X: 1, Y: 1, W: 1, H: 1},
	}, l.Placements)
}

func TestGenerateIsOrderSensitive(t *testing.T) {
	pattern := Pattern{"a": {W: 2, H: 1}}

	l, err := Generate(cats("b", "a", "c"), pattern, 2)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"b", "c"}, {"a", "a"}}, l.Grid)
}

func TestGenerateSwappedInputSwapsCells(t *testing.T) {
	pattern := Pattern{"b": {W: 1, H: 1}, "c": {W: 1, H: 1}}

	bc, err := Generate(cats("b", "c"), pattern, 2)
	require.NoError(t, err)
	cb, err := Generate(cats("c", "b"), pattern, 2)
	require.NoError(t, err)

	assert.Equal(t, "b", bc.Grid[0][0])
	assert.Equal(t, "c", cb.Grid[0][0])
	assert.Equal(t, Grid{{"c", "b"}}, cb.Grid)
	assert.Equal(t, bc.Rows(), cb.Rows())
}

func TestGenerateAcceptsMaxColumns(t *testing.T) {
	l, err := Generate(cats("a"), nil, MaxColumns)
	require.NoError(t, err)
	require.Equal(t, 1, l.Rows())
	assert.Len(t, l.Grid[0], MaxColumns)
}

func TestGenerateFillsHolesLeftByTallTiles(t *testing.T) {
	pattern := Pattern{"tall": {W: 1, H: 2}, "wide": {W: 2, H: 1}}

	l, err := Generate(cats("tall", "x", "wide", "y"), pattern, 3)
	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"tall", "x", "y"},
		{"tall", "wide", "wide"},
	}, l.Grid)
	assert.Equal(t, Placement{CategoryID: "x", X: 1, Y: 0, W: 1, H: 1}, l.Placements[1])
}

func TestGenerateMissingPatternEntryIsSingleCell(t *testing.T) {
	l, err := Generate(cats("unknown"), Pattern{}, 2)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"unknown", ""}}, l.Grid)

	l, err = Generate(cats("a", "b", "c"), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"a", "b"}, {"c", ""}}, l.Grid)
}

func TestGenerateEmptyInput(t *testing.T) {
	l, err := Generate(nil, Pattern{"a": {W: 2, H: 2}}, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Rows())
	assert.Empty(t, l.Placements)
	assert.Equal(t, 4, l.Columns)
}

func TestGenerateCoversEachFootprintExactly(t *testing.T) {
	patterns := DefaultPatterns()
	input := cats("vegetables", "fruits", "dairy", "meat", "seafood", "grains", "beverages", "snacks", "spices")

	for _, columns := range []int{2, 3, 4, 6} {
		l, err := Generate(input, patterns[PatternA], columns)
		require.NoError(t, err)

		counts := map[string]int{}
		for _, row := range l.Grid {
			require.Len(t, row, columns)
			for _, id := range row {
				if id != "" {
					counts[id]++
				}
			}
		}
		require.Len(t, l.Placements, len(input))
		for _, p := range l.Placements {
			fp := patterns[PatternA].Footprint(p.CategoryID)
			assert.Equal(t, fp.W*fp.H, counts[p.CategoryID], "%s in %d columns", p.CategoryID, columns)
			assert.LessOrEqual(t, p.X+p.W, columns)
			for dy := 0; dy < p.H; dy++ {
				for dx := 0; dx < p.W; dx++ {
					assert.Equal(t, p.CategoryID, l.Grid[p.Y+dy][p.X+dx])
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	pattern := DefaultPatterns()[PatternB]
	input := cats("vegetables", "meat", "frozen", "bakery", "fruits", "condiments")

	first, err := Generate(input, pattern, 3)
	require.NoError(t, err)
	second, err := Generate(input, pattern, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateColumnCountIsConfigurable(t *testing.T) {
	input := cats("a", "b", "c", "d")

	l, err := Generate(input, nil, 4)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"a", "b", "c", "d"}}, l.Grid)

	l, err = Generate(input, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, l.Rows())
}

func TestGenerateConfigErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    []Category
		pattern  Pattern
		columns  int
		category string
	}{
		{"too wide", cats("a", "big"), Pattern{"big": {W: 3, H: 1}}, 2, "big"},
		{"duplicate", cats("a", "b", "a"), nil, 2, "a"},
		{"zero width", cats("a"), Pattern{"a": {W: 0, H: 1}}, 2, "a"},
		{"negative height", cats("a"), Pattern{"a": {W: 1, H: -1}}, 2, "a"},
		{"no columns", cats("a"), nil, 0, ""},
		{"negative columns", nil, nil, -2, ""},
		{"too many columns", cats("a"), nil, MaxColumns + 1, ""},
		{"huge columns", cats("a"), nil, 1 << 40, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.input, tc.pattern, tc.columns)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.category, cfgErr.CategoryID)
		})
	}
}
