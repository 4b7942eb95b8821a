package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPatternsAreCopies(t *testing.T) {
	p := DefaultPatterns()
	p[PatternA]["vegetables"] = Footprint{W: 9, H: 9}

	assert.Equal(t, Footprint{W: 2, H: 1}, DefaultPatterns()[PatternA]["vegetables"])
}

func TestPatternTableOverrides(t *testing.T) {
	table := NewPatternTable(map[string]Pattern{
		"layout-c": {"dairy": {W: 2, H: 2}},
		PatternB:   {"meat": {W: 1, H: 1}},
	})

	assert.Equal(t, []string{PatternA, PatternB, "layout-c"}, table.Names())

	c, ok := table.Lookup("layout-c")
	require.True(t, ok)
	assert.Equal(t, Footprint{W: 2, H: 2}, c.Footprint("dairy"))

	b, ok := table.Lookup(PatternB)
	require.True(t, ok)
	assert.Equal(t, Footprint{W: 1, H: 1}, b.Footprint("meat"))
	assert.Equal(t, Footprint{W: 1, H: 1}, b.Footprint("bakery"), "override replaces the whole pattern")

	_, ok = table.Lookup("layout-z")
	assert.False(t, ok)
}

func TestPatternTableSetCopiesInput(t *testing.T) {
	table := NewPatternTable(nil)
	p := Pattern{"dairy": {W: 2, H: 1}}
	table.Set("custom", p)
	p["dairy"] = Footprint{W: 5, H: 5}

	got, ok := table.Lookup("custom")
	require.True(t, ok)
	assert.Equal(t, Footprint{W: 2, H: 1}, got.Footprint("dairy"))
}

func TestPatternTableLookupReturnsCopy(t *testing.T) {
	table := NewPatternTable(nil)

	got, ok := table.Lookup(PatternA)
	require.True(t, ok)
	got["vegetables"] = Footprint{W: 9, H: 9}
	got["extra"] = Footprint{W: 1, H: 1}

	again, ok := table.Lookup(PatternA)
	require.True(t, ok)
	assert.Equal(t, Footprint{W: 2, H: 1}, again.Footprint("vegetables"))
	_, present := again["extra"]
	assert.False(t, present)
}
