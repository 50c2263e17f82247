package chartful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteByName(t *testing.T) {
	p, err := PaletteByName("category20")
	require.NoError(t, err)
	assert.Equal(t, "Category20", p.Name())
	assert.Equal(t, PaletteCategorical, p.Kind())
	assert.Equal(t, 20, p.Len())
	assert.Equal(t, "#1f77b4", p.Hexes()[0])

	_, err = PaletteByName("no-such-palette")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color palette")
}

func TestPaletteReverseAndSlice(t *testing.T) {
	p, err := PaletteByName("Blues")
	require.NoError(t, err)
	rev := p.Reverse()
	assert.Equal(t, p.Hexes()[0], rev.Hexes()[p.Len()-1])

	sliced, err := p.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, p.Hexes()[1:3], sliced.Hexes())

	_, err = p.Slice(3, 1)
	require.Error(t, err)
	_, err = p.Slice(0, p.Len()+1)
	require.Error(t, err)
}

func TestPaletteExpand(t *testing.T) {
	p, err := NewColorPalette("bw", PaletteSequential, []string{"#000000", "#ffffff"})
	require.NoError(t, err)

	expanded := p.Expand(5)
	require.Equal(t, 5, expanded.Len())
	hexes := expanded.Hexes()
	assert.Equal(t, "#000000", hexes[0])
	assert.Equal(t, "#ffffff", hexes[4])

	// Already large enough: unchanged.
	assert.Equal(t, p.Hexes(), p.Expand(2).Hexes())
}

func TestPaletteShift(t *testing.T) {
	p, err := NewColorPalette("g", PaletteSequential, []string{"#000000"})
	require.NoError(t, err)
	full := p.Shift(mustColor("white"), 100)
	assert.Equal(t, "#ffffff", full.Hexes()[0])
	none := p.Shift(mustColor("white"), 1)
	assert.Equal(t, "#000000", none.Hexes()[0])
}

func TestPaletteSort(t *testing.T) {
	p, err := NewColorPalette("s", PaletteCategorical, []string{"#ffffff", "#000000", "#808080"})
	require.NoError(t, err)
	sorted := p.SortByLuminance(true)
	assert.Equal(t, []string{"#000000", "#808080", "#ffffff"}, sorted.Hexes())
}

func TestNewColorPaletteBadColor(t *testing.T) {
	_, err := NewColorPalette("bad", PaletteCategorical, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `palette "bad"`)
}
