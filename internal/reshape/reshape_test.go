package reshape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartful/table"
)

func TestCompleteGrid(t *testing.T) {
	tbl := table.New("x", "y", "g")
	rows := [][]any{
		{1.0, 10.0, "a"},
		{2.0, 20.0, "a"},
		{2.0, 5.0, "b"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r...))
	}

	series, grid, err := CompleteGrid(tbl, "x", "y", "g", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, grid)
	require.Len(t, series, 2)
	assert.Equal(t, []float64{10, 20}, series[0].Y)
	// b has no observation at x=1: filled with zero.
	assert.Equal(t, []float64{0, 5}, series[1].Y)
}

func TestStack(t *testing.T) {
	series := []Series{
		{Group: "a", X: []float64{1, 2}, Y: []float64{1, 2}},
		{Group: "b", X: []float64{1, 2}, Y: []float64{3, 4}},
	}
	bands := Stack(series)
	require.Len(t, bands, 2)
	assert.Equal(t, []float64{0, 0}, bands[0].Lower)
	assert.Equal(t, []float64{1, 2}, bands[0].Upper)
	assert.Equal(t, []float64{1, 2}, bands[1].Lower)
	assert.Equal(t, []float64{4, 6}, bands[1].Upper)
}

func TestKDE(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	xs, ys, err := KDE(vals)
	require.NoError(t, err)
	require.Len(t, xs, 300)
	require.Len(t, ys, 300)
	assert.Equal(t, 1.0, xs[0])
	assert.Equal(t, 5.0, xs[299])
	for _, y := range ys {
		assert.GreaterOrEqual(t, y, 0.0)
	}
	// Density should peak near the mode.
	peak := 0
	for i, y := range ys {
		if y > ys[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 3.0, xs[peak], 1.0)

	_, _, err = KDE([]float64{1})
	assert.Error(t, err)
	_, _, err = KDE([]float64{2, 2, 2})
	assert.Error(t, err)
}

func TestHexBin(t *testing.T) {
	xs := []float64{0, 0.01, 5, 5.01}
	ys := []float64{0, 0.01, 5, 5.01}
	tiles, err := HexBin(xs, ys, 1, HexPointyTop, 1)
	require.NoError(t, err)
	require.Len(t, tiles, 2)

	total := 0
	for _, tile := range tiles {
		total += tile.Count
	}
	assert.Equal(t, 4, total)

	// The origin pair bins to the origin tile, whose center is the origin.
	origin := tiles[0]
	if tiles[1].Q == 0 && tiles[1].R == 0 {
		origin = tiles[1]
	}
	assert.Equal(t, 0, origin.Q)
	assert.Equal(t, 0, origin.R)
	assert.InDelta(t, 0, origin.X, 1e-12)
	assert.InDelta(t, 0, origin.Y, 1e-12)
}

func TestHexBinFlatTopRoundTrip(t *testing.T) {
	tiles, err := HexBin([]float64{3}, []float64{-2}, 0.5, HexFlatTop, 2)
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	// The binned point must lie within one tile size of the tile center.
	dx := tiles[0].X - 3
	dy := tiles[0].Y - (-2)
	assert.Less(t, math.Hypot(dx, dy), 2.0)
}

func TestHexBinErrors(t *testing.T) {
	_, err := HexBin([]float64{1}, []float64{1, 2}, 1, HexPointyTop, 1)
	assert.Error(t, err)
	_, err = HexBin([]float64{1}, []float64{1}, 0, HexPointyTop, 1)
	assert.Error(t, err)
	_, err = HexBin([]float64{1}, []float64{1}, 1, "diagonal", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hex orientation")
}

func TestThetas(t *testing.T) {
	thetas, err := Thetas(4)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, thetas[0], 1e-12)
	assert.InDelta(t, math.Pi, thetas[1], 1e-12)

	_, err = Thetas(2)
	assert.Error(t, err)
}

func TestPolarXY(t *testing.T) {
	thetas, err := Thetas(4)
	require.NoError(t, err)
	xs, ys, err := PolarXY([]float64{1, 1, 1, 1}, thetas, 0)
	require.NoError(t, err)
	// First vertex points straight up.
	assert.InDelta(t, 0, xs[0], 1e-12)
	assert.InDelta(t, 1, ys[0], 1e-12)
	// Second vertex is a quarter turn counter-clockwise.
	assert.InDelta(t, -1, xs[1], 1e-12)
	assert.InDelta(t, 0, ys[1], 1e-12)

	_, _, err = PolarXY([]float64{1}, thetas, 0)
	assert.Error(t, err)
}

func TestBarEdges(t *testing.T) {
	g := DefaultIntervalGeometry()
	start, mid, end := g.BarEdges(0, 1)
	assert.InDelta(t, .05, start, 1e-12)
	assert.InDelta(t, .5, mid, 1e-12)
	assert.InDelta(t, .95, end, 1e-12)

	// Second bar in the same category adds margin, width and bar spacing.
	start2, _, _ := g.BarEdges(1, 1)
	assert.InDelta(t, 2*.05+.05+.9+.25, start2, 1e-12)

	// A category change adds the category spacing.
	start3, _, _ := g.BarEdges(1, 2)
	assert.InDelta(t, start2+1.15, start3, 1e-12)
}

func TestCategoryNumbers(t *testing.T) {
	factors := []table.Factor{
		{"east", "apple"},
		{"east", "banana"},
		{"west", "apple"},
		{"west", "banana"},
	}
	assert.Equal(t, []int{1, 1, 2, 2}, CategoryNumbers(factors))

	flat := []table.Factor{{"a"}, {"b"}, {"c"}}
	assert.Equal(t, []int{1, 1, 1}, CategoryNumbers(flat))
}

func TestBarWidthForFactors(t *testing.T) {
	assert.Equal(t, .3, BarWidthForFactors(1))
	assert.Equal(t, .5, BarWidthForFactors(2))
	assert.Equal(t, .7, BarWidthForFactors(3))
	assert.Equal(t, .9, BarWidthForFactors(7))
}

func TestTickFormatPrecision(t *testing.T) {
	assert.Equal(t, "0,0.[0]", TickFormatPrecision(0, 5))
	assert.Equal(t, "0,0.[00]", TickFormatPrecision(0, 0.5))
	assert.Equal(t, "0,0.[000]", TickFormatPrecision(0.01, 0.06))
	assert.Equal(t, "0,0.[00]", TickFormatPrecision(3, 3))
}
