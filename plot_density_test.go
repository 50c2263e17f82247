package chartful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartful/internal/render"
	"chartful/table"
)

func valuesTable(t *testing.T, vals ...float64) *table.Table {
	t.Helper()
	tbl := table.New("value")
	for _, v := range vals {
		require.NoError(t, tbl.AppendRow(v))
	}
	return tbl
}

func TestHistogramExplicitEdges(t *testing.T) {
	c, err := New("", AxisLinear, AxisDensity)
	require.NoError(t, err)
	require.NoError(t, c.Plot().Histogram(HistogramArgs{
		Data:         valuesTable(t, 0.5, 1.5, 1.5, 2.5),
		ValuesColumn: "value",
		BinEdges:     []float64{0, 1, 2, 3},
	}))
	s := c.figure.Series()[0]
	assert.Equal(t, render.KindBar, s.Kind)
	assert.Equal(t, []float64{1, 2, 1}, s.Values)
	assert.Equal(t, []string{"0.5", "1.5", "2.5"}, c.figure.X.Data)
	assert.Equal(t, "category", c.figure.X.Kind)
	assert.Equal(t, "0%", c.figure.BarCategoryGap)
}

func TestHistogramHorizontal(t *testing.T) {
	c, err := New("", AxisDensity, AxisLinear)
	require.NoError(t, err)
	require.NoError(t, c.Plot().Histogram(HistogramArgs{
		Data:         valuesTable(t, 0.5, 1.5),
		ValuesColumn: "value",
		BinEdges:     []float64{0, 1, 2},
	}))
	assert.True(t, c.figure.Horizontal)
	assert.Equal(t, "category", c.figure.Y.Kind)
	assert.Equal(t, []string{"0.5", "1.5"}, c.figure.Y.Data)
}

func TestHistogramAxisGating(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	err = c.Plot().Histogram(HistogramArgs{
		Data: valuesTable(t, 1, 2), ValuesColumn: "value",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "density axis")
}

func TestHistogramGroupedSharesEdges(t *testing.T) {
	c, err := New("", AxisLinear, AxisDensity)
	require.NoError(t, err)
	tbl := table.New("value", "group")
	require.NoError(t, tbl.AppendRow(0.5, "a"))
	require.NoError(t, tbl.AppendRow(1.5, "a"))
	require.NoError(t, tbl.AppendRow(2.5, "b"))

	require.NoError(t, c.Plot().Histogram(HistogramArgs{
		Data:         tbl,
		ValuesColumn: "value",
		ColorColumn:  "group",
		BinEdges:     []float64{0, 1, 2, 3},
	}))
	series := c.figure.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "a", series[0].Name)
	assert.Equal(t, []float64{1, 1, 0}, series[0].Values)
	assert.Equal(t, []float64{0, 0, 1}, series[1].Values)
}

func TestKDE(t *testing.T) {
	c, err := New("", AxisLinear, AxisDensity)
	require.NoError(t, err)
	require.NoError(t, c.Plot().KDE(KDEArgs{
		Data:         valuesTable(t, 1, 2, 2, 3, 3, 3, 4),
		ValuesColumn: "value",
	}))
	s := c.figure.Series()[0]
	assert.Equal(t, render.KindLine, s.Kind)
	assert.Len(t, s.XY, 300)
}

func TestKDEShade(t *testing.T) {
	c, err := New("", AxisLinear, AxisDensity)
	require.NoError(t, err)
	require.NoError(t, c.Plot().KDE(KDEArgs{
		Data:         valuesTable(t, 1, 2, 3, 4),
		ValuesColumn: "value",
		Shade:        true,
	}))
	s := c.figure.Series()[0]
	assert.Equal(t, render.KindArea, s.Kind)
	assert.InDelta(t, .4, s.Opacity, 1e-9)
}

func TestKDETooFewValues(t *testing.T) {
	c, err := New("", AxisLinear, AxisDensity)
	require.NoError(t, err)
	err = c.Plot().KDE(KDEArgs{Data: valuesTable(t, 1), ValuesColumn: "value"})
	require.Error(t, err)
}

func TestHexbin(t *testing.T) {
	c, err := New("", AxisDensity, AxisDensity)
	require.NoError(t, err)
	tbl := table.New("x", "y")
	require.NoError(t, tbl.AppendRow(0.0, 0.0))
	require.NoError(t, tbl.AppendRow(0.1, 0.1))
	require.NoError(t, tbl.AppendRow(10.0, 10.0))

	require.NoError(t, c.Plot().Hexbin(HexbinArgs{
		Data: tbl, XColumn: "x", YColumn: "y", Size: 1,
	}))
	series := c.figure.Series()
	require.NotEmpty(t, series)
	total := 0
	for _, s := range series {
		assert.Equal(t, render.KindScatter, s.Kind)
		total += len(s.XY)
	}
	assert.GreaterOrEqual(t, total, 2)
}

func TestHexbinAxisGating(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	err = c.Plot().Hexbin(HexbinArgs{
		Data: valuesTable(t, 1), XColumn: "value", YColumn: "value",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "density")
}
