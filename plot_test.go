package chartful

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartful/internal/render"
	"chartful/table"
)

func numericTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("x", "y", "group", "label")
	rows := [][]any{
		{3.0, 30.0, "b", "p3"},
		{1.0, 10.0, "a", "p1"},
		{2.0, 20.0, "a", "p2"},
		{4.0, 40.0, "b", "p4"},
	}
	for _, row := range rows {
		require.NoError(t, tbl.AppendRow(row...))
	}
	return tbl
}

func TestLineSortsByX(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := numericTable(t)

	require.NoError(t, c.Plot().Line(LineArgs{Data: tbl, XColumn: "x", YColumn: "y"}))
	series := c.figure.Series()
	require.Len(t, series, 1)
	s := series[0]
	assert.Equal(t, render.KindLine, s.Kind)
	assert.Equal(t, [][2]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}, s.XY)
	assert.Equal(t, 4.0, s.LineWidth)
	assert.Equal(t, "solid", s.LineDash)
	assert.Equal(t, "#1f77b4", s.Color)
}

func TestLineGrouped(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := numericTable(t)

	require.NoError(t, c.Plot().Line(LineArgs{
		Data: tbl, XColumn: "x", YColumn: "y", ColorColumn: "group",
	}))
	series := c.figure.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "a", series[0].Name)
	assert.Equal(t, "b", series[1].Name)
	assert.Equal(t, [][2]float64{{1, 10}, {2, 20}}, series[0].XY)
	assert.Equal(t, [][2]float64{{3, 30}, {4, 40}}, series[1].XY)
	assert.NotEqual(t, series[0].Color, series[1].Color)
}

func TestLineColorOrderValidation(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	err = c.Plot().Line(LineArgs{
		Data: numericTable(t), XColumn: "x", YColumn: "y",
		ColorColumn: "group", ColorOrder: []string{"a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color order is missing value")
}

func TestLineAxisGating(t *testing.T) {
	c, err := New("", AxisCategorical, AxisLinear)
	require.NoError(t, err)
	err = c.Plot().Line(LineArgs{Data: numericTable(t), XColumn: "x", YColumn: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line plots need an x axis")
}

func TestLineDatetime(t *testing.T) {
	c, err := New("", AxisDatetime, AxisLinear)
	require.NoError(t, err)
	tbl := table.New("when", "y")
	t1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tbl.AppendRow(t1, 2.0))
	require.NoError(t, tbl.AppendRow(t0, 1.0))

	require.NoError(t, c.Plot().Line(LineArgs{Data: tbl, XColumn: "when", YColumn: "y"}))
	s := c.figure.Series()[0]
	assert.Equal(t, epochMillis(t0), s.XY[0][0])
	assert.Equal(t, epochMillis(t1), s.XY[1][0])
}

func TestScatterSizes(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := table.New("x", "y", "pop")
	require.NoError(t, tbl.AppendRow(1.0, 2.0, 5.0))
	require.NoError(t, tbl.AppendRow(2.0, 3.0, 15.0))

	require.NoError(t, c.Plot().Scatter(ScatterArgs{
		Data: tbl, XColumn: "x", YColumn: "y", SizeColumn: "pop", Marker: "diamond",
	}))
	s := c.figure.Series()[0]
	assert.Equal(t, render.KindScatter, s.Kind)
	assert.Equal(t, []int{5, 15}, s.Sizes)
	assert.Equal(t, "diamond", s.Symbol)
}

func TestTextSortedWithPoints(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := numericTable(t)

	require.NoError(t, c.Plot().Text(TextArgs{
		Data: tbl, XColumn: "x", YColumn: "y", TextColumn: "label",
	}))
	s := c.figure.Series()[0]
	assert.Equal(t, render.KindText, s.Kind)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, s.Texts)
	assert.Equal(t, [][2]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}, s.XY)
}

func TestAreaBand(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := table.New("x", "lo", "hi")
	require.NoError(t, tbl.AppendRow(1.0, 1.0, 3.0))
	require.NoError(t, tbl.AppendRow(2.0, 2.0, 5.0))

	require.NoError(t, c.Plot().Area(AreaArgs{
		Data: tbl, XColumn: "x", YColumn: "lo", SecondYColumn: "hi",
	}))
	series := c.figure.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "band", series[0].Stack)
	assert.Equal(t, "band", series[1].Stack)
	assert.Equal(t, render.KindArea, series[1].Kind)
	// The visible band holds the deltas stacked on the invisible base.
	assert.Equal(t, [][2]float64{{1, 2}, {2, 3}}, series[1].XY)
}

func TestAreaStackedCompletesGrid(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	tbl := table.New("x", "y", "group")
	require.NoError(t, tbl.AppendRow(1.0, 10.0, "a"))
	require.NoError(t, tbl.AppendRow(2.0, 20.0, "a"))
	require.NoError(t, tbl.AppendRow(2.0, 5.0, "b"))

	require.NoError(t, c.Plot().Area(AreaArgs{
		Data: tbl, XColumn: "x", YColumn: "y", ColorColumn: "group", Stacked: true,
	}))
	series := c.figure.Series()
	require.Len(t, series, 2)
	for _, s := range series {
		assert.Equal(t, "area", s.Stack)
		require.Len(t, s.XY, 2)
	}
	// Group b is zero-filled at x=1.
	assert.Equal(t, [][2]float64{{1, 0}, {2, 5}}, series[1].XY)
}

func TestAreaBandRejectsGrouping(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	err = c.Plot().Area(AreaArgs{
		Data: numericTable(t), XColumn: "x", YColumn: "y",
		SecondYColumn: "y", Stacked: true,
	})
	require.Error(t, err)
}
