package chartful

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartful/table"
)

func TestAxisLabelsAndRanges(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	c.Axes().SetXAxisLabel("day").SetYAxisLabel("count")
	assert.Equal(t, "day", c.figure.X.Label)
	assert.Equal(t, "count", c.figure.Y.Label)

	require.NoError(t, c.Axes().SetXAxisRange(0, 10))
	require.NotNil(t, c.figure.X.Min)
	assert.Equal(t, 0.0, *c.figure.X.Min)
	assert.Equal(t, 10.0, *c.figure.X.Max)
}

func TestAxisRangeOnCategorical(t *testing.T) {
	c, err := New("", AxisCategorical, AxisLinear)
	require.NoError(t, err)
	err = c.Axes().SetXAxisRange(0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categorical")
}

func TestDatetimeRange(t *testing.T) {
	c, err := New("", AxisDatetime, AxisLinear)
	require.NoError(t, err)

	err = c.Axes().SetXAxisRange(0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SetXAxisDatetimeRange")

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Axes().SetXAxisDatetimeRange(start, end))
	assert.Equal(t, epochMillis(start), *c.figure.X.Min)
	assert.Equal(t, epochMillis(end), *c.figure.X.Max)
}

func TestTickFormat(t *testing.T) {
	c, err := New("", AxisDatetime, AxisLinear)
	require.NoError(t, err)
	c.Axes().SetXAxisTickFormat("%Y-%m-%d")
	assert.Equal(t, "{yyyy}-{MM}-{dd}", c.figure.X.Formatter)
	assert.Empty(t, c.figure.X.FormatterJS)

	c.Axes().SetYAxisTickFormat("0,0.[00]")
	assert.NotEmpty(t, c.figure.Y.FormatterJS)
	assert.Empty(t, c.figure.Y.Formatter)
}

func TestTickOrientation(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	require.NoError(t, c.Axes().SetXAxisTickOrientation("diagonal"))
	assert.Equal(t, float32(45), c.figure.X.Rotate)

	err = c.Axes().SetXAxisTickOrientation("upside_down")
	require.Error(t, err)
}

func TestTickValuesBoundAxis(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	require.NoError(t, c.Axes().SetYAxisTickValues([]float64{0, 5, 10}))
	assert.Equal(t, 0.0, *c.figure.Y.Min)
	assert.Equal(t, 10.0, *c.figure.Y.Max)

	err = c.Axes().SetYAxisTickValues([]float64{1})
	require.Error(t, err)
}

func TestAxisFactors(t *testing.T) {
	c, err := New("", AxisCategorical, AxisLinear)
	require.NoError(t, err)
	factors := []table.Factor{{"b"}, {"a"}}
	require.NoError(t, c.Axes().SetXAxisFactors(factors))
	assert.Equal(t, []string{"b", "a"}, c.figure.X.Data)
	assert.Equal(t, factors, c.Axes().XAxisFactors())

	err = c.Axes().SetYAxisFactors(factors)
	require.Error(t, err)
}

func TestHierarchicalFactorLabels(t *testing.T) {
	labels := factorLabels([]table.Factor{{"west", "apple"}, {"east", "pear"}})
	assert.Equal(t, []string{"west - apple", "east - pear"}, labels)
}
