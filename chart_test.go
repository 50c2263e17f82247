package chartful

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChartValidation(t *testing.T) {
	_, err := New("", "sideways", AxisLinear)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x axis type")

	_, err = New("", AxisLinear, AxisDatetime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid y axis type")

	_, err = New("poster", AxisLinear, AxisLinear)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layout")
}

func TestLayoutDimensions(t *testing.T) {
	cases := map[string][2]int{
		"":             {960, 540},
		LayoutSlide100: {960, 540},
		LayoutSlide75:  {576, 432},
		LayoutSlide50:  {480, 540},
		LayoutSlide25:  {480, 270},
	}
	for layout, dims := range cases {
		c, err := New(layout, AxisLinear, AxisLinear)
		require.NoError(t, err, layout)
		assert.Equal(t, dims[0], c.Style().PlotWidth(), layout)
		assert.Equal(t, dims[1], c.Style().PlotHeight(), layout)
	}
}

func TestHelperLabels(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	assert.Contains(t, c.figure.Title, "SetTitle")
	assert.Contains(t, c.figure.X.Label, "SetXAxisLabel")

	o := CurrentOptions()
	o.BlankLabels = true
	SetOptions(o)
	defer SetOptions(DefaultOptions())

	c, err = New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	assert.Empty(t, c.figure.Title)
	assert.Empty(t, c.figure.X.Label)
}

func TestSetLegendLocation(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)

	require.NoError(t, c.SetLegendLocation("outside_right", ""))
	assert.Equal(t, "right", c.figure.Legend.Left)
	assert.Equal(t, "vertical", c.figure.Legend.Orient)

	require.NoError(t, c.SetLegendLocation("top_left", "horizontal"))
	assert.Equal(t, "top", c.figure.Legend.Top)
	assert.Equal(t, "left", c.figure.Legend.Left)

	require.NoError(t, c.SetLegendLocation("none", ""))
	assert.False(t, c.figure.Legend.Show)

	err = c.SetLegendLocation("under_the_rug", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid legend location")
}

func TestChartHTML(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	c.SetTitle("Quarterly revenue").SetSubtitle("FY26").SetSourceLabel("source: ledger")

	html, err := c.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Quarterly revenue")
	assert.Contains(t, html, "FY26")
	assert.Contains(t, html, "source: ledger")
}

func TestChartSaveHTML(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	c.SetTitle("saved")

	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, c.Save(context.Background(), path, FormatHTML))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "saved")

	err = c.Save(context.Background(), path, "gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCoerceCoord(t *testing.T) {
	v, err := coerceCoord(AxisLinear, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	ts := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	v, err = coerceCoord(AxisDatetime, ts)
	require.NoError(t, err)
	assert.Equal(t, epochMillis(ts), v)

	_, err = coerceCoord(AxisLinear, ts)
	require.Error(t, err)

	_, err = coerceCoord(AxisLinear, "three")
	require.Error(t, err)
}

func TestObserveExtents(t *testing.T) {
	c, err := New("", AxisLinear, AxisLinear)
	require.NoError(t, err)
	assert.False(t, c.hasExtents)
	c.observe(1, 10)
	c.observe(-2, 4)
	assert.True(t, c.hasExtents)
	assert.Equal(t, -2.0, c.xMin)
	assert.Equal(t, 1.0, c.xMax)
	assert.Equal(t, 4.0, c.yMin)
	assert.Equal(t, 10.0, c.yMax)
}
