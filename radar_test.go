package chartful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartful/internal/render"
	"chartful/table"
)

func radarTable(t *testing.T, vals ...float64) *table.Table {
	t.Helper()
	tbl := table.New("r")
	for _, v := range vals {
		require.NoError(t, tbl.AppendRow(v))
	}
	return tbl
}

func TestNewRadarHidesAxes(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	c := rc.Chart()
	assert.True(t, c.figure.X.Hidden)
	assert.True(t, c.figure.Y.Hidden)
	assert.Empty(t, c.figure.X.Label)
}

func TestRadarPerimeterClosesLoop(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	require.NoError(t, rc.Perimeter(RadarArgs{
		Data: radarTable(t, 1, 2, 3, 4), RColumn: "r",
	}))
	s := rc.Chart().figure.Series()[0]
	assert.Equal(t, render.KindLine, s.Kind)
	require.Len(t, s.XY, 5)
	assert.Equal(t, s.XY[0], s.XY[4])
	// First spoke points straight up.
	assert.InDelta(t, 0, s.XY[0][0], 1e-9)
	assert.InDelta(t, 1, s.XY[0][1], 1e-9)
}

func TestRadarArea(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	require.NoError(t, rc.Area(RadarArgs{
		Data: radarTable(t, 1, 1, 1), RColumn: "r",
	}))
	s := rc.Chart().figure.Series()[0]
	assert.Equal(t, render.KindArea, s.Kind)
	assert.InDelta(t, .2, s.Opacity, 1e-9)
}

func TestRadarRadiusDrawsSpokes(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	require.NoError(t, rc.Radius(RadarArgs{
		Data: radarTable(t, 1, 2, 3), RColumn: "r",
	}))
	series := rc.Chart().figure.Series()
	require.Len(t, series, 3)
	for _, s := range series {
		require.Len(t, s.XY, 2)
		assert.Equal(t, [2]float64{0, 0}, s.XY[0])
	}
}

func TestRadarNeedsThreeAxes(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	err = rc.Perimeter(RadarArgs{Data: radarTable(t, 1, 2), RColumn: "r"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least three axes")
}

func TestRadarText(t *testing.T) {
	rc, err := NewRadar("")
	require.NoError(t, err)
	tbl := table.New("r", "name")
	require.NoError(t, tbl.AppendRow(1.0, "north"))
	require.NoError(t, tbl.AppendRow(1.0, "west"))
	require.NoError(t, tbl.AppendRow(1.0, "east"))

	require.NoError(t, rc.RadarText(RadarTextArgs{
		RadarArgs:  RadarArgs{Data: tbl, RColumn: "r"},
		TextColumn: "name",
		Offset:     .5,
	}))
	s := rc.Chart().figure.Series()[0]
	assert.Equal(t, render.KindText, s.Kind)
	assert.Equal(t, []string{"north", "west", "east"}, s.Texts)
	// Offset pushes the first label beyond its radius.
	assert.InDelta(t, 1.5, s.XY[0][1], 1e-9)
}
