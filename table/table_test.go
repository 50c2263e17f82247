package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRowAndAccessors(t *testing.T) {
	tbl := New("fruit", "count")
	require.NoError(t, tbl.AppendRow("apple", 4))
	require.NoError(t, tbl.AppendRow("banana", 2.5))
	require.NoError(t, tbl.AppendRow("apple", nil))

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"fruit", "count"}, tbl.Columns())
	assert.True(t, tbl.Has("fruit"))
	assert.False(t, tbl.Has("price"))

	vals, err := tbl.Floats("count")
	require.NoError(t, err)
	assert.Equal(t, 4.0, vals[0])
	assert.Equal(t, 2.5, vals[1])
	assert.True(t, math.IsNaN(vals[2]))

	strs, err := tbl.Strings("fruit")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "apple"}, strs)
}

func TestAppendRowRagged(t *testing.T) {
	tbl := New("a", "b")
	err := tbl.AppendRow(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 values")
}

func TestAddColumn(t *testing.T) {
	tbl := New("x")
	require.NoError(t, tbl.AppendRow(1))
	require.NoError(t, tbl.AppendRow(2))

	require.NoError(t, tbl.AddColumn("y", []any{10.0, 20.0}))
	assert.Error(t, tbl.AddColumn("y", []any{1.0, 2.0}))
	assert.Error(t, tbl.AddColumn("z", []any{1.0}))

	ys, err := tbl.Floats("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, ys)
}

func TestFloatsTypeMismatch(t *testing.T) {
	tbl := New("v")
	require.NoError(t, tbl.AppendRow("oops"))
	_, err := tbl.Floats("v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "v" is not numeric`)
}

func TestUnknownColumn(t *testing.T) {
	tbl := New("a")
	_, err := tbl.Floats("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown column "missing"`)
}

func TestCellString(t *testing.T) {
	ts := time.Date(2017, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "apple", CellString("apple"))
	assert.Equal(t, "2.5", CellString(2.5))
	assert.Equal(t, "4", CellString(4.0))
	assert.Equal(t, "7", CellString(7))
	assert.Equal(t, "2017-01-02 03:04:05", CellString(ts))
	assert.Equal(t, "", CellString(nil))
}

func TestTimes(t *testing.T) {
	t0 := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := New("when")
	require.NoError(t, tbl.AppendRow(t0))
	require.NoError(t, tbl.AppendRow(t0.AddDate(0, 0, 1)))

	got, err := tbl.Times("when")
	require.NoError(t, err)
	assert.Equal(t, t0, got[0])
	assert.True(t, tbl.IsDatetime("when"))

	require.NoError(t, tbl.AddColumn("n", []any{1, 2}))
	assert.False(t, tbl.IsDatetime("n"))
}

func TestUnique(t *testing.T) {
	tbl := New("g")
	for _, v := range []string{"b", "a", "b", "c", "a"} {
		require.NoError(t, tbl.AppendRow(v))
	}
	got, err := tbl.Unique("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, got)

	sorted, err := tbl.UniqueSorted("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, sorted)
}

func TestFilterEq(t *testing.T) {
	tbl := New("g", "v")
	require.NoError(t, tbl.AppendRow("a", 1))
	require.NoError(t, tbl.AppendRow("b", 2))
	require.NoError(t, tbl.AppendRow("a", 3))

	sub, err := tbl.FilterEq("g", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	vs, err := sub.Floats("v")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, vs)
}

func TestSelect(t *testing.T) {
	tbl := New("a", "b", "c")
	require.NoError(t, tbl.AppendRow(1, 2, 3))

	sub, err := tbl.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sub.Columns())
	assert.Equal(t, 1, sub.Len())

	_, err = tbl.Select("nope")
	assert.Error(t, err)
}

func TestMinMax(t *testing.T) {
	tbl := New("v")
	for _, v := range []any{3.0, nil, -1.0, 7.0} {
		require.NoError(t, tbl.AppendRow(v))
	}
	lo, hi, err := tbl.MinMax("v")
	require.NoError(t, err)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	empty := New("v")
	require.NoError(t, empty.AppendRow(nil))
	_, _, err = empty.MinMax("v")
	assert.Error(t, err)
}

func TestFactor(t *testing.T) {
	f := Factor{"2017", "Q1"}
	assert.Equal(t, "2017:Q1", f.Join(":"))
	assert.True(t, f.Equal(Factor{"2017", "Q1"}))
	assert.False(t, f.Equal(Factor{"2017"}))
	assert.False(t, f.Equal(Factor{"2017", "Q2"}))
}
