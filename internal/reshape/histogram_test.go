package reshape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinEdgesExplicit(t *testing.T) {
	edges, err := BinEdges(nil, "", 0, []float64{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, edges)

	_, err = BinEdges(nil, "", 0, []float64{1})
	assert.Error(t, err)
	_, err = BinEdges(nil, "", 0, []float64{0, 2, 1})
	assert.Error(t, err)
}

func TestBinEdgesCount(t *testing.T) {
	edges, err := BinEdges([]float64{0, 10}, "", 5, nil)
	require.NoError(t, err)
	require.Len(t, edges, 6)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 10.0, edges[5])
	assert.InDelta(t, 2.0, edges[1], 1e-12)
}

func TestBinEdgesEstimators(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	// sturges: ceil(log2(100))+1 = 8
	edges, err := BinEdges(vals, "sturges", 0, nil)
	require.NoError(t, err)
	assert.Len(t, edges, 9)

	// sqrt: ceil(sqrt(100)) = 10
	edges, err = BinEdges(vals, "sqrt", 0, nil)
	require.NoError(t, err)
	assert.Len(t, edges, 11)

	// rice: ceil(2 * 100^(1/3)) = 10
	edges, err = BinEdges(vals, "rice", 0, nil)
	require.NoError(t, err)
	assert.Len(t, edges, 11)

	// auto is at least sturges
	edges, err = BinEdges(vals, "auto", 0, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(edges), 9)

	for _, est := range []string{"fd", "scott", "doane"} {
		edges, err = BinEdges(vals, est, 0, nil)
		require.NoError(t, err, est)
		assert.Greater(t, len(edges), 2, est)
	}

	_, err = BinEdges(vals, "bogus", 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bin estimator")
}

func TestBinEdgesDegenerate(t *testing.T) {
	_, err := BinEdges([]float64{math.NaN()}, "auto", 0, nil)
	assert.Error(t, err)

	edges, err := BinEdges([]float64{5, 5, 5}, "", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.5, edges[0])
	assert.Equal(t, 5.5, edges[len(edges)-1])
}

func TestHistogramMethods(t *testing.T) {
	vals := []float64{0.5, 1.5, 1.6, 2.5, 3.0}
	edges := []float64{0, 1, 2, 3}

	counts, err := Histogram(vals, edges, HistCount)
	require.NoError(t, err)
	// 3.0 lands in the final closed bin.
	assert.Equal(t, []float64{1, 2, 2}, counts.Values)

	mass, err := Histogram(vals, edges, HistMass)
	require.NoError(t, err)
	total := 0.0
	for _, v := range mass.Values {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-12)

	density, err := Histogram(vals, edges, HistDensity)
	require.NoError(t, err)
	integral := 0.0
	for j, v := range density.Values {
		integral += v * (edges[j+1] - edges[j])
	}
	assert.InDelta(t, 1.0, integral, 1e-12)

	_, err = Histogram(vals, edges, "frequency")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown histogram method")
}

func TestHistogramDropsOutOfRange(t *testing.T) {
	edges := []float64{0, 1, 2}

	bins, err := Histogram([]float64{0.5, 5}, edges, HistCount)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, bins.Values)

	bins, err = Histogram([]float64{-1, 0.5, 1.5}, edges, HistCount)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, bins.Values)

	// Dropped observations do not count toward the normalization either.
	mass, err := Histogram([]float64{-1, 0.5, 5}, edges, HistMass)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, mass.Values)
}

func TestHistogramMidpoints(t *testing.T) {
	b := &Bins{Edges: []float64{0, 2, 4}, Values: []float64{1, 1}}
	assert.Equal(t, []float64{1, 3}, b.Midpoints())

	// Midpoints are defined by the edges alone.
	assert.Equal(t, []float64{1, 3}, (&Bins{Edges: []float64{0, 2, 4}}).Midpoints())
}
