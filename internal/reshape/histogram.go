package reshape

import (
	"fmt"
	"math"
	"sort"
)

// Histogram bin aggregation methods.
const (
	HistCount   = "count"   // observations per bin
	HistDensity = "density" // count / (n * width), integrates to one
	HistMass    = "mass"    // count / n, sums to one
)

// Bins holds histogram output: len(Edges) == len(Values)+1.
type Bins struct {
	Edges  []float64
	Values []float64
}

// BinEdges computes histogram bin edges for vals. bins is either a bin-count
// estimator name ("auto", "fd", "sturges", "scott", "rice", "sqrt", "doane"),
// a positive integer count, or an explicit monotonically increasing edge
// slice passed through edges.
func BinEdges(vals []float64, estimator string, count int, edges []float64) ([]float64, error) {
	if edges != nil {
		if len(edges) < 2 {
			return nil, fmt.Errorf("reshape: explicit bin edges need at least two values")
		}
		for i := 1; i < len(edges); i++ {
			if edges[i] <= edges[i-1] {
				return nil, fmt.Errorf("reshape: bin edges must increase monotonically")
			}
		}
		return append([]float64{}, edges...), nil
	}

	clean := dropNaN(vals)
	if len(clean) == 0 {
		return nil, fmt.Errorf("reshape: no numeric values to bin")
	}
	lo, hi := clean[0], clean[0]
	for _, v := range clean {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	n := count
	if n <= 0 {
		var err error
		n, err = estimateBinCount(clean, lo, hi, estimator)
		if err != nil {
			return nil, err
		}
	}
	out := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range out {
		out[i] = lo + float64(i)*width
	}
	out[n] = hi
	return out, nil
}

// estimateBinCount mirrors the numpy histogram_bin_edges estimators.
func estimateBinCount(vals []float64, lo, hi float64, estimator string) (int, error) {
	n := float64(len(vals))
	span := hi - lo

	fromWidth := func(width float64) int {
		if width <= 0 {
			return 1
		}
		return int(math.Max(1, math.Ceil(span/width)))
	}
	sturges := func() int { return int(math.Ceil(math.Log2(n))) + 1 }
	fd := func() int {
		sorted := append([]float64{}, vals...)
		sort.Float64s(sorted)
		iqr := quantile(sorted, 0.75) - quantile(sorted, 0.25)
		return fromWidth(2 * iqr * math.Pow(n, -1.0/3))
	}

	switch estimator {
	case "", "auto":
		k := fd()
		if s := sturges(); s > k {
			k = s
		}
		return k, nil
	case "fd":
		return fd(), nil
	case "sturges":
		return sturges(), nil
	case "scott":
		return fromWidth(3.49 * stddev(vals) * math.Pow(n, -1.0/3)), nil
	case "rice":
		return int(math.Ceil(2 * math.Cbrt(n))), nil
	case "sqrt":
		return int(math.Ceil(math.Sqrt(n))), nil
	case "doane":
		if n <= 2 {
			return 1, nil
		}
		sg1 := math.Sqrt(6 * (n - 2) / ((n + 1) * (n + 3)))
		sd := stddev(vals)
		g1 := 0.0
		if sd > 0 {
			mean := 0.0
			for _, v := range vals {
				mean += v
			}
			mean /= n
			for _, v := range vals {
				g1 += math.Pow((v-mean)/sd, 3)
			}
			g1 /= n
		}
		return int(math.Ceil(1 + math.Log2(n) + math.Log2(1+math.Abs(g1)/sg1))), nil
	default:
		return 0, fmt.Errorf("reshape: unknown bin estimator %q", estimator)
	}
}

// Histogram bins vals with the given edges and aggregation method. The last
// bin is closed on both sides, matching the usual convention.
func Histogram(vals []float64, edges []float64, method string) (*Bins, error) {
	switch method {
	case HistCount, HistDensity, HistMass:
	default:
		return nil, fmt.Errorf("reshape: unknown histogram method %q; use count, density, or mass", method)
	}
	clean := dropNaN(vals)
	counts := make([]float64, len(edges)-1)
	total := 0.0
	for _, v := range clean {
		// Observations outside the edge range are dropped, not clamped.
		if v < edges[0] || v > edges[len(edges)-1] {
			continue
		}
		j := sort.SearchFloat64s(edges, v)
		switch {
		case v == edges[len(edges)-1]:
			j = len(counts) - 1
		case v == edges[j]:
			// left-closed bins: edge values belong to the bin starting there
		default:
			j--
		}
		counts[j]++
		total++
	}
	if total > 0 {
		switch method {
		case HistDensity:
			for j := range counts {
				counts[j] /= total * (edges[j+1] - edges[j])
			}
		case HistMass:
			for j := range counts {
				counts[j] /= total
			}
		}
	}
	return &Bins{Edges: append([]float64{}, edges...), Values: counts}, nil
}

// Midpoints returns the bin centers.
func (b *Bins) Midpoints() []float64 {
	out := make([]float64, len(b.Edges)-1)
	for i := range out {
		out[i] = (b.Edges[i] + b.Edges[i+1]) / 2
	}
	return out
}

func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func stddev(vals []float64) float64 {
	n := float64(len(vals))
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= n
	ss := 0.0
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / n)
}

// quantile interpolates linearly on a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
