package reshape

import (
	"sort"

	"chartful/table"
)

// Series is one group's (x, y) values after grid completion, keyed by the
// group's color value.
type Series struct {
	Group string
	X     []float64
	Y     []float64
}

// CompleteGrid reindexes grouped (x, y) observations over the full cartesian
// product of sorted x values and groups, filling absent pairs with zero.
// Stacked areas need every group defined at every x.
func CompleteGrid(t *table.Table, xColumn, yColumn, groupColumn string, groups []string) ([]Series, []float64, error) {
	xs, err := t.Floats(xColumn)
	if err != nil {
		return nil, nil, err
	}
	ys, err := t.Floats(yColumn)
	if err != nil {
		return nil, nil, err
	}
	gs, err := t.Strings(groupColumn)
	if err != nil {
		return nil, nil, err
	}

	xSet := make(map[float64]bool)
	for _, x := range xs {
		xSet[x] = true
	}
	xGrid := make([]float64, 0, len(xSet))
	for x := range xSet {
		xGrid = append(xGrid, x)
	}
	sort.Float64s(xGrid)
	xIdx := make(map[float64]int, len(xGrid))
	for i, x := range xGrid {
		xIdx[x] = i
	}

	out := make([]Series, len(groups))
	lookup := make(map[string]int, len(groups))
	for i, g := range groups {
		out[i] = Series{Group: g, X: xGrid, Y: make([]float64, len(xGrid))}
		lookup[g] = i
	}
	for row := range xs {
		gi, ok := lookup[gs[row]]
		if !ok {
			continue
		}
		out[gi].Y[xIdx[xs[row]]] = ys[row]
	}
	return out, xGrid, nil
}

// StackBands converts grid-completed series into cumulative lower/upper
// bands, in series order. Band i spans the cumulative sum below series i up
// to the sum including it. Values are assumed all-positive or all-negative.
type Band struct {
	Group string
	Lower []float64
	Upper []float64
}

// Stack computes cumulative bands over grid-completed series.
func Stack(series []Series) []Band {
	if len(series) == 0 {
		return nil
	}
	n := len(series[0].X)
	cum := make([]float64, n)
	out := make([]Band, len(series))
	for i, s := range series {
		lower := append([]float64{}, cum...)
		upper := make([]float64, n)
		for j, v := range s.Y {
			cum[j] += v
			upper[j] = cum[j]
		}
		out[i] = Band{Group: s.Group, Lower: lower, Upper: upper}
	}
	return out
}

// StackMidpoints returns, for each stack dimension of the pivot, the label
// anchor positions: the cumulative total below each cell plus half the cell.
func (p *Pivot) StackMidpoints() [][]float64 {
	out := make([][]float64, len(p.Factors))
	for i, row := range p.Cells {
		mids := make([]float64, len(row))
		cum := 0.0
		for j, v := range row {
			mids[j] = cum + v/2
			cum += v
		}
		out[i] = mids
	}
	return out
}
