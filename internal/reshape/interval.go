package reshape

import "chartful/table"

// IntervalGeometry carries the bar-edge layout constants for interval plots
// drawn on a continuous axis masquerading as a categorical one.
type IntervalGeometry struct {
	Margin                 float64
	BarWidth               float64
	SpaceBetweenBars       float64
	SpaceBetweenCategories float64
	EndStemSize            float64
	MidpointStemSize       float64
}

// DefaultIntervalGeometry matches the stock interval-plot style settings.
func DefaultIntervalGeometry() IntervalGeometry {
	return IntervalGeometry{
		Margin:                 .05,
		BarWidth:               .9,
		SpaceBetweenBars:       .25,
		SpaceBetweenCategories: 1.15,
		EndStemSize:            .1 / 2,
		MidpointStemSize:       .03 / 2,
	}
}

// BarEdges returns the start, midpoint, and end coordinates of bar index
// (zero-based) in category categoryNumber (one-based).
func (g IntervalGeometry) BarEdges(index, categoryNumber int) (start, midpoint, end float64) {
	barNum := float64(index + 1)
	start = barNum*g.Margin + (barNum-1)*g.Margin + (barNum-1)*g.BarWidth +
		g.SpaceBetweenBars*(barNum-1) + g.SpaceBetweenCategories*float64(categoryNumber-1)
	midpoint = start + g.BarWidth/2
	end = start + g.BarWidth
	return start, midpoint, end
}

// CategoryNumbers tracks top-level category changes across a hierarchical
// factor sequence: each change of any level but the last starts a new
// category (one-based). A single-level sequence is all one category.
func CategoryNumbers(factors []table.Factor) []int {
	out := make([]int, len(factors))
	if len(factors) == 0 {
		return out
	}
	if len(factors[0]) <= 1 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	n := 0
	for i, f := range factors {
		changed := i == 0
		if i > 0 {
			prev := factors[i-1]
			for level := 0; level < len(f)-1; level++ {
				if f[level] != prev[level] {
					changed = true
					break
				}
			}
		}
		if changed {
			n++
		}
		out[i] = n
	}
	return out
}

// BarWidthForFactors picks the categorical bar width from the factor count.
func BarWidthForFactors(n int) float64 {
	switch n {
	case 1:
		return .3
	case 2:
		return .5
	case 3:
		return .7
	default:
		return .9
	}
}
