package reshape

import (
	"fmt"
	"sort"

	"chartful/table"
)

// ColorOrder resolves the rendering order for the distinct values of a color
// column. With a nil supplied order the unique values are sorted; otherwise
// the supplied order must cover every distinct value.
func ColorOrder(t *table.Table, colorColumn string, supplied []string) ([]string, error) {
	unique, err := t.UniqueSorted(colorColumn)
	if err != nil {
		return nil, err
	}
	if supplied == nil {
		return unique, nil
	}
	have := make(map[string]bool, len(supplied))
	for _, v := range supplied {
		have[v] = true
	}
	for _, v := range unique {
		if !have[v] {
			return nil, fmt.Errorf(
				"reshape: color order is missing value %q; it must contain every unique value of column %q",
				v, colorColumn)
		}
	}
	return append([]string{}, supplied...), nil
}

// SortByValues orders the pivot's factors by their value totals, level by
// level: the first factor level is ordered by the summed totals of everything
// underneath it, then each group is ordered recursively by the next level.
func (p *Pivot) SortByValues(ascending bool) {
	totals := p.RowTotals()
	order := make([]int, len(p.Factors))
	for i := range order {
		order[i] = i
	}
	p.sortLevel(order, 0, totals, ascending)
	p.applyOrder(order)
}

func (p *Pivot) sortLevel(order []int, level int, totals []float64, ascending bool) {
	if level >= len(p.IndexColumns) || len(order) < 2 {
		return
	}
	// Total per distinct value at this level, across the group.
	levelTotals := make(map[string]float64)
	for _, i := range order {
		levelTotals[p.Factors[i][level]] += totals[i]
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta := levelTotals[p.Factors[order[a]][level]]
		tb := levelTotals[p.Factors[order[b]][level]]
		if ta == tb {
			return p.Factors[order[a]][level] < p.Factors[order[b]][level]
		}
		if ascending {
			return ta < tb
		}
		return ta > tb
	})
	// Recurse into each run of equal values at this level.
	start := 0
	for end := 1; end <= len(order); end++ {
		if end < len(order) && p.Factors[order[end]][level] == p.Factors[order[start]][level] {
			continue
		}
		p.sortLevel(order[start:end], level+1, totals, ascending)
		start = end
	}
}

// SortByLabels orders the pivot's factors lexicographically.
func (p *Pivot) SortByLabels(ascending bool) {
	order := make([]int, len(p.Factors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa, fb := p.Factors[order[a]], p.Factors[order[b]]
		for k := range fa {
			if fa[k] != fb[k] {
				if ascending {
					return fa[k] < fb[k]
				}
				return fa[k] > fb[k]
			}
		}
		return false
	})
	p.applyOrder(order)
}

func (p *Pivot) applyOrder(order []int) {
	factors := make([]table.Factor, len(order))
	cells := make([][]float64, len(order))
	for i, k := range order {
		factors[i] = p.Factors[k]
		cells[i] = p.Cells[k]
	}
	p.Factors = factors
	p.Cells = cells
}

// OrderFactors applies a categorical ordering selector to the pivot:
// "values"/"count" sorts by hierarchical totals, "labels" sorts
// lexicographically, an explicit factor list reindexes, nil leaves the pivot
// untouched. Any other selector is an error.
func (p *Pivot) OrderFactors(orderBy string, explicit []table.Factor, ascending bool) error {
	if explicit != nil {
		return p.Reindex(explicit)
	}
	switch orderBy {
	case "":
		return nil
	case "values", "count":
		p.SortByValues(ascending)
		return nil
	case "labels":
		p.SortByLabels(ascending)
		return nil
	default:
		return fmt.Errorf(
			"reshape: invalid categorical order %q; use \"values\", \"labels\", or an explicit factor list", orderBy)
	}
}
