// Package reshape holds the pure data-reshaping routines that prepare
// tabular data for the plotting backend: pivoting, factor ordering, grid
// completion, stacking, histogram binning, density estimation, hexagonal
// binning, and radial projection. Nothing in here draws.
package reshape

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"chartful/table"
)

// Pivot is a table pivoted on one or more categorical index columns, with an
// optional stack dimension. Cells[i][j] is the value of Factors[i] at
// StackValues[j]; without a stack column each row has exactly one cell.
type Pivot struct {
	IndexColumns []string
	Factors      []table.Factor
	StackValues  []string
	Cells        [][]float64
}

// PivotSum pivots t on the index columns, summing valueColumn. stackColumn
// may be empty. Each (factor, stack) grouping must hold at most one
// observation; NaN cells fill to zero.
func PivotSum(t *table.Table, indexColumns []string, valueColumn, stackColumn string) (*Pivot, error) {
	if len(indexColumns) == 0 {
		return nil, fmt.Errorf("reshape: pivot requires at least one index column")
	}
	index := make([][]string, len(indexColumns))
	for i, col := range indexColumns {
		vals, err := t.Strings(col)
		if err != nil {
			return nil, err
		}
		index[i] = vals
	}
	values, err := t.Floats(valueColumn)
	if err != nil {
		return nil, err
	}

	stacks := []string{""}
	var stackCells []string
	if stackColumn != "" {
		stackCells, err = t.Strings(stackColumn)
		if err != nil {
			return nil, err
		}
		stacks, err = t.Unique(stackColumn)
		if err != nil {
			return nil, err
		}
		sort.Strings(stacks)
	}
	stackIdx := make(map[string]int, len(stacks))
	for j, s := range stacks {
		stackIdx[s] = j
	}

	p := &Pivot{IndexColumns: indexColumns, StackValues: stacks}
	factorIdx := make(map[string]int)
	seen := make(map[string]bool)
	for row := 0; row < t.Len(); row++ {
		factor := make(table.Factor, len(indexColumns))
		for i := range indexColumns {
			factor[i] = index[i][row]
		}
		key := factor.Join("\x00")
		fi, ok := factorIdx[key]
		if !ok {
			fi = len(p.Factors)
			factorIdx[key] = fi
			p.Factors = append(p.Factors, factor)
			p.Cells = append(p.Cells, make([]float64, len(stacks)))
		}
		sj := 0
		if stackColumn != "" {
			sj = stackIdx[stackCells[row]]
		}
		cellKey := fmt.Sprintf("%s\x00%d", key, sj)
		if seen[cellKey] {
			return nil, fmt.Errorf(
				"reshape: more than one observation for grouping (%s) = (%s); aggregate the data before plotting",
				groupingName(indexColumns, stackColumn), factor.Join(", "))
		}
		seen[cellKey] = true
		if !math.IsNaN(values[row]) {
			p.Cells[fi][sj] = values[row]
		}
	}
	return p, nil
}

func groupingName(indexColumns []string, stackColumn string) string {
	cols := indexColumns
	if stackColumn != "" {
		cols = append(append([]string{}, indexColumns...), stackColumn)
	}
	return strings.Join(cols, ", ")
}

// Normalize scales each row of the pivot so its cells sum to 1. Rows with a
// zero total are left untouched.
func (p *Pivot) Normalize() {
	for i, row := range p.Cells {
		total := 0.0
		for _, v := range row {
			total += v
		}
		if total == 0 {
			continue
		}
		for j := range row {
			p.Cells[i][j] /= total
		}
	}
}

// RowTotals returns the per-factor cell sums.
func (p *Pivot) RowTotals() []float64 {
	out := make([]float64, len(p.Factors))
	for i, row := range p.Cells {
		for _, v := range row {
			out[i] += v
		}
	}
	return out
}

// StackColumn returns the cell values of one stack dimension, in factor
// order.
func (p *Pivot) StackColumn(stack string) ([]float64, error) {
	for j, s := range p.StackValues {
		if s != stack {
			continue
		}
		out := make([]float64, len(p.Factors))
		for i := range p.Cells {
			out[i] = p.Cells[i][j]
		}
		return out, nil
	}
	return nil, fmt.Errorf("reshape: unknown stack value %q", stack)
}

// ReorderStacks rearranges the stack dimension to match order, which must
// name every stack value exactly once.
func (p *Pivot) ReorderStacks(order []string) error {
	if len(order) != len(p.StackValues) {
		return fmt.Errorf("reshape: stack order has %d values, pivot has %d stacks",
			len(order), len(p.StackValues))
	}
	idx := make(map[string]int, len(p.StackValues))
	for j, s := range p.StackValues {
		idx[s] = j
	}
	perm := make([]int, len(order))
	for j, s := range order {
		k, ok := idx[s]
		if !ok {
			return fmt.Errorf("reshape: stack order value %q not present in the data", s)
		}
		perm[j] = k
	}
	cells := make([][]float64, len(p.Cells))
	for i, row := range p.Cells {
		cells[i] = make([]float64, len(row))
		for j, k := range perm {
			cells[i][j] = row[k]
		}
	}
	p.Cells = cells
	p.StackValues = append([]string{}, order...)
	return nil
}

// Reindex rearranges the factor rows to match order, which must name every
// factor exactly once.
func (p *Pivot) Reindex(order []table.Factor) error {
	if len(order) != len(p.Factors) {
		return fmt.Errorf("reshape: factor order has %d entries, pivot has %d factors",
			len(order), len(p.Factors))
	}
	idx := make(map[string]int, len(p.Factors))
	for i, f := range p.Factors {
		idx[f.Join("\x00")] = i
	}
	factors := make([]table.Factor, len(order))
	cells := make([][]float64, len(order))
	for i, f := range order {
		k, ok := idx[f.Join("\x00")]
		if !ok {
			return fmt.Errorf("reshape: factor (%s) not present in the data", f.Join(", "))
		}
		factors[i] = p.Factors[k]
		cells[i] = p.Cells[k]
	}
	p.Factors = factors
	p.Cells = cells
	return nil
}
