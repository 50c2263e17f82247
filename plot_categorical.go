package chartful

import (
	"fmt"
	"math"

	"chartful/internal/render"
	"chartful/internal/reshape"
	"chartful/table"
)

// CategoricalArgs is the shared configuration of the categorical plot
// families: one or more grouping columns form the categorical axis, a numeric
// column supplies the values.
type CategoricalArgs struct {
	Data               *table.Table
	CategoricalColumns []string
	NumericColumn      string

	// ColorColumn colors by a column that is constant within each factor.
	ColorColumn string
	ColorOrder  []string

	// OrderBy sorts the factors: "values"/"count" by totals, "labels"
	// lexicographically, "" keeps first-appearance order. ExplicitOrder
	// overrides OrderBy with an exact factor list.
	OrderBy       string
	ExplicitOrder []table.Factor
	Ascending     bool
}

// categoricalOrientation checks that exactly one axis is categorical and the
// other numeric, and reports whether the chart is horizontal.
func (p *Plot) categoricalOrientation(family string) (bool, error) {
	c := p.chart
	xCat := c.xKind == AxisCategorical
	yCat := c.yKind == AxisCategorical
	switch {
	case xCat && !yCat:
		return false, nil
	case yCat && !xCat:
		return true, nil
	default:
		return false, fmt.Errorf(
			"chartful: %s plots need one categorical axis and one numeric axis; chart has x=%s, y=%s",
			family, c.xKind, c.yKind)
	}
}

// pivotOrdered pivots the data on the categorical columns and applies the
// requested factor ordering.
func pivotOrdered(args CategoricalArgs, stackColumn string) (*reshape.Pivot, error) {
	pivot, err := reshape.PivotSum(args.Data, args.CategoricalColumns, args.NumericColumn, stackColumn)
	if err != nil {
		return nil, err
	}
	if err := pivot.OrderFactors(args.OrderBy, args.ExplicitOrder, args.Ascending); err != nil {
		return nil, err
	}
	return pivot, nil
}

// setCategoricalAxis records the factor ordering on the categorical axis.
func (p *Plot) setCategoricalAxis(horizontal bool, factors []table.Factor) {
	c := p.chart
	labels := factorLabels(factors)
	if horizontal {
		c.axes.yFactors = factors
		c.figure.Y.Data = labels
		c.figure.Horizontal = true
	} else {
		c.axes.xFactors = factors
		c.figure.X.Data = labels
	}
	for i := range factors {
		// Category positions count as extents on the categorical dimension.
		if horizontal {
			c.observe(0, float64(i))
		} else {
			c.observe(float64(i), 0)
		}
	}
}

// factorColors resolves one color per factor from the color column, which
// must be constant within each factor.
func (p *Plot) factorColors(args CategoricalArgs, factors []table.Factor) ([]string, error) {
	index := make([][]string, len(args.CategoricalColumns))
	for i, col := range args.CategoricalColumns {
		vals, err := args.Data.Strings(col)
		if err != nil {
			return nil, err
		}
		index[i] = vals
	}
	colorCells, err := args.Data.Strings(args.ColorColumn)
	if err != nil {
		return nil, err
	}
	valueOf := make(map[string]string)
	for row := range colorCells {
		factor := make(table.Factor, len(index))
		for i := range index {
			factor[i] = index[i][row]
		}
		key := factor.Join("\x00")
		if prev, ok := valueOf[key]; ok && prev != colorCells[row] {
			return nil, fmt.Errorf(
				"chartful: color column %q is not constant within grouping (%s)",
				args.ColorColumn, factor.Join(", "))
		}
		valueOf[key] = colorCells[row]
	}
	order, err := reshape.ColorOrder(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return nil, err
	}
	hexes := p.chart.style.NextColors(order)
	hexOf := make(map[string]string, len(order))
	for i, v := range order {
		hexOf[v] = hexes[i]
	}
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = hexOf[valueOf[f.Join("\x00")]]
	}
	return out, nil
}

func barGapForFactors(n int) string {
	return fmt.Sprintf("%d%%", int(math.Round((1-reshape.BarWidthForFactors(n))*100)))
}

// Bar draws one bar per factor.
func (p *Plot) Bar(args CategoricalArgs) error {
	horizontal, err := p.categoricalOrientation("bar")
	if err != nil {
		return err
	}
	c := p.chart
	pivot, err := pivotOrdered(args, "")
	if err != nil {
		return err
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	values, err := pivot.StackColumn("")
	if err != nil {
		return err
	}
	for _, v := range values {
		if horizontal {
			c.observe(v, 0)
		} else {
			c.observe(0, v)
		}
	}
	s := render.Series{
		Kind:       render.KindBar,
		Categories: factorLabels(pivot.Factors),
		Values:     values,
		Color:      c.style.NextColor(""),
		NoLegend:   true,
	}
	if args.ColorColumn != "" {
		colors, err := p.factorColors(args, pivot.Factors)
		if err != nil {
			return err
		}
		s.Colors = colors
	}
	c.figure.BarCategoryGap = barGapForFactors(len(pivot.Factors))
	c.figure.AddSeries(s)
	return nil
}

// BarStackedArgs configures BarStacked.
type BarStackedArgs struct {
	CategoricalArgs

	// StackColumn splits each bar into stacked segments; it doubles as the
	// color column. Normalize scales each bar so its segments sum to 1.
	StackColumn string
	Normalize   bool
}

// BarStacked draws stacked bars, one segment per stack value.
func (p *Plot) BarStacked(args BarStackedArgs) error {
	horizontal, err := p.categoricalOrientation("stacked bar")
	if err != nil {
		return err
	}
	c := p.chart
	if args.StackColumn == "" {
		return fmt.Errorf("chartful: stacked bars need a stack column")
	}
	pivot, err := pivotOrdered(args.CategoricalArgs, args.StackColumn)
	if err != nil {
		return err
	}
	if args.ColorOrder != nil {
		if err := pivot.ReorderStacks(args.ColorOrder); err != nil {
			return err
		}
	}
	if args.Normalize {
		pivot.Normalize()
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	for _, total := range pivot.RowTotals() {
		if horizontal {
			c.observe(total, 0)
		} else {
			c.observe(0, total)
		}
	}
	colors := c.style.NextColors(pivot.StackValues)
	labels := factorLabels(pivot.Factors)
	for j, stack := range pivot.StackValues {
		values, err := pivot.StackColumn(stack)
		if err != nil {
			return err
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindBar,
			Name:       stack,
			Categories: labels,
			Values:     values,
			Color:      colors[j],
			Stack:      "stacked",
		})
	}
	c.figure.BarCategoryGap = barGapForFactors(len(pivot.Factors))
	// Vertical legends read top-down while stacks build bottom-up.
	c.figure.Legend.Reversed = c.figure.Legend.Orient == "vertical"
	return nil
}

// Lollipop draws a thin bar per factor topped with a dot.
func (p *Plot) Lollipop(args CategoricalArgs) error {
	horizontal, err := p.categoricalOrientation("lollipop")
	if err != nil {
		return err
	}
	c := p.chart
	pivot, err := pivotOrdered(args, "")
	if err != nil {
		return err
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	values, err := pivot.StackColumn("")
	if err != nil {
		return err
	}
	for _, v := range values {
		if horizontal {
			c.observe(v, 0)
		} else {
			c.observe(0, v)
		}
	}
	labels := factorLabels(pivot.Factors)
	stem := render.Series{
		Kind:       render.KindBar,
		Categories: labels,
		Values:     values,
		Color:      c.style.NextColor(""),
		NoLegend:   true,
	}
	head := render.Series{
		Kind:       render.KindScatter,
		Categories: labels,
		Values:     values,
		Color:      stem.Color,
		SymbolSize: 12,
		NoLegend:   true,
	}
	if args.ColorColumn != "" {
		colors, err := p.factorColors(args, pivot.Factors)
		if err != nil {
			return err
		}
		stem.Colors = colors
		head.Colors = colors
	}
	c.figure.BarCategoryGap = "92%"
	c.figure.AddSeries(stem)
	c.figure.AddSeries(head)
	return nil
}

// Parallel draws one line per color value across the categorical axis.
func (p *Plot) Parallel(args CategoricalArgs) error {
	horizontal, err := p.categoricalOrientation("parallel")
	if err != nil {
		return err
	}
	c := p.chart
	if args.ColorColumn == "" {
		return fmt.Errorf("chartful: parallel plots need a color column")
	}
	pivot, err := pivotOrdered(args, args.ColorColumn)
	if err != nil {
		return err
	}
	if args.ColorOrder != nil {
		if err := pivot.ReorderStacks(args.ColorOrder); err != nil {
			return err
		}
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	colors := c.style.NextColors(pivot.StackValues)
	labels := factorLabels(pivot.Factors)
	for j, stack := range pivot.StackValues {
		values, err := pivot.StackColumn(stack)
		if err != nil {
			return err
		}
		for _, v := range values {
			if horizontal {
				c.observe(v, 0)
			} else {
				c.observe(0, v)
			}
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindLine,
			Name:       stack,
			Categories: labels,
			Values:     values,
			Color:      colors[j],
			LineWidth:  c.style.Settings.LineWidth,
			LineDash:   c.style.Settings.LineDash,
		})
	}
	return nil
}

// CategoricalScatter draws one point per row at (factor, value), keeping
// duplicate observations instead of aggregating them.
func (p *Plot) CategoricalScatter(args CategoricalArgs) error {
	horizontal, err := p.categoricalOrientation("categorical scatter")
	if err != nil {
		return err
	}
	c := p.chart
	// Factor ordering still comes from the aggregated pivot.
	pivot, err := pivotOrdered(args, "")
	if err != nil {
		pivot = nil
	}
	index := make([][]string, len(args.CategoricalColumns))
	for i, col := range args.CategoricalColumns {
		vals, serr := args.Data.Strings(col)
		if serr != nil {
			return serr
		}
		index[i] = vals
	}
	values, err := args.Data.Floats(args.NumericColumn)
	if err != nil {
		return err
	}
	rowLabels := make([]string, len(values))
	for row := range values {
		factor := make(table.Factor, len(index))
		for i := range index {
			factor[i] = index[i][row]
		}
		rowLabels[row] = factor.Join(factorSeparator)
		if horizontal {
			c.observe(values[row], 0)
		} else {
			c.observe(0, values[row])
		}
	}
	var factors []table.Factor
	if pivot != nil {
		factors = pivot.Factors
	} else {
		seen := map[string]bool{}
		for row := range rowLabels {
			factor := make(table.Factor, len(index))
			for i := range index {
				factor[i] = index[i][row]
			}
			key := factor.Join("\x00")
			if !seen[key] {
				seen[key] = true
				factors = append(factors, factor)
			}
		}
	}
	p.setCategoricalAxis(horizontal, factors)
	add := func(name string, labels []string, vals []float64, color string) {
		c.figure.AddSeries(render.Series{
			Kind:       render.KindScatter,
			Name:       name,
			Categories: labels,
			Values:     vals,
			Color:      color,
			SymbolSize: 10,
			NoLegend:   name == "",
		})
	}
	if args.ColorColumn == "" {
		add("", rowLabels, values, c.style.NextColor(""))
		return nil
	}
	order, err := reshape.ColorOrder(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return err
	}
	colorCells, err := args.Data.Strings(args.ColorColumn)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	for k, value := range order {
		var labels []string
		var vals []float64
		for row := range colorCells {
			if colorCells[row] != value {
				continue
			}
			labels = append(labels, rowLabels[row])
			vals = append(vals, values[row])
		}
		add(value, labels, vals, colors[k])
	}
	return nil
}

// CategoricalTextArgs configures CategoricalText.
type CategoricalTextArgs struct {
	CategoricalArgs

	// TextColumn supplies the labels; empty means the numeric values
	// themselves, formatted per TextFormat (a numeral format).
	TextColumn string
	TextColor  string
	FontSize   int
}

// CategoricalText writes a label at each factor's value.
func (p *Plot) CategoricalText(args CategoricalTextArgs) error {
	horizontal, err := p.categoricalOrientation("categorical text")
	if err != nil {
		return err
	}
	c := p.chart
	pivot, err := pivotOrdered(args.CategoricalArgs, "")
	if err != nil {
		return err
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	values, err := pivot.StackColumn("")
	if err != nil {
		return err
	}
	texts, err := p.factorTexts(args, pivot.Factors, values)
	if err != nil {
		return err
	}
	color, err := resolveColor(args.TextColor, "#31302f")
	if err != nil {
		return err
	}
	position := "top"
	if horizontal {
		position = "right"
	}
	c.figure.AddSeries(render.Series{
		Kind:          render.KindText,
		Categories:    factorLabels(pivot.Factors),
		Values:        values,
		Texts:         texts,
		LabelColor:    color,
		LabelFontSize: float32(args.FontSize),
		LabelPosition: position,
		NoLegend:      true,
	})
	return nil
}

func (p *Plot) factorTexts(args CategoricalTextArgs, factors []table.Factor, values []float64) ([]string, error) {
	if args.TextColumn == "" {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = table.CellString(v)
		}
		return out, nil
	}
	index := make([][]string, len(args.CategoricalColumns))
	for i, col := range args.CategoricalColumns {
		vals, err := args.Data.Strings(col)
		if err != nil {
			return nil, err
		}
		index[i] = vals
	}
	cells, err := args.Data.Strings(args.TextColumn)
	if err != nil {
		return nil, err
	}
	textOf := make(map[string]string)
	for row := range cells {
		factor := make(table.Factor, len(index))
		for i := range index {
			factor[i] = index[i][row]
		}
		textOf[factor.Join("\x00")] = cells[row]
	}
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = textOf[f.Join("\x00")]
	}
	return out, nil
}

// CategoricalTextStackedArgs configures CategoricalTextStacked.
type CategoricalTextStackedArgs struct {
	CategoricalTextArgs
	StackColumn string
	Normalize   bool
}

// CategoricalTextStacked writes a label at the midpoint of each stacked bar
// segment; pair it with BarStacked on the same chart.
func (p *Plot) CategoricalTextStacked(args CategoricalTextStackedArgs) error {
	horizontal, err := p.categoricalOrientation("stacked categorical text")
	if err != nil {
		return err
	}
	c := p.chart
	if args.StackColumn == "" {
		return fmt.Errorf("chartful: stacked text needs a stack column")
	}
	pivot, err := pivotOrdered(args.CategoricalArgs, args.StackColumn)
	if err != nil {
		return err
	}
	if args.ColorOrder != nil {
		if err := pivot.ReorderStacks(args.ColorOrder); err != nil {
			return err
		}
	}
	if args.Normalize {
		pivot.Normalize()
	}
	p.setCategoricalAxis(horizontal, pivot.Factors)
	color, err := resolveColor(args.TextColor, "#31302f")
	if err != nil {
		return err
	}
	labels := factorLabels(pivot.Factors)
	mids := pivot.StackMidpoints()
	for j := range pivot.StackValues {
		values := make([]float64, len(pivot.Factors))
		texts := make([]string, len(pivot.Factors))
		for i := range pivot.Factors {
			values[i] = mids[i][j]
			texts[i] = table.CellString(pivot.Cells[i][j])
		}
		c.figure.AddSeries(render.Series{
			Kind:          render.KindText,
			Categories:    labels,
			Values:        values,
			Texts:         texts,
			LabelColor:    color,
			LabelPosition: "inside",
			NoLegend:      true,
		})
	}
	return nil
}

// IntervalArgs configures Interval.
type IntervalArgs struct {
	Data               *table.Table
	CategoricalColumns []string

	LowerColumn  string
	UpperColumn  string
	MiddleColumn string

	OrderBy       string
	ExplicitOrder []table.Factor
	Ascending     bool
}

// Interval draws a floating bar from the lower to the upper bound of each
// factor, with an optional midpoint marker.
func (p *Plot) Interval(args IntervalArgs) error {
	horizontal, err := p.categoricalOrientation("interval")
	if err != nil {
		return err
	}
	c := p.chart
	lowerPivot, err := pivotOrdered(CategoricalArgs{
		Data:               args.Data,
		CategoricalColumns: args.CategoricalColumns,
		NumericColumn:      args.LowerColumn,
		OrderBy:            args.OrderBy,
		ExplicitOrder:      args.ExplicitOrder,
		Ascending:          args.Ascending,
	}, "")
	if err != nil {
		return err
	}
	upperPivot, err := reshape.PivotSum(args.Data, args.CategoricalColumns, args.UpperColumn, "")
	if err != nil {
		return err
	}
	if err := upperPivot.Reindex(lowerPivot.Factors); err != nil {
		return err
	}
	lower, err := lowerPivot.StackColumn("")
	if err != nil {
		return err
	}
	upper, err := upperPivot.StackColumn("")
	if err != nil {
		return err
	}
	p.setCategoricalAxis(horizontal, lowerPivot.Factors)
	span := make([]float64, len(lower))
	for i := range lower {
		if upper[i] < lower[i] {
			return fmt.Errorf(
				"chartful: interval upper bound %v is below lower bound %v for (%s)",
				upper[i], lower[i], lowerPivot.Factors[i].Join(", "))
		}
		span[i] = upper[i] - lower[i]
		if horizontal {
			c.observe(lower[i], 0)
			c.observe(upper[i], 0)
		} else {
			c.observe(0, lower[i])
			c.observe(0, upper[i])
		}
	}
	// Interval spans are often narrow; tick precision follows the spread.
	loBound, hiBound := lower[0], upper[0]
	for i := range lower {
		loBound = math.Min(loBound, lower[i])
		hiBound = math.Max(hiBound, upper[i])
	}
	tickFormat := render.NumeralJS(reshape.TickFormatPrecision(loBound, hiBound))
	if horizontal {
		c.figure.X.FormatterJS = tickFormat
	} else {
		c.figure.Y.FormatterJS = tickFormat
	}

	labels := factorLabels(lowerPivot.Factors)
	color := c.style.NextColor("")
	// An invisible base bar floats the visible span off the axis.
	c.figure.AddSeries(render.Series{
		Kind:       render.KindBar,
		Categories: labels,
		Values:     lower,
		Color:      "rgba(0,0,0,0)",
		Stack:      "interval",
		NoLegend:   true,
	})
	c.figure.AddSeries(render.Series{
		Kind:       render.KindBar,
		Categories: labels,
		Values:     span,
		Color:      color,
		Stack:      "interval",
		NoLegend:   true,
	})
	// The configured bar geometry decides how much of each category slot the
	// span fills.
	g := c.style.Settings.Interval.geometry()
	slotStart, _, slotEnd := g.BarEdges(0, 1)
	slotWidth := slotEnd + g.Margin
	if slotWidth > 0 {
		fill := (slotEnd - slotStart) / slotWidth
		c.figure.BarCategoryGap = fmt.Sprintf("%d%%", int(math.Round((1-fill)*100)))
	}
	if args.MiddleColumn != "" {
		middlePivot, err := reshape.PivotSum(args.Data, args.CategoricalColumns, args.MiddleColumn, "")
		if err != nil {
			return err
		}
		if err := middlePivot.Reindex(lowerPivot.Factors); err != nil {
			return err
		}
		middle, err := middlePivot.StackColumn("")
		if err != nil {
			return err
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindScatter,
			Categories: labels,
			Values:     middle,
			Color:      "white",
			Symbol:     "rect",
			SymbolSize: 8,
			NoLegend:   true,
		})
	}
	return nil
}

// HeatmapArgs configures Heatmap.
type HeatmapArgs struct {
	Data             *table.Table
	XColumn, YColumn string
	ValueColumn      string

	// PaletteName picks the color ramp; "" uses the sequential default.
	PaletteName string

	// TextValues writes each cell's value into the cell.
	TextValues bool
	TextColor  string
}

// Heatmap colors the (x, y) category grid by the value column. Both axes
// must be categorical.
func (p *Plot) Heatmap(args HeatmapArgs) error {
	c := p.chart
	if c.xKind != AxisCategorical || c.yKind != AxisCategorical {
		return fmt.Errorf(
			"chartful: heatmaps need categorical x and y axes; chart has x=%s, y=%s",
			c.xKind, c.yKind)
	}
	pivot, err := reshape.PivotSum(args.Data, []string{args.XColumn}, args.ValueColumn, args.YColumn)
	if err != nil {
		return err
	}
	paletteName := args.PaletteName
	if paletteName == "" {
		paletteName = CurrentOptions().PaletteSequential
	}
	palette, err := PaletteByName(paletteName)
	if err != nil {
		return err
	}
	xLabels := factorLabels(pivot.Factors)
	c.figure.X.Data = xLabels
	c.figure.Y.Data = pivot.StackValues
	c.axes.xFactors = pivot.Factors
	for _, s := range pivot.StackValues {
		c.axes.yFactors = append(c.axes.yFactors, table.Factor{s})
	}

	var cats, ycats []string
	var values []float64
	min, max := math.Inf(1), math.Inf(-1)
	for i := range pivot.Factors {
		for j, stack := range pivot.StackValues {
			v := pivot.Cells[i][j]
			cats = append(cats, xLabels[i])
			ycats = append(ycats, stack)
			values = append(values, v)
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	c.figure.VMap = &render.VisualMap{Min: min, Max: max, Colors: palette.Hexes(), Show: true}
	c.figure.AddSeries(render.Series{
		Kind:        render.KindHeat,
		Categories:  cats,
		YCategories: ycats,
		Values:      values,
		NoLegend:    true,
	})
	if args.TextValues {
		color, err := resolveColor(args.TextColor, "#31302f")
		if err != nil {
			return err
		}
		texts := make([]string, len(values))
		for i, v := range values {
			texts[i] = table.CellString(v)
		}
		c.figure.AddSeries(render.Series{
			Kind:          render.KindText,
			Categories:    cats,
			YCategories:   ycats,
			Values:        values,
			Texts:         texts,
			LabelColor:    color,
			LabelPosition: "inside",
			NoLegend:      true,
		})
	}
	return nil
}
