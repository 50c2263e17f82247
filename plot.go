package chartful

import (
	"fmt"
	"sort"
	"strings"

	"chartful/internal/render"
	"chartful/internal/reshape"
	"chartful/table"
)

// Plot exposes the plot families. Each method checks that the chart's axis
// types fit the family and returns a descriptive error when they do not.
type Plot struct {
	chart *Chart
}

func (p *Plot) requireAxes(family string, xKinds, yKinds []string) error {
	c := p.chart
	if !contains(xKinds, c.xKind) || !contains(yKinds, c.yKind) {
		return fmt.Errorf(
			"chartful: %s plots need an x axis of type %s and a y axis of type %s; chart has x=%s, y=%s",
			family, orList(xKinds), orList(yKinds), c.xKind, c.yKind)
	}
	return nil
}

func orList(kinds []string) string {
	if len(kinds) == 1 {
		return kinds[0]
	}
	return strings.Join(kinds[:len(kinds)-1], ", ") + " or " + kinds[len(kinds)-1]
}

var numericXKinds = []string{AxisLinear, AxisLog, AxisDatetime}
var numericYKinds = []string{AxisLinear, AxisLog}

// xyPoints extracts sorted (x, y) pairs from the table, converting datetime
// x values to epoch milliseconds.
func (p *Plot) xyPoints(t *table.Table, xColumn, yColumn string) ([][2]float64, error) {
	c := p.chart
	var xs []float64
	if c.xKind == AxisDatetime {
		times, err := t.Times(xColumn)
		if err != nil {
			return nil, err
		}
		xs = make([]float64, len(times))
		for i, ts := range times {
			xs[i] = epochMillis(ts)
		}
	} else {
		var err error
		xs, err = t.Floats(xColumn)
		if err != nil {
			return nil, err
		}
	}
	ys, err := t.Floats(yColumn)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(xs))
	for i := range xs {
		out[i] = [2]float64{xs[i], ys[i]}
		c.observe(xs[i], ys[i])
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out, nil
}

// groupedTables resolves the color order and slices the table per color
// value.
func groupedTables(t *table.Table, colorColumn string, colorOrder []string) ([]string, []*table.Table, error) {
	order, err := reshape.ColorOrder(t, colorColumn, colorOrder)
	if err != nil {
		return nil, nil, err
	}
	tables := make([]*table.Table, len(order))
	for i, value := range order {
		sub, err := t.FilterEq(colorColumn, value)
		if err != nil {
			return nil, nil, err
		}
		tables[i] = sub
	}
	return order, tables, nil
}

// LineArgs configures Line.
type LineArgs struct {
	Data             *table.Table
	XColumn, YColumn string

	// ColorColumn draws one line per distinct value; ColorOrder fixes
	// their ordering and must cover every distinct value.
	ColorColumn string
	ColorOrder  []string

	LineDash  string
	LineWidth float64
	Alpha     float64
}

// Line draws lines on numeric or datetime x axes.
func (p *Plot) Line(args LineArgs) error {
	if err := p.requireAxes("line", numericXKinds, numericYKinds); err != nil {
		return err
	}
	c := p.chart
	width := args.LineWidth
	if width == 0 {
		width = c.style.Settings.LineWidth
	}
	dash := args.LineDash
	if dash == "" {
		dash = c.style.Settings.LineDash
	}
	add := func(name string, xy [][2]float64, color string) {
		c.figure.AddSeries(render.Series{
			Kind:      render.KindLine,
			Name:      name,
			XY:        xy,
			Color:     color,
			LineWidth: width,
			LineDash:  dash,
			Opacity:   args.Alpha,
		})
	}
	if args.ColorColumn == "" {
		xy, err := p.xyPoints(args.Data, args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		add("", xy, c.style.NextColor(""))
		return nil
	}
	order, tables, err := groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	for i, value := range order {
		xy, err := p.xyPoints(tables[i], args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		add(value, xy, colors[i])
	}
	return nil
}

// ScatterArgs configures Scatter.
type ScatterArgs struct {
	Data             *table.Table
	XColumn, YColumn string

	ColorColumn string
	ColorOrder  []string

	// SizeColumn scales each point by a numeric column; Size sets a
	// constant point size.
	SizeColumn string
	Size       int

	Marker string
	Alpha  float64
}

// Scatter draws points on numeric or datetime x axes.
func (p *Plot) Scatter(args ScatterArgs) error {
	if err := p.requireAxes("scatter", numericXKinds, numericYKinds); err != nil {
		return err
	}
	c := p.chart
	add := func(t *table.Table, name, color string) error {
		xy, err := p.xyPoints(t, args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		var sizes []int
		if args.SizeColumn != "" {
			raw, err := t.Floats(args.SizeColumn)
			if err != nil {
				return err
			}
			sizes = make([]int, len(raw))
			for i, v := range raw {
				sizes[i] = int(v)
			}
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindScatter,
			Name:       name,
			XY:         xy,
			Color:      color,
			Symbol:     args.Marker,
			SymbolSize: args.Size,
			Sizes:      sizes,
			Opacity:    args.Alpha,
			ShowSymbol: true,
		})
		return nil
	}
	if args.ColorColumn == "" {
		return add(args.Data, "", c.style.NextColor(""))
	}
	order, tables, err := groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	for i, value := range order {
		if err := add(tables[i], value, colors[i]); err != nil {
			return err
		}
	}
	return nil
}

// TextArgs configures Text.
type TextArgs struct {
	Data             *table.Table
	XColumn, YColumn string
	TextColumn       string

	ColorColumn string
	ColorOrder  []string

	FontSize  int
	TextColor string
}

// Text writes a label from TextColumn at each (x, y) point.
func (p *Plot) Text(args TextArgs) error {
	if err := p.requireAxes("text", numericXKinds, numericYKinds); err != nil {
		return err
	}
	c := p.chart
	add := func(t *table.Table, name, color string) error {
		xy, err := p.xyPoints(t, args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		// xyPoints sorts by x; labels must follow the same order.
		texts, err := sortedTexts(t, args.XColumn, args.TextColumn, c.xKind)
		if err != nil {
			return err
		}
		labelColor := color
		if args.TextColor != "" {
			hex, err := resolveColor(args.TextColor, "")
			if err != nil {
				return err
			}
			labelColor = hex
		}
		c.figure.AddSeries(render.Series{
			Kind:          render.KindText,
			Name:          name,
			XY:            xy,
			Texts:         texts,
			LabelColor:    labelColor,
			LabelFontSize: float32(args.FontSize),
			LabelPosition: "right",
		})
		return nil
	}
	if args.ColorColumn == "" {
		return add(args.Data, "", c.style.NextColor(""))
	}
	order, tables, err := groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	for i, value := range order {
		if err := add(tables[i], value, colors[i]); err != nil {
			return err
		}
	}
	return nil
}

// sortedTexts returns the text column reordered by ascending x.
func sortedTexts(t *table.Table, xColumn, textColumn, xKind string) ([]string, error) {
	var xs []float64
	if xKind == AxisDatetime {
		times, err := t.Times(xColumn)
		if err != nil {
			return nil, err
		}
		xs = make([]float64, len(times))
		for i, ts := range times {
			xs[i] = epochMillis(ts)
		}
	} else {
		var err error
		xs, err = t.Floats(xColumn)
		if err != nil {
			return nil, err
		}
	}
	texts, err := t.Strings(textColumn)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	out := make([]string, len(texts))
	for i, k := range idx {
		out[i] = texts[k]
	}
	return out, nil
}

// AreaArgs configures Area.
type AreaArgs struct {
	Data             *table.Table
	XColumn, YColumn string

	// SecondYColumn shades the band between YColumn and SecondYColumn
	// instead of down to zero.
	SecondYColumn string

	ColorColumn string
	ColorOrder  []string

	// Stacked stacks the per-color areas on top of each other. Values are
	// assumed all-positive or all-negative.
	Stacked bool
}

// Area draws filled areas: a zero baseline by default, a band between two
// columns with SecondYColumn, stacked areas with Stacked.
func (p *Plot) Area(args AreaArgs) error {
	if err := p.requireAxes("area", numericXKinds, numericYKinds); err != nil {
		return err
	}
	c := p.chart
	if args.SecondYColumn != "" && (args.Stacked || args.ColorColumn != "") {
		return fmt.Errorf("chartful: area with a second y column cannot be stacked or color-grouped")
	}

	if args.SecondYColumn != "" {
		lower, err := p.xyPoints(args.Data, args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		upper, err := p.xyPoints(args.Data, args.XColumn, args.SecondYColumn)
		if err != nil {
			return err
		}
		color := c.style.NextColor("")
		// The band is a stacked delta on top of an invisible base line.
		delta := make([][2]float64, len(upper))
		for i := range upper {
			delta[i] = [2]float64{upper[i][0], upper[i][1] - lower[i][1]}
		}
		c.figure.AddSeries(render.Series{
			Kind: render.KindLine, Name: "", XY: lower,
			Color: color, Stack: "band", Opacity: 0, LineWidth: 0,
		})
		c.figure.AddSeries(render.Series{
			Kind: render.KindArea, Name: "", XY: delta,
			Color: color, Stack: "band", Opacity: .8, LineWidth: 0,
			NoLegend: true,
		})
		return nil
	}

	if args.ColorColumn == "" {
		xy, err := p.xyPoints(args.Data, args.XColumn, args.YColumn)
		if err != nil {
			return err
		}
		c.figure.AddSeries(render.Series{
			Kind: render.KindArea, Name: "", XY: xy,
			Color: c.style.NextColor(""), Opacity: .8,
		})
		return nil
	}

	order, err := reshape.ColorOrder(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return err
	}
	if c.xKind == AxisDatetime {
		return p.areaGroupedDatetime(args, order)
	}
	series, _, err := reshape.CompleteGrid(args.Data, args.XColumn, args.YColumn, args.ColorColumn, order)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	opacity := .2
	stack := ""
	if args.Stacked {
		opacity = .8
		stack = "area"
	}
	for i, s := range series {
		xy := make([][2]float64, len(s.X))
		for j := range s.X {
			xy[j] = [2]float64{s.X[j], s.Y[j]}
			c.observe(s.X[j], s.Y[j])
		}
		c.figure.AddSeries(render.Series{
			Kind: render.KindArea, Name: s.Group, XY: xy,
			Color: colors[i], Opacity: opacity, Stack: stack,
		})
	}
	if args.Stacked {
		c.figure.Legend.Reversed = c.figure.Legend.Orient == "vertical"
	}
	return nil
}

// areaGroupedDatetime completes the (x, group) grid on millisecond x values.
func (p *Plot) areaGroupedDatetime(args AreaArgs, order []string) error {
	c := p.chart
	times, err := args.Data.Times(args.XColumn)
	if err != nil {
		return err
	}
	millis := make([]any, len(times))
	for i, ts := range times {
		millis[i] = epochMillis(ts)
	}
	flat := table.New()
	if err := flat.AddColumn(args.XColumn, millis); err != nil {
		return err
	}
	ys, err := args.Data.Values(args.YColumn)
	if err != nil {
		return err
	}
	if err := flat.AddColumn(args.YColumn, ys); err != nil {
		return err
	}
	groups, err := args.Data.Values(args.ColorColumn)
	if err != nil {
		return err
	}
	if err := flat.AddColumn(args.ColorColumn, groups); err != nil {
		return err
	}
	series, _, err := reshape.CompleteGrid(flat, args.XColumn, args.YColumn, args.ColorColumn, order)
	if err != nil {
		return err
	}
	colors := c.style.NextColors(order)
	opacity := .2
	stack := ""
	if args.Stacked {
		opacity = .8
		stack = "area"
	}
	for i, s := range series {
		xy := make([][2]float64, len(s.X))
		for j := range s.X {
			xy[j] = [2]float64{s.X[j], s.Y[j]}
			c.observe(s.X[j], s.Y[j])
		}
		c.figure.AddSeries(render.Series{
			Kind: render.KindArea, Name: s.Group, XY: xy,
			Color: colors[i], Opacity: opacity, Stack: stack,
		})
	}
	if args.Stacked {
		c.figure.Legend.Reversed = c.figure.Legend.Orient == "vertical"
	}
	return nil
}
