package chartful

import (
	"fmt"
	"sort"

	"chartful/internal/render"
	"chartful/internal/reshape"
	"chartful/table"
)

// HistogramArgs configures Histogram.
type HistogramArgs struct {
	Data         *table.Table
	ValuesColumn string

	ColorColumn string
	ColorOrder  []string

	// Bins picks the bin-count estimator ("auto", "fd", "sturges", "scott",
	// "rice", "sqrt", "doane"); BinCount fixes the count; BinEdges fixes the
	// edges outright.
	Bins     string
	BinCount int
	BinEdges []float64

	// Method aggregates each bin as "count", "density", or "mass";
	// "" means "count".
	Method string
}

// requireDensity checks that the chart has one density axis next to a
// numeric one.
func (p *Plot) requireDensity(family string) error {
	c := p.chart
	xOK := c.xKind == AxisLinear && c.yKind == AxisDensity
	yOK := c.xKind == AxisDensity && c.yKind == AxisLinear
	if !xOK && !yOK {
		return fmt.Errorf(
			"chartful: %s plots need one density axis and one linear axis; chart has x=%s, y=%s",
			family, c.xKind, c.yKind)
	}
	return nil
}

// Histogram bins the values column and draws one bar per bin. With a color
// column the groups share edges computed over all values.
func (p *Plot) Histogram(args HistogramArgs) error {
	if err := p.requireDensity("histogram"); err != nil {
		return err
	}
	c := p.chart
	method := args.Method
	if method == "" {
		method = reshape.HistCount
	}
	all, err := args.Data.Floats(args.ValuesColumn)
	if err != nil {
		return err
	}
	edges, err := reshape.BinEdges(all, args.Bins, args.BinCount, args.BinEdges)
	if err != nil {
		return err
	}

	groups := []string{""}
	tables := []*table.Table{args.Data}
	if args.ColorColumn != "" {
		groups, tables, err = groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
		if err != nil {
			return err
		}
	}
	colors := c.style.NextColors(groups)

	// The bin midpoints become the category axis; the backend draws the
	// bars flush.
	horizontal := c.xKind == AxisDensity
	mids := (&reshape.Bins{Edges: edges}).Midpoints()
	labels := make([]string, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		labels[i] = table.CellString(mids[i])
	}
	if horizontal {
		c.figure.Y.Kind = "category"
		c.figure.Y.Data = labels
		c.figure.Horizontal = true
	} else {
		c.figure.X.Kind = "category"
		c.figure.X.Data = labels
	}
	c.figure.BarCategoryGap = "0%"

	for k, group := range groups {
		vals, err := tables[k].Floats(args.ValuesColumn)
		if err != nil {
			return err
		}
		bins, err := reshape.Histogram(vals, edges, method)
		if err != nil {
			return err
		}
		for i, v := range bins.Values {
			if horizontal {
				c.observe(v, mids[i])
			} else {
				c.observe(mids[i], v)
			}
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindBar,
			Name:       group,
			Categories: labels,
			Values:     bins.Values,
			Color:      colors[k],
			Opacity:    .8,
			NoLegend:   group == "",
		})
	}
	return nil
}

// KDEArgs configures KDE.
type KDEArgs struct {
	Data         *table.Table
	ValuesColumn string

	ColorColumn string
	ColorOrder  []string

	// Shade fills the area under each curve.
	Shade bool
}

// KDE draws a kernel density estimate of the values column.
func (p *Plot) KDE(args KDEArgs) error {
	if err := p.requireDensity("density"); err != nil {
		return err
	}
	c := p.chart
	groups := []string{""}
	tables := []*table.Table{args.Data}
	var err error
	if args.ColorColumn != "" {
		groups, tables, err = groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
		if err != nil {
			return err
		}
	}
	colors := c.style.NextColors(groups)
	horizontal := c.xKind == AxisDensity
	for k, group := range groups {
		vals, err := tables[k].Floats(args.ValuesColumn)
		if err != nil {
			return err
		}
		xs, ys, err := reshape.KDE(vals)
		if err != nil {
			return err
		}
		xy := make([][2]float64, len(xs))
		for i := range xs {
			if horizontal {
				xy[i] = [2]float64{ys[i], xs[i]}
				c.observe(ys[i], xs[i])
			} else {
				xy[i] = [2]float64{xs[i], ys[i]}
				c.observe(xs[i], ys[i])
			}
		}
		kind := render.KindLine
		opacity := 0.0
		if args.Shade {
			kind = render.KindArea
			opacity = .4
		}
		c.figure.AddSeries(render.Series{
			Kind:      kind,
			Name:      group,
			XY:        xy,
			Color:     colors[k],
			LineWidth: 2,
			LineDash:  "solid",
			Opacity:   opacity,
			NoLegend:  group == "",
		})
	}
	return nil
}

// HexbinArgs configures Hexbin.
type HexbinArgs struct {
	Data             *table.Table
	XColumn, YColumn string

	// Size is the hex tile radius in data units.
	Size        float64
	Orientation string // "pointytop" (default) or "flattop"

	// PaletteName picks the count color ramp; "" uses the sequential
	// default.
	PaletteName string
}

// Hexbin bins the points into hexagonal tiles and colors each tile by its
// observation count.
func (p *Plot) Hexbin(args HexbinArgs) error {
	if err := p.requireAxes("hexbin", []string{AxisDensity}, []string{AxisDensity}); err != nil {
		return err
	}
	c := p.chart
	xs, err := args.Data.Floats(args.XColumn)
	if err != nil {
		return err
	}
	ys, err := args.Data.Floats(args.YColumn)
	if err != nil {
		return err
	}
	orientation := args.Orientation
	if orientation == "" {
		orientation = reshape.HexPointyTop
	}
	size := args.Size
	if size == 0 {
		size = 1
	}
	aspect := float64(c.style.PlotWidth()) / float64(c.style.PlotHeight())
	tiles, err := reshape.HexBin(xs, ys, size, orientation, aspect)
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

	// One series per distinct count, colored along the ramp.
	byCount := make(map[int][]reshape.HexTile)
	var counts []int
	for _, tile := range tiles {
		if _, ok := byCount[tile.Count]; !ok {
			counts = append(counts, tile.Count)
		}
		byCount[tile.Count] = append(byCount[tile.Count], tile)
	}
	sort.Ints(counts)
	ramp := palette.Expand(len(counts)).Hexes()
	for k, count := range counts {
		group := byCount[count]
		xy := make([][2]float64, len(group))
		for i, tile := range group {
			xy[i] = [2]float64{tile.X, tile.Y}
			c.observe(tile.X, tile.Y)
		}
		c.figure.AddSeries(render.Series{
			Kind:       render.KindScatter,
			Name:       fmt.Sprintf("%d", count),
			XY:         xy,
			Color:      ramp[k*(len(ramp)-1)/maxInt(len(counts)-1, 1)],
			SymbolSize: 18,
			NoLegend:   true,
		})
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
