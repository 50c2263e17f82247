package chartful

import (
	"chartful/internal/render"
	"chartful/internal/reshape"
	"chartful/table"
)

// RadarChart plots values on equally spaced spokes around the origin. It
// wraps a square linear chart with hidden axes; the radial layout is computed
// here, not by the backend.
type RadarChart struct {
	chart *Chart
}

// NewRadar creates a radar chart.
func NewRadar(layout string) (*RadarChart, error) {
	c, err := New(layout, AxisLinear, AxisLinear)
	if err != nil {
		return nil, err
	}
	c.axes.HideXAxis()
	c.axes.HideYAxis()
	if !c.blankLabels {
		c.figure.X.Label = ""
		c.figure.Y.Label = ""
	}
	return &RadarChart{chart: c}, nil
}

// Chart returns the underlying chart for titles, style, and export.
func (rc *RadarChart) Chart() *Chart { return rc.chart }

// RadarArgs configures the radar plot families. Rows are consumed in order;
// every group must carry the same number of rows, one per spoke.
type RadarArgs struct {
	Data    *table.Table
	RColumn string

	ColorColumn string
	ColorOrder  []string

	LineWidth float64
	Alpha     float64
}

// groupRadii slices the radii per color group, with the group's color.
func (rc *RadarChart) groupRadii(args RadarArgs) ([]string, [][]float64, []string, error) {
	c := rc.chart
	if args.ColorColumn == "" {
		radii, err := args.Data.Floats(args.RColumn)
		if err != nil {
			return nil, nil, nil, err
		}
		return []string{""}, [][]float64{radii}, []string{c.style.NextColor("")}, nil
	}
	order, tables, err := groupedTables(args.Data, args.ColorColumn, args.ColorOrder)
	if err != nil {
		return nil, nil, nil, err
	}
	radii := make([][]float64, len(order))
	for i := range order {
		radii[i], err = tables[i].Floats(args.RColumn)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return order, radii, c.style.NextColors(order), nil
}

// closedLoop projects radii onto the spokes and closes the polygon.
func (rc *RadarChart) closedLoop(radii []float64) ([][2]float64, error) {
	thetas, err := reshape.Thetas(len(radii))
	if err != nil {
		return nil, err
	}
	xs, ys, err := reshape.PolarXY(radii, thetas, 0)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(xs)+1)
	for i := range xs {
		out[i] = [2]float64{xs[i], ys[i]}
		rc.chart.observe(xs[i], ys[i])
	}
	out[len(xs)] = out[0]
	return out, nil
}

// Perimeter draws the polygon outline through each group's spoke values.
func (rc *RadarChart) Perimeter(args RadarArgs) error {
	c := rc.chart
	groups, radii, colors, err := rc.groupRadii(args)
	if err != nil {
		return err
	}
	width := args.LineWidth
	if width == 0 {
		width = c.style.Settings.LineWidth
	}
	for k, group := range groups {
		xy, err := rc.closedLoop(radii[k])
		if err != nil {
			return err
		}
		c.figure.AddSeries(render.Series{
			Kind:      render.KindLine,
			Name:      group,
			XY:        xy,
			Color:     colors[k],
			LineWidth: width,
			LineDash:  "solid",
			Opacity:   args.Alpha,
			NoLegend:  group == "",
		})
	}
	return nil
}

// Area fills the polygon through each group's spoke values.
func (rc *RadarChart) Area(args RadarArgs) error {
	c := rc.chart
	groups, radii, colors, err := rc.groupRadii(args)
	if err != nil {
		return err
	}
	alpha := args.Alpha
	if alpha == 0 {
		alpha = .2
	}
	for k, group := range groups {
		xy, err := rc.closedLoop(radii[k])
		if err != nil {
			return err
		}
		c.figure.AddSeries(render.Series{
			Kind:      render.KindArea,
			Name:      group,
			XY:        xy,
			Color:     colors[k],
			LineWidth: 1,
			LineDash:  "solid",
			Opacity:   alpha,
			NoLegend:  group == "",
		})
	}
	return nil
}

// Radius draws a spoke from the origin to each value.
func (rc *RadarChart) Radius(args RadarArgs) error {
	c := rc.chart
	groups, radii, colors, err := rc.groupRadii(args)
	if err != nil {
		return err
	}
	width := args.LineWidth
	if width == 0 {
		width = c.style.Settings.LineWidth
	}
	for k, group := range groups {
		thetas, err := reshape.Thetas(len(radii[k]))
		if err != nil {
			return err
		}
		xs, ys, err := reshape.PolarXY(radii[k], thetas, 0)
		if err != nil {
			return err
		}
		for i := range xs {
			c.observe(xs[i], ys[i])
			c.figure.AddSeries(render.Series{
				Kind:      render.KindLine,
				Name:      group,
				XY:        [][2]float64{{0, 0}, {xs[i], ys[i]}},
				Color:     colors[k],
				LineWidth: width,
				LineDash:  "solid",
				// One legend entry per group, not per spoke.
				NoLegend: group == "" || i > 0,
			})
		}
	}
	return nil
}

// RadarTextArgs configures RadarText.
type RadarTextArgs struct {
	RadarArgs
	TextColumn string

	// Offset pushes the labels outward from their spoke values.
	Offset    float64
	TextColor string
}

// RadarText writes a label at each spoke value, pushed outward by Offset.
func (rc *RadarChart) RadarText(args RadarTextArgs) error {
	c := rc.chart
	groups, radii, colors, err := rc.groupRadii(args.RadarArgs)
	if err != nil {
		return err
	}
	for k, group := range groups {
		thetas, err := reshape.Thetas(len(radii[k]))
		if err != nil {
			return err
		}
		xs, ys, err := reshape.PolarXY(radii[k], thetas, args.Offset)
		if err != nil {
			return err
		}
		var texts []string
		if args.TextColumn != "" {
			sub := args.Data
			if args.ColorColumn != "" {
				sub, err = args.Data.FilterEq(args.ColorColumn, group)
				if err != nil {
					return err
				}
			}
			texts, err = sub.Strings(args.TextColumn)
			if err != nil {
				return err
			}
		} else {
			texts = make([]string, len(radii[k]))
			for i, r := range radii[k] {
				texts[i] = table.CellString(r)
			}
		}
		color := colors[k]
		if args.TextColor != "" {
			hex, err := resolveColor(args.TextColor, "")
			if err != nil {
				return err
			}
			color = hex
		}
		xy := make([][2]float64, len(xs))
		for i := range xs {
			xy[i] = [2]float64{xs[i], ys[i]}
			c.observe(xs[i], ys[i])
		}
		c.figure.AddSeries(render.Series{
			Kind:          render.KindText,
			XY:            xy,
			Texts:         texts,
			LabelColor:    color,
			LabelPosition: "inside",
			NoLegend:      true,
		})
	}
	return nil
}
