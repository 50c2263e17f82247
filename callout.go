package chartful

import (
	"fmt"

	"chartful/internal/render"
)

// Callout draws reference annotations over the plotted data: lines, line
// segments, shaded boxes, and free text.
type Callout struct {
	chart *Chart
}

// Line draws a reference line across the plot at value. orientation "width"
// draws a horizontal line at a y value; "height" draws a vertical line at an
// x value (datetime x axes accept time.Time).
func (co *Callout) Line(value any, orientation, lineColor, lineDash string, lineWidth float64) error {
	c := co.chart
	color, err := resolveColor(lineColor, "#c0c0c0")
	if err != nil {
		return err
	}
	m := render.MarkLine{Color: color, Dash: lineDash, Width: lineWidth}
	if m.Width == 0 {
		m.Width = 2
	}
	switch orientation {
	case "width":
		y, err := c.xValueOn("y", value)
		if err != nil {
			return err
		}
		m.Y = &y
	case "height":
		x, err := c.xValueOn("x", value)
		if err != nil {
			return err
		}
		m.X = &x
	default:
		return fmt.Errorf("chartful: invalid callout orientation %q; use \"width\" or \"height\"", orientation)
	}
	c.figure.AddMarkLine(m)
	return nil
}

// Segment draws a line segment between two points.
func (co *Callout) Segment(x1, y1, x2, y2 any, lineColor, lineDash string, lineWidth float64) error {
	c := co.chart
	color, err := resolveColor(lineColor, "#c0c0c0")
	if err != nil {
		return err
	}
	fx1, err := c.xValueOn("x", x1)
	if err != nil {
		return err
	}
	fy1, err := c.xValueOn("y", y1)
	if err != nil {
		return err
	}
	fx2, err := c.xValueOn("x", x2)
	if err != nil {
		return err
	}
	fy2, err := c.xValueOn("y", y2)
	if err != nil {
		return err
	}
	width := lineWidth
	if width == 0 {
		width = 2
	}
	c.figure.AddMarkLine(render.MarkLine{
		X: &fx1, Y: &fy1, X2: &fx2, Y2: &fy2,
		Color: color, Dash: lineDash, Width: width,
	})
	return nil
}

// Box shades a rectangle. Nil bounds extend to the edge of the plotted data.
func (co *Callout) Box(top, bottom, left, right any, color string, alpha float64) error {
	c := co.chart
	hex, err := resolveColor(color, "#c0c0c0")
	if err != nil {
		return err
	}
	if alpha == 0 {
		alpha = .2
	}
	resolve := func(axis string, v any, fallback float64) (*float64, error) {
		if v == nil {
			if !c.hasExtents {
				return nil, fmt.Errorf("chartful: callout box bounds default to the data extent; plot data first or pass explicit bounds")
			}
			f := fallback
			return &f, nil
		}
		f, err := c.xValueOn(axis, v)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}
	y2, err := resolve("y", top, c.yMax)
	if err != nil {
		return err
	}
	y1, err := resolve("y", bottom, c.yMin)
	if err != nil {
		return err
	}
	x1, err := resolve("x", left, c.xMin)
	if err != nil {
		return err
	}
	x2, err := resolve("x", right, c.xMax)
	if err != nil {
		return err
	}
	c.figure.AddMarkArea(render.MarkArea{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Color: hex, Opacity: alpha,
	})
	return nil
}

// Text writes a free-text annotation at (x, y).
func (co *Callout) Text(text string, x, y any, textColor string, fontSize int) error {
	c := co.chart
	color, err := resolveColor(textColor, "#31302f")
	if err != nil {
		return err
	}
	fx, err := c.xValueOn("x", x)
	if err != nil {
		return err
	}
	fy, err := c.xValueOn("y", y)
	if err != nil {
		return err
	}
	if fontSize == 0 {
		fontSize = 12
	}
	c.figure.AddSeries(render.Series{
		Kind:          render.KindText,
		XY:            [][2]float64{{fx, fy}},
		Texts:         []string{text},
		LabelColor:    color,
		LabelFontSize: float32(fontSize),
		LabelPosition: "right",
		NoLegend:      true,
	})
	return nil
}

// xValueOn coerces a coordinate for the named axis.
func (c *Chart) xValueOn(axis string, v any) (float64, error) {
	if axis == "x" {
		return coerceCoord(c.xKind, v)
	}
	return coerceCoord(c.yKind, v)
}

// resolveColor turns a color name or hex into a hex value, with a default
// for the empty string.
func resolveColor(value, fallback string) (string, error) {
	if value == "" {
		value = fallback
	}
	c, err := NewColor(value)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
