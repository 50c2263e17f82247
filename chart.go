package chartful

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chartful/internal/headless"
	"chartful/internal/render"
)

// Axis types accepted by New.
const (
	AxisLinear      = "linear"
	AxisLog         = "log"
	AxisDatetime    = "datetime"
	AxisCategorical = "categorical"
	AxisDensity     = "density"
)

// Output formats accepted by Save.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatSVG  = "svg"
)

var validXAxisTypes = []string{AxisLinear, AxisLog, AxisDatetime, AxisCategorical, AxisDensity}
var validYAxisTypes = []string{AxisLinear, AxisLog, AxisCategorical, AxisDensity}

// Chart is a single plot surface with a style, axes, and annotation helpers.
// The x and y axis types chosen at construction decide which plot families
// are available.
type Chart struct {
	style   *Style
	axes    *Axes
	callout *Callout
	plot    *Plot
	figure  *render.Figure

	xKind, yKind string
	blankLabels  bool

	// Data extents across every plotted series, for annotation defaults.
	xMin, xMax float64
	yMin, yMax float64
	hasExtents bool
}

// New creates a chart. layout is one of the Layout presets ("" means
// slide_100%); xAxisType and yAxisType pick the axis families.
func New(layout, xAxisType, yAxisType string) (*Chart, error) {
	if !contains(validXAxisTypes, xAxisType) {
		return nil, fmt.Errorf("chartful: invalid x axis type %q; valid types: %s",
			xAxisType, strings.Join(validXAxisTypes, ", "))
	}
	if !contains(validYAxisTypes, yAxisType) {
		return nil, fmt.Errorf("chartful: invalid y axis type %q; valid types: %s",
			yAxisType, strings.Join(validYAxisTypes, ", "))
	}
	style, err := newStyle(layout)
	if err != nil {
		return nil, err
	}
	c := &Chart{
		style:       style,
		xKind:       xAxisType,
		yKind:       yAxisType,
		blankLabels: CurrentOptions().BlankLabels,
	}
	c.figure = c.newFigure()
	c.axes = &Axes{chart: c}
	c.callout = &Callout{chart: c}
	c.plot = &Plot{chart: c}
	if !c.blankLabels {
		c.figure.Title = "Chart title (set with SetTitle)"
		c.figure.X.Label = "x axis label (set with Axes().SetXAxisLabel)"
		c.figure.Y.Label = "y axis label (set with Axes().SetYAxisLabel)"
	}
	logger.Debug("chart created",
		zap.String("layout", style.Layout()),
		zap.String("x_axis_type", xAxisType),
		zap.String("y_axis_type", yAxisType))
	return c, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func backendAxisKind(axisType string) string {
	switch axisType {
	case AxisLog:
		return "log"
	case AxisDatetime:
		return "time"
	case AxisCategorical:
		return "category"
	default:
		return "value"
	}
}

func (c *Chart) newFigure() *render.Figure {
	f := render.NewFigure(c.style.PlotWidth(), c.style.PlotHeight())
	s := c.style.Settings
	f.Background = s.Background
	f.FontFamily = s.FontFamily
	f.TitleColor = s.TitleColor
	f.TitleSize = s.TitleSize
	f.SubtitleColor = s.SubtitleColor
	f.SubtitleSize = s.SubtitleSize
	f.X.Kind = backendAxisKind(c.xKind)
	f.Y.Kind = backendAxisKind(c.yKind)
	return f
}

// Style returns the chart's style.
func (c *Chart) Style() *Style { return c.style }

// Axes returns the chart's axis controls.
func (c *Chart) Axes() *Axes { return c.axes }

// Callout returns the chart's annotation helpers.
func (c *Chart) Callout() *Callout { return c.callout }

// Plot returns the chart's plot surface.
func (c *Chart) Plot() *Plot { return c.plot }

// SetTitle sets the chart title.
func (c *Chart) SetTitle(title string) *Chart {
	c.figure.Title = title
	c.figure.PageTitle = title
	return c
}

// SetSubtitle sets the chart subtitle.
func (c *Chart) SetSubtitle(subtitle string) *Chart {
	c.figure.Subtitle = subtitle
	return c
}

// SetSourceLabel sets the data source note under the chart.
func (c *Chart) SetSourceLabel(label string) *Chart {
	c.figure.SourceLabel = label
	return c
}

// Legend locations accepted by SetLegendLocation.
var legendLocations = []string{
	"top_left", "top_center", "top_right",
	"center_left", "center", "center_right",
	"bottom_left", "bottom_center", "bottom_right",
	"outside_top", "outside_bottom", "outside_right",
	"none",
}

// SetLegendLocation places the legend. orientation is "horizontal" or
// "vertical"; "" keeps the current orientation.
func (c *Chart) SetLegendLocation(location, orientation string) error {
	if !contains(legendLocations, location) {
		return fmt.Errorf("chartful: invalid legend location %q; valid locations: %s",
			location, strings.Join(legendLocations, ", "))
	}
	if orientation != "" && orientation != "horizontal" && orientation != "vertical" {
		return fmt.Errorf("chartful: invalid legend orientation %q; use \"horizontal\" or \"vertical\"", orientation)
	}
	legend := &c.figure.Legend
	if orientation != "" {
		legend.Orient = orientation
	}
	legend.Show = location != "none"
	legend.Left, legend.Top, legend.Right, legend.Bottom = "", "", "", ""
	switch location {
	case "none":
	case "outside_top":
		legend.Top = "top"
	case "outside_bottom":
		legend.Top = "bottom"
	case "outside_right":
		legend.Left = "right"
		legend.Orient = "vertical"
	default:
		parts := strings.SplitN(location, "_", 2)
		vert, horiz := parts[0], "center"
		if len(parts) == 2 {
			horiz = parts[1]
		}
		if vert == "center" && len(parts) == 1 {
			horiz = "center"
			vert = "middle"
		}
		if vert == "center" {
			vert = "middle"
		}
		legend.Top = vert
		legend.Left = horiz
	}
	return nil
}

// observe widens the chart's data extents.
func (c *Chart) observe(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	if !c.hasExtents {
		c.xMin, c.xMax, c.yMin, c.yMax = x, x, y, y
		c.hasExtents = true
		return
	}
	c.xMin = math.Min(c.xMin, x)
	c.xMax = math.Max(c.xMax, x)
	c.yMin = math.Min(c.yMin, y)
	c.yMax = math.Max(c.yMax, y)
}

// coerceCoord turns an annotation coordinate into a plot value, converting
// time values to epoch milliseconds on datetime axes.
func coerceCoord(axisKind string, v any) (float64, error) {
	switch x := v.(type) {
	case time.Time:
		if axisKind != AxisDatetime {
			return 0, fmt.Errorf("chartful: time value %v on a %s axis", x, axisKind)
		}
		return epochMillis(x), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("chartful: cannot use %v (%T) as an axis coordinate", v, v)
	}
}

func (c *Chart) xValue(v any) (float64, error) { return coerceCoord(c.xKind, v) }

func epochMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// HTML renders the chart to a standalone HTML document.
func (c *Chart) HTML() (string, error) {
	var buf bytes.Buffer
	if err := c.figure.WriteHTML(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Save writes the chart to path in the given format. PNG and SVG exports
// drive a headless browser and honor ctx cancellation.
func (c *Chart) Save(ctx context.Context, path, format string) error {
	switch format {
	case FormatHTML:
		html, err := c.HTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			return fmt.Errorf("chartful: write chart: %w", err)
		}
	case FormatPNG:
		html, err := c.HTML()
		if err != nil {
			return err
		}
		data, err := headless.NewExporter(logger).CapturePNG(
			ctx, []byte(html), c.figure.Width, c.figure.Height)
		if err != nil {
			return fmt.Errorf("chartful: png export: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("chartful: write chart: %w", err)
		}
	case FormatSVG:
		c.figure.SVG = true
		html, err := c.HTML()
		c.figure.SVG = false
		if err != nil {
			return err
		}
		svg, err := headless.NewExporter(logger).CaptureSVG(
			ctx, []byte(html), c.figure.Width, c.figure.Height)
		if err != nil {
			return fmt.Errorf("chartful: svg export: %w", err)
		}
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("chartful: write chart: %w", err)
		}
	default:
		return fmt.Errorf("chartful: invalid format %q; use %q, %q, or %q",
			format, FormatHTML, FormatPNG, FormatSVG)
	}
	logger.Info("chart saved", zap.String("path", path), zap.String("format", format))
	return nil
}

// Show writes the chart to a temporary HTML file and returns its path, which
// is also logged. Open it in a browser to view the chart.
func (c *Chart) Show() (string, error) {
	path := filepath.Join(os.TempDir(), "chartful-"+uuid.NewString()+".html")
	if err := c.Save(context.Background(), path, FormatHTML); err != nil {
		return "", err
	}
	logger.Info("chart written; open in a browser to view", zap.String("path", path))
	return path, nil
}
