package chartful

import (
	"fmt"
	"time"

	"chartful/internal/render"
	"chartful/table"
)

// Axes controls labels, ranges, tick formats, and categorical factors.
type Axes struct {
	chart *Chart

	xFactors []table.Factor
	yFactors []table.Factor
}

// factorSeparator joins the levels of hierarchical factors into one axis
// label.
const factorSeparator = " - "

func factorLabels(factors []table.Factor) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.Join(factorSeparator)
	}
	return out
}

// SetXAxisLabel sets the x axis label.
func (a *Axes) SetXAxisLabel(label string) *Axes {
	a.chart.figure.X.Label = label
	return a
}

// SetYAxisLabel sets the y axis label.
func (a *Axes) SetYAxisLabel(label string) *Axes {
	a.chart.figure.Y.Label = label
	return a
}

func (a *Axes) numericAxis(which string) (*render.Axis, string, error) {
	var axis *render.Axis
	var kind string
	if which == "x" {
		axis, kind = &a.chart.figure.X, a.chart.xKind
	} else {
		axis, kind = &a.chart.figure.Y, a.chart.yKind
	}
	if kind == AxisCategorical {
		return nil, "", fmt.Errorf("chartful: the %s axis is categorical; ranges apply to linear, log, datetime, or density axes", which)
	}
	return axis, kind, nil
}

// SetXAxisRange sets the numeric x axis range.
func (a *Axes) SetXAxisRange(start, end float64) error {
	axis, kind, err := a.numericAxis("x")
	if err != nil {
		return err
	}
	if kind == AxisDatetime {
		return fmt.Errorf("chartful: the x axis is datetime; use SetXAxisDatetimeRange")
	}
	axis.Min, axis.Max = &start, &end
	return nil
}

// SetYAxisRange sets the numeric y axis range.
func (a *Axes) SetYAxisRange(start, end float64) error {
	axis, _, err := a.numericAxis("y")
	if err != nil {
		return err
	}
	axis.Min, axis.Max = &start, &end
	return nil
}

// SetXAxisDatetimeRange sets the x axis range on a datetime axis.
func (a *Axes) SetXAxisDatetimeRange(start, end time.Time) error {
	if a.chart.xKind != AxisDatetime {
		return fmt.Errorf("chartful: the x axis is %s; datetime ranges need a datetime x axis", a.chart.xKind)
	}
	lo, hi := epochMillis(start), epochMillis(end)
	a.chart.figure.X.Min, a.chart.figure.X.Max = &lo, &hi
	return nil
}

// SetXAxisTickFormat sets the x tick label format: a numeral format
// ("0,0.[00]", "0%") on numeric axes, a strftime format ("%Y-%m-%d") on
// datetime axes.
func (a *Axes) SetXAxisTickFormat(format string) *Axes {
	applyTickFormat(&a.chart.figure.X, a.chart.xKind, format)
	return a
}

// SetYAxisTickFormat sets the y tick label format.
func (a *Axes) SetYAxisTickFormat(format string) *Axes {
	applyTickFormat(&a.chart.figure.Y, a.chart.yKind, format)
	return a
}

func applyTickFormat(axis *render.Axis, kind, format string) {
	if kind == AxisDatetime {
		axis.Formatter = render.DatetimeTemplate(format)
		axis.FormatterJS = ""
		return
	}
	axis.FormatterJS = render.NumeralJS(format)
	axis.Formatter = ""
}

// Tick label orientations.
var tickOrientations = map[string]float32{
	"horizontal": 0,
	"diagonal":   45,
	"vertical":   90,
}

// SetXAxisTickOrientation rotates the x tick labels: "horizontal",
// "diagonal", or "vertical".
func (a *Axes) SetXAxisTickOrientation(orientation string) error {
	rotate, ok := tickOrientations[orientation]
	if !ok {
		return fmt.Errorf("chartful: invalid tick orientation %q; use \"horizontal\", \"diagonal\", or \"vertical\"", orientation)
	}
	a.chart.figure.X.Rotate = rotate
	return nil
}

// SetYAxisTickOrientation rotates the y tick labels.
func (a *Axes) SetYAxisTickOrientation(orientation string) error {
	rotate, ok := tickOrientations[orientation]
	if !ok {
		return fmt.Errorf("chartful: invalid tick orientation %q; use \"horizontal\", \"diagonal\", or \"vertical\"", orientation)
	}
	a.chart.figure.Y.Rotate = rotate
	return nil
}

// SetXAxisTickValues bounds the x axis to the given tick values. The backend
// places its own ticks inside the range.
func (a *Axes) SetXAxisTickValues(values []float64) error {
	axis, kind, err := a.numericAxis("x")
	if err != nil {
		return err
	}
	if kind == AxisDatetime {
		return fmt.Errorf("chartful: the x axis is datetime; tick values apply to numeric axes")
	}
	if len(values) < 2 {
		return fmt.Errorf("chartful: tick values need at least two entries")
	}
	lo, hi := values[0], values[len(values)-1]
	axis.Min, axis.Max = &lo, &hi
	return nil
}

// SetYAxisTickValues bounds the y axis to the given tick values.
func (a *Axes) SetYAxisTickValues(values []float64) error {
	axis, _, err := a.numericAxis("y")
	if err != nil {
		return err
	}
	if len(values) < 2 {
		return fmt.Errorf("chartful: tick values need at least two entries")
	}
	lo, hi := values[0], values[len(values)-1]
	axis.Min, axis.Max = &lo, &hi
	return nil
}

// HideXAxis hides the x axis.
func (a *Axes) HideXAxis() *Axes {
	a.chart.figure.X.Hidden = true
	return a
}

// HideYAxis hides the y axis.
func (a *Axes) HideYAxis() *Axes {
	a.chart.figure.Y.Hidden = true
	return a
}

// XAxisFactors returns the categorical x axis factors in display order.
func (a *Axes) XAxisFactors() []table.Factor { return a.xFactors }

// YAxisFactors returns the categorical y axis factors in display order.
func (a *Axes) YAxisFactors() []table.Factor { return a.yFactors }

// SetXAxisFactors overrides the categorical x axis ordering.
func (a *Axes) SetXAxisFactors(factors []table.Factor) error {
	if a.chart.xKind != AxisCategorical {
		return fmt.Errorf("chartful: the x axis is %s; factors need a categorical axis", a.chart.xKind)
	}
	a.xFactors = factors
	a.chart.figure.X.Data = factorLabels(factors)
	return nil
}

// SetYAxisFactors overrides the categorical y axis ordering.
func (a *Axes) SetYAxisFactors(factors []table.Factor) error {
	if a.chart.yKind != AxisCategorical {
		return fmt.Errorf("chartful: the y axis is %s; factors need a categorical axis", a.chart.yKind)
	}
	a.yFactors = factors
	a.chart.figure.Y.Data = factorLabels(factors)
	return nil
}
