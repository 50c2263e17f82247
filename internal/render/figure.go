// Package render assembles plotting-backend figures. Plot functions
// accumulate neutral series and annotation descriptions on a Figure; the
// backend option tree is only materialized when the figure is written out.
package render

import "io"

// SeriesKind selects the glyph family of a series.
type SeriesKind int

const (
	KindLine SeriesKind = iota
	KindArea
	KindScatter
	KindText
	KindBar
	KindHeat
)

// Series is one backend-neutral glyph group.
type Series struct {
	Kind SeriesKind
	Name string

	// Numeric and datetime families. Datetime x values are epoch
	// milliseconds.
	XY [][2]float64

	// Categorical families: one category label per value. Heat cells carry
	// both axes' labels.
	Categories  []string
	YCategories []string
	Values      []float64

	// Text families: one label per point.
	Texts []string

	Color  string
	Colors []string // per-datum, overrides Color
	Stack  string

	LineWidth  float64
	LineDash   string
	Opacity    float64
	Symbol     string
	SymbolSize int
	Sizes      []int // per-datum symbol sizes, overrides SymbolSize
	ShowSymbol bool

	LabelPosition string
	LabelColor    string
	LabelFontSize float32
	LabelAngle    float32

	// Text series attached to annotations stay out of the legend.
	NoLegend bool
}

// Axis describes one plot axis.
type Axis struct {
	Kind        string // "value", "category", "time", "log"
	Label       string
	Data        []string // category labels
	Min, Max    *float64
	FormatterJS string // JS function body for tick labels
	Formatter   string // plain template formatter
	Rotate      float32
	Hidden      bool
}

// MarkLine is a reference line: a full-width/height span when only one
// coordinate is set, a segment when both endpoints are set.
type MarkLine struct {
	Name   string
	X, Y   *float64
	X2, Y2 *float64
	Color  string
	Width  float64
	Dash   string
}

// MarkArea is a shaded box. Nil bounds extend to the plot edge.
type MarkArea struct {
	X1, Y1  *float64
	X2, Y2  *float64
	Color   string
	Opacity float64
}

// Legend placement and orientation.
type Legend struct {
	Show     bool
	Orient   string // "horizontal", "vertical"
	Left     string
	Top      string
	Right    string
	Bottom   string
	Reversed bool
}

// VisualMap is a continuous color mapping over series values.
type VisualMap struct {
	Min, Max float64
	Colors   []string
	Show     bool
}

// Figure accumulates everything a chart draws, backend-neutrally.
type Figure struct {
	Width, Height int
	PageTitle     string

	Title         string
	Subtitle      string
	SourceLabel   string
	TitleColor    string
	SubtitleColor string
	TitleSize     int
	SubtitleSize  int
	Background    string
	FontFamily    string

	// X and Y describe the displayed axes. Horizontal charts put the
	// category axis on Y; Horizontal tells scatter-family series to emit
	// value-first coordinates to match.
	X, Y       Axis
	Horizontal bool
	Legend     Legend
	VMap       *VisualMap

	// BarCategoryGap overrides the backend default spacing between
	// categorical bars, as a percentage string.
	BarCategoryGap string

	SVG bool

	series    []Series
	markLines []MarkLine
	markAreas []MarkArea
}

// NewFigure creates a figure with the given pixel dimensions.
func NewFigure(width, height int) *Figure {
	return &Figure{
		Width:  width,
		Height: height,
		Legend: Legend{Show: true, Orient: "horizontal", Top: "bottom"},
	}
}

// AddSeries appends a series.
func (f *Figure) AddSeries(s Series) { f.series = append(f.series, s) }

// Series returns the accumulated series.
func (f *Figure) Series() []Series { return f.series }

// AddMarkLine appends a reference line or segment.
func (f *Figure) AddMarkLine(m MarkLine) { f.markLines = append(f.markLines, m) }

// AddMarkArea appends a shaded box.
func (f *Figure) AddMarkArea(m MarkArea) { f.markAreas = append(f.markAreas, m) }

// MarkLines returns the accumulated reference lines.
func (f *Figure) MarkLines() []MarkLine { return f.markLines }

// MarkAreas returns the accumulated shaded boxes.
func (f *Figure) MarkAreas() []MarkArea { return f.markAreas }

// WriteHTML materializes the backend chart and writes a standalone HTML
// document.
func (f *Figure) WriteHTML(w io.Writer) error { return f.renderECharts(w) }
