package chartful

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chartful/internal/reshape"
)

// Settings are the aesthetic knobs applied to every figure a chart renders.
// The zero value is not useful; start from DefaultSettings.
type Settings struct {
	Background     string `yaml:"background"`
	FontFamily     string `yaml:"font_family"`
	TitleColor     string `yaml:"title_color"`
	TitleSize      int    `yaml:"title_size"`
	SubtitleColor  string `yaml:"subtitle_color"`
	SubtitleSize   int    `yaml:"subtitle_size"`
	AxisLineColor  string `yaml:"axis_line_color"`
	AxisLabelColor string `yaml:"axis_label_color"`
	TickLabelColor string `yaml:"tick_label_color"`

	LineWidth float64 `yaml:"line_width"`
	LineDash  string  `yaml:"line_dash"`

	Interval IntervalSettings `yaml:"interval_plot"`
}

// IntervalSettings is the bar-edge geometry used by interval plots.
type IntervalSettings struct {
	SpaceBetweenBars       float64 `yaml:"space_between_bars"`
	Margin                 float64 `yaml:"margin"`
	BarWidth               float64 `yaml:"bar_width"`
	SpaceBetweenCategories float64 `yaml:"space_between_categories"`
	EndStemSize            float64 `yaml:"interval_end_stem_size"`
	MidpointStemSize       float64 `yaml:"interval_midpoint_stem_size"`
}

// DefaultSettings returns the stock chart aesthetics.
func DefaultSettings() Settings {
	g := reshape.DefaultIntervalGeometry()
	return Settings{
		Background:     "white",
		FontFamily:     "helvetica",
		TitleColor:     "#333333",
		TitleSize:      18,
		SubtitleColor:  "#666666",
		SubtitleSize:   12,
		AxisLineColor:  "#c0c0c0",
		AxisLabelColor: "#666666",
		TickLabelColor: "#898989",
		LineWidth:      4,
		LineDash:       "solid",
		Interval: IntervalSettings{
			SpaceBetweenBars:       g.SpaceBetweenBars,
			Margin:                 g.Margin,
			BarWidth:               g.BarWidth,
			SpaceBetweenCategories: g.SpaceBetweenCategories,
			EndStemSize:            g.EndStemSize,
			MidpointStemSize:       g.MidpointStemSize,
		},
	}
}

func (s IntervalSettings) geometry() reshape.IntervalGeometry {
	return reshape.IntervalGeometry{
		Margin:                 s.Margin,
		BarWidth:               s.BarWidth,
		SpaceBetweenBars:       s.SpaceBetweenBars,
		SpaceBetweenCategories: s.SpaceBetweenCategories,
		EndStemSize:            s.EndStemSize,
		MidpointStemSize:       s.MidpointStemSize,
	}
}

// Style holds a chart's layout, settings, and color palette cursor.
type Style struct {
	layout        string
	width, height int
	Settings      Settings
	cursor        paletteCursor
}

// Layout presets.
const (
	LayoutSlide100 = "slide_100%"
	LayoutSlide75  = "slide_75%"
	LayoutSlide50  = "slide_50%"
	LayoutSlide25  = "slide_25%"
)

func layoutDims(layout string) (int, int, error) {
	switch layout {
	case LayoutSlide100, "":
		return 960, 540, nil
	case LayoutSlide75:
		// 75% slide width at 80% scale.
		return int(960 * .75 * .8), int(540 * .8), nil
	case LayoutSlide50:
		return 480, 540, nil
	case LayoutSlide25:
		return 480, 270, nil
	default:
		return 0, 0, fmt.Errorf(
			"chartful: invalid layout %q; use %q, %q, %q, or %q",
			layout, LayoutSlide100, LayoutSlide75, LayoutSlide50, LayoutSlide25)
	}
}

func newStyle(layout string) (*Style, error) {
	w, h, err := layoutDims(layout)
	if err != nil {
		return nil, err
	}
	if layout == "" {
		layout = LayoutSlide100
	}
	s := &Style{
		layout:   layout,
		width:    w,
		height:   h,
		Settings: DefaultSettings(),
	}
	if err := s.SetColorPalette(PaletteCategorical, ""); err != nil {
		return nil, err
	}
	if path := settingsConfigPath(); path != "" {
		if loaded, err := LoadSettingsFile(path); err == nil {
			s.Settings = loaded
		}
	}
	return s, nil
}

func settingsConfigPath() string {
	path := ConfigDir() + "/" + settingsConfigFile
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Layout returns the layout preset name.
func (s *Style) Layout() string { return s.layout }

// PlotWidth returns the plot width in pixels.
func (s *Style) PlotWidth() int { return s.width }

// PlotHeight returns the plot height in pixels.
func (s *Style) PlotHeight() int { return s.height }

// SetPlotSize overrides the layout's pixel dimensions.
func (s *Style) SetPlotSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("chartful: plot size must be positive, got %dx%d", width, height)
	}
	s.width, s.height = width, height
	return nil
}

// LoadSettingsFile reads chart settings from a YAML file.
func LoadSettingsFile(path string) (Settings, error) {
	out := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("chartful: read style settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("chartful: parse style settings %s: %w", path, err)
	}
	return out, nil
}

// SaveSettingsFile writes the style's settings to a YAML file.
func (s *Style) SaveSettingsFile(path string) error {
	data, err := yaml.Marshal(s.Settings)
	if err != nil {
		return fmt.Errorf("chartful: encode style settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("chartful: write style settings: %w", err)
	}
	return nil
}

// SetColorPalette selects the palette used by subsequent plot calls.
// paletteName "" picks the configured default for the palette type.
func (s *Style) SetColorPalette(paletteType, paletteName string) error {
	if paletteName == "" {
		o := CurrentOptions()
		switch paletteType {
		case PaletteCategorical:
			paletteName = o.PaletteCategorical
		case PaletteSequential:
			paletteName = o.PaletteSequential
		case PaletteDiverging:
			paletteName = o.PaletteDiverging
		case PaletteAccent:
			paletteName = o.PaletteAccent
		default:
			return fmt.Errorf(
				"chartful: invalid palette type %q; use %q, %q, %q, or %q",
				paletteType, PaletteCategorical, PaletteSequential, PaletteDiverging, PaletteAccent)
		}
	}
	p, err := PaletteByName(paletteName)
	if err != nil {
		return err
	}
	switch paletteType {
	case PaletteCategorical:
		s.cursor = &categoricalCursor{colors: p.Hexes()}
	case PaletteSequential, PaletteDiverging:
		s.cursor = &ordinalCursor{palette: p}
	case PaletteAccent:
		defaultColor, err := NewColor(CurrentOptions().AccentDefaultColor)
		if err != nil {
			return err
		}
		s.cursor = &accentCursor{
			colors:       p.Hexes(),
			assigned:     map[string]string{},
			defaultColor: defaultColor.Hex(),
		}
	default:
		return fmt.Errorf(
			"chartful: invalid palette type %q; use %q, %q, %q, or %q",
			paletteType, PaletteCategorical, PaletteSequential, PaletteDiverging, PaletteAccent)
	}
	return nil
}

// SetAccentValues accents the given values with the palette's colors in
// order. The style must hold an accent palette.
func (s *Style) SetAccentValues(values []string) error {
	cursor, ok := s.cursor.(*accentCursor)
	if !ok {
		return fmt.Errorf("chartful: accent values need an accent palette; call SetColorPalette(%q, ...) first", PaletteAccent)
	}
	cursor.assigned = map[string]string{}
	for i, v := range values {
		cursor.assigned[v] = cursor.colors[i%len(cursor.colors)]
	}
	return nil
}

// SetAccentColors accents specific values with specific colors.
func (s *Style) SetAccentColors(assignments map[string]string) error {
	cursor, ok := s.cursor.(*accentCursor)
	if !ok {
		return fmt.Errorf("chartful: accent colors need an accent palette; call SetColorPalette(%q, ...) first", PaletteAccent)
	}
	cursor.assigned = map[string]string{}
	for value, colorName := range assignments {
		c, err := NewColor(colorName)
		if err != nil {
			return err
		}
		cursor.assigned[value] = c.Hex()
	}
	return nil
}

// SetAccentDefaultColor sets the color for values the accent palette does
// not single out.
func (s *Style) SetAccentDefaultColor(colorName string) error {
	cursor, ok := s.cursor.(*accentCursor)
	if !ok {
		return fmt.Errorf("chartful: accent default color needs an accent palette; call SetColorPalette(%q, ...) first", PaletteAccent)
	}
	c, err := NewColor(colorName)
	if err != nil {
		return err
	}
	cursor.defaultColor = c.Hex()
	return nil
}

// NextColor returns the color for the given color-column value.
func (s *Style) NextColor(value string) string { return s.cursor.nextColor(value) }

// NextColors returns one color per color-column value.
func (s *Style) NextColors(values []string) []string { return s.cursor.nextColors(values) }

// ResetPaletteOrder rewinds the palette cursor.
func (s *Style) ResetPaletteOrder() { s.cursor.reset() }

type paletteCursor interface {
	nextColor(value string) string
	nextColors(values []string) []string
	reset()
}

// categoricalCursor cycles through the palette regardless of value.
type categoricalCursor struct {
	colors []string
	idx    int
}

func (c *categoricalCursor) nextColor(string) string {
	color := c.colors[c.idx%len(c.colors)]
	c.idx++
	return color
}

func (c *categoricalCursor) nextColors(values []string) []string {
	out := make([]string, len(values))
	for i := range values {
		out[i] = c.nextColor(values[i])
	}
	return out
}

func (c *categoricalCursor) reset() { c.idx = 0 }

// ordinalCursor spreads an ordered palette across however many values the
// plot brings, expanding the palette when there are more values than colors.
type ordinalCursor struct {
	palette *ColorPalette
	idx     int
}

func (c *ordinalCursor) nextColor(string) string {
	hexes := c.palette.Hexes()
	color := hexes[c.idx%len(hexes)]
	c.idx++
	return color
}

func (c *ordinalCursor) nextColors(values []string) []string {
	hexes := c.palette.Expand(len(values)).Hexes()
	return linearSubset(hexes, len(values))
}

func (c *ordinalCursor) reset() { c.idx = 0 }

// linearSubset picks n evenly spaced entries, endpoints included.
func linearSubset(colors []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{colors[0]}
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = colors[i*(len(colors)-1)/(n-1)]
	}
	return out
}

// accentCursor maps assigned values to their colors and everything else to
// the default color.
type accentCursor struct {
	colors       []string
	assigned     map[string]string
	defaultColor string
}

func (c *accentCursor) nextColor(value string) string {
	if color, ok := c.assigned[value]; ok {
		return color
	}
	return c.defaultColor
}

func (c *accentCursor) nextColors(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = c.nextColor(v)
	}
	return out
}

func (c *accentCursor) reset() {}
