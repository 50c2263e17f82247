package chartful

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a single chart color with an optional well-known name.
type Color struct {
	c    colorful.Color
	name string
}

// namedColors maps lowercase color names to hex values. The common web names
// ship built in; LoadColorsConfig adds custom names from configuration.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"lime":      "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"grey":      "#808080",
	"gray":      "#808080",
	"silver":    "#c0c0c0",
	"maroon":    "#800000",
	"olive":     "#808000",
	"navy":      "#000080",
	"purple":    "#800080",
	"teal":      "#008080",
	"orange":    "#ffa500",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"gold":      "#ffd700",
	"indigo":    "#4b0082",
	"violet":    "#ee82ee",
	"turquoise": "#40e0d0",
	"salmon":    "#fa8072",
	"khaki":     "#f0e68c",
	"crimson":   "#dc143c",
	"coral":     "#ff7f50",
	"orchid":    "#da70d6",
	"plum":      "#dda0dd",
	"tomato":    "#ff6347",
	"beige":     "#f5f5dc",
	"ivory":     "#fffff0",
	"lavender":  "#e6e6fa",
	"tan":       "#d2b48c",
}

// NewColor resolves a color from a hex value ("#1f77b4") or a known name
// ("coral").
func NewColor(value string) (Color, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if !strings.HasPrefix(v, "#") {
		hex, ok := namedColors[v]
		if !ok {
			return Color{}, fmt.Errorf("chartful: unknown color %q; use a hex value or a named color", value)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, err
		}
		return Color{c: c, name: v}, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("chartful: invalid color %q: %w", value, err)
	}
	return Color{c: c}, nil
}

// mustColor is for package-internal constants known to be valid.
func mustColor(value string) Color {
	c, err := NewColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as a lowercase "#rrggbb" value.
func (c Color) Hex() string { return c.c.Hex() }

// Name returns the color's well-known name, if it has one.
func (c Color) Name() string { return c.name }

// Luminance returns the HSL lightness component.
func (c Color) Luminance() float64 {
	_, _, l := c.c.Hsl()
	return l
}

// Hue returns the HSL hue in degrees.
func (c Color) Hue() float64 {
	h, _, _ := c.c.Hsl()
	return h
}

// Saturation returns the HSL saturation component.
func (c Color) Saturation() float64 {
	_, s, _ := c.c.Hsl()
	return s
}

// Foreground picks black or white text for legibility on this background.
func (c Color) Foreground() Color {
	if c.Luminance() > 0.4 {
		return mustColor("#000000")
	}
	return mustColor("#ffffff")
}

// LinearGradient returns n colors evenly interpolated in RGB from c to
// finish, inclusive of both endpoints.
func (c Color) LinearGradient(finish Color, n int) []Color {
	if n < 2 {
		return []Color{c}
	}
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = Color{c: c.c.BlendRgb(finish.c, t)}
	}
	return out
}

// RegisterColorName adds or overrides a named color.
func RegisterColorName(name, hex string) error {
	if _, err := colorful.Hex(strings.ToLower(hex)); err != nil {
		return fmt.Errorf("chartful: invalid hex %q for color %q: %w", hex, name, err)
	}
	namedColors[strings.ToLower(name)] = strings.ToLower(hex)
	return nil
}

// ColorNames returns the registered color names, sorted.
func ColorNames() []string {
	out := make([]string, 0, len(namedColors))
	for name := range namedColors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
