package chartful

import (
	"fmt"
	"sort"
	"strings"
)

// Palette types.
const (
	PaletteCategorical = "categorical"
	PaletteSequential  = "sequential"
	PaletteDiverging   = "diverging"
	PaletteAccent      = "accent"
)

// ColorPalette is an ordered, typed list of colors.
type ColorPalette struct {
	name   string
	kind   string
	colors []Color
}

// NewColorPalette builds a palette from hex values or color names.
func NewColorPalette(name, kind string, colors []string) (*ColorPalette, error) {
	out := make([]Color, len(colors))
	for i, v := range colors {
		c, err := NewColor(v)
		if err != nil {
			return nil, fmt.Errorf("chartful: palette %q: %w", name, err)
		}
		out[i] = c
	}
	return &ColorPalette{name: name, kind: kind, colors: out}, nil
}

func (p *ColorPalette) Name() string { return p.name }
func (p *ColorPalette) Kind() string { return p.kind }
func (p *ColorPalette) Len() int     { return len(p.colors) }

// Colors returns a copy of the palette's colors.
func (p *ColorPalette) Colors() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Hexes returns the palette as hex values.
func (p *ColorPalette) Hexes() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.Hex()
	}
	return out
}

func (p *ColorPalette) withColors(colors []Color) *ColorPalette {
	return &ColorPalette{name: p.name, kind: p.kind, colors: colors}
}

// Reverse returns the palette in reverse order.
func (p *ColorPalette) Reverse() *ColorPalette {
	colors := p.Colors()
	for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
		colors[i], colors[j] = colors[j], colors[i]
	}
	return p.withColors(colors)
}

// Slice returns the palette restricted to [from, to).
func (p *ColorPalette) Slice(from, to int) (*ColorPalette, error) {
	if from < 0 || to > len(p.colors) || from > to {
		return nil, fmt.Errorf("chartful: palette %q slice [%d:%d] out of range (%d colors)",
			p.name, from, to, len(p.colors))
	}
	return p.withColors(p.Colors()[from:to]), nil
}

func (p *ColorPalette) sortBy(key func(Color) float64, ascending bool) *ColorPalette {
	colors := p.Colors()
	sort.SliceStable(colors, func(a, b int) bool {
		if ascending {
			return key(colors[a]) < key(colors[b])
		}
		return key(colors[a]) > key(colors[b])
	})
	return p.withColors(colors)
}

// SortByHue orders the colors by hue.
func (p *ColorPalette) SortByHue(ascending bool) *ColorPalette {
	return p.sortBy(Color.Hue, ascending)
}

// SortByLuminance orders the colors by lightness.
func (p *ColorPalette) SortByLuminance(ascending bool) *ColorPalette {
	return p.sortBy(Color.Luminance, ascending)
}

// SortBySaturation orders the colors by saturation.
func (p *ColorPalette) SortBySaturation(ascending bool) *ColorPalette {
	return p.sortBy(Color.Saturation, ascending)
}

// Expand linearly interpolates between neighboring colors until the palette
// holds at least target colors. Palettes already large enough are returned
// unchanged.
func (p *ColorPalette) Expand(target int) *ColorPalette {
	n := len(p.colors)
	if target <= n || n < 2 {
		return p
	}
	// Distribute the extra steps across the n-1 gaps, front-loaded.
	steps := make([]int, n-1)
	base := (target - 1) / (n - 1)
	extra := (target - 1) % (n - 1)
	for i := range steps {
		steps[i] = base
		if i < extra {
			steps[i]++
		}
	}
	var out []Color
	for i, count := range steps {
		grad := p.colors[i].LinearGradient(p.colors[i+1], count+1)
		out = append(out, grad[:count]...)
	}
	out = append(out, p.colors[n-1])
	return p.withColors(out)
}

// Shift moves every color a given percentage toward the target color.
func (p *ColorPalette) Shift(target Color, percent int) *ColorPalette {
	if percent < 1 {
		percent = 1
	}
	if percent > 100 {
		percent = 100
	}
	colors := make([]Color, len(p.colors))
	for i, c := range p.colors {
		colors[i] = c.LinearGradient(target, 100)[percent-1]
	}
	return p.withColors(colors)
}

// palettes is the registry of named palettes, keyed lowercase. The built-ins
// register before any config file loads so custom palettes can shadow them.
var palettes = builtinPalettes()

// RegisterPalette adds a palette to the registry, replacing any palette with
// the same name.
func RegisterPalette(p *ColorPalette) {
	palettes[strings.ToLower(p.name)] = p
}

// PaletteByName looks up a registered palette.
func PaletteByName(name string) (*ColorPalette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("chartful: unknown color palette %q; see PaletteNames() for the available palettes", name)
	}
	return p, nil
}

// PaletteNames returns the registered palette names, sorted.
func PaletteNames() []string {
	out := make([]string, 0, len(palettes))
	for _, p := range palettes {
		out = append(out, p.name)
	}
	sort.Strings(out)
	return out
}

func builtinPalettes() map[string]*ColorPalette {
	registry := map[string]*ColorPalette{}
	mustPalette := func(name, kind string, colors []string) {
		p, err := NewColorPalette(name, kind, colors)
		if err != nil {
			panic(err)
		}
		registry[strings.ToLower(name)] = p
	}
	// Category20, bolder colors first.
	mustPalette("Category20", PaletteCategorical, []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		"#aec7e8", "#ffbb78", "#98df8a", "#ff9896", "#c5b0d5",
		"#c49c94", "#f7b6d2", "#c7c7c7", "#dbdb8d", "#9edae5",
	})
	mustPalette("Category10", PaletteCategorical, []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	})
	mustPalette("Colorblind", PaletteCategorical, []string{
		"#0072b2", "#e69f00", "#f0e442", "#009e73",
		"#56b4e9", "#d55e00", "#cc79a7", "#000000",
	})
	mustPalette("Dark2", PaletteCategorical, []string{
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a",
		"#66a61e", "#e6ab02", "#a6761d", "#666666",
	})
	mustPalette("Pastel1", PaletteCategorical, []string{
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
		"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
	})
	mustPalette("RdBu", PaletteDiverging, []string{
		"#ef8a62", "#f7f7f7", "#67a9cf",
	})
	mustPalette("RdGy", PaletteDiverging, []string{
		"#ca0020", "#f4a582", "#ffffff", "#bababa", "#404040",
	})
	// Sequential palettes run light to dark with the two lightest shades
	// dropped, so the faintest bars stay visible on white.
	mustPalette("Greys", PaletteSequential, []string{
		"#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000",
	})
	mustPalette("Greens", PaletteSequential, []string{
		"#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b",
	})
	mustPalette("Blues", PaletteSequential, []string{
		"#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b",
	})
	mustPalette("Reds", PaletteSequential, []string{
		"#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d",
	})
	mustPalette("Oranges", PaletteSequential, []string{
		"#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704",
	})
	return registry
}
