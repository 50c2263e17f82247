package chartful

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options are the library-wide defaults. They can be overridden per process
// with SetOptions or persistently through the options config file.
type Options struct {
	// Default palette names per palette type.
	PaletteCategorical string `yaml:"color_palette_categorical"`
	PaletteSequential  string `yaml:"color_palette_sequential"`
	PaletteDiverging   string `yaml:"color_palette_diverging"`
	PaletteAccent      string `yaml:"color_palette_accent"`

	// Color given to values an accent palette does not single out.
	AccentDefaultColor string `yaml:"color_palette_accent_default_color"`

	// BlankLabels suppresses the helper text that new charts place in
	// empty titles and axis labels.
	BlankLabels bool `yaml:"blank_labels"`
}

// DefaultOptions returns the stock defaults.
func DefaultOptions() Options {
	return Options{
		PaletteCategorical: "Category20",
		PaletteSequential:  "Blues",
		PaletteDiverging:   "RdBu",
		PaletteAccent:      "Category20",
		AccentDefaultColor: "grey",
		BlankLabels:        false,
	}
}

var currentOptions = DefaultOptions()

// CurrentOptions returns the active library options.
func CurrentOptions() Options { return currentOptions }

// SetOptions replaces the active library options.
func SetOptions(o Options) { currentOptions = o }

// ConfigDir returns the configuration directory: $CHARTFUL_CONFIG_DIR if
// set, otherwise ~/.chartful/.
func ConfigDir() string {
	if dir := os.Getenv("CHARTFUL_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chartful"
	}
	return filepath.Join(home, ".chartful")
}

// Config file names inside ConfigDir.
const (
	optionsConfigFile  = "options_config.yaml"
	colorsConfigFile   = "colors_config.yaml"
	palettesConfigFile = "color_palettes_config.yaml"
	settingsConfigFile = "style_settings_config.yaml"
)

// LoadOptionsFile reads options overrides from a YAML file. Fields missing
// from the file keep their defaults.
func LoadOptionsFile(path string) (Options, error) {
	o := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("chartful: read options config: %w", err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("chartful: parse options config %s: %w", path, err)
	}
	return o, nil
}

// SaveOptionsFile writes the options to a YAML file.
func SaveOptionsFile(path string, o Options) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("chartful: encode options: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartful: create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("chartful: write options config: %w", err)
	}
	return nil
}

// LoadColorsFile registers custom color names from a YAML map of name to hex
// value.
func LoadColorsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chartful: read colors config: %w", err)
	}
	var names map[string]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("chartful: parse colors config %s: %w", path, err)
	}
	for name, hex := range names {
		if err := RegisterColorName(name, hex); err != nil {
			return err
		}
	}
	return nil
}

type paletteConfig struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Colors []string `yaml:"colors"`
}

// LoadPalettesFile registers palettes from a YAML list of
// {name, type, colors} entries.
func LoadPalettesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chartful: read palettes config: %w", err)
	}
	var configs []paletteConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return fmt.Errorf("chartful: parse palettes config %s: %w", path, err)
	}
	for _, pc := range configs {
		p, err := NewColorPalette(pc.Name, pc.Type, pc.Colors)
		if err != nil {
			return err
		}
		RegisterPalette(p)
	}
	return nil
}

// SavePalettesFile writes the registered palettes to a YAML file.
func SavePalettesFile(path string) error {
	var configs []paletteConfig
	for _, name := range PaletteNames() {
		p, err := PaletteByName(name)
		if err != nil {
			return err
		}
		configs = append(configs, paletteConfig{Name: p.Name(), Type: p.Kind(), Colors: p.Hexes()})
	}
	data, err := yaml.Marshal(configs)
	if err != nil {
		return fmt.Errorf("chartful: encode palettes: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartful: create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("chartful: write palettes config: %w", err)
	}
	return nil
}

// Config files are optional; a missing file is skipped, anything else in the
// directory that fails to parse is ignored here and surfaces when loaded
// explicitly.
func init() {
	dir := ConfigDir()
	if o, err := LoadOptionsFile(filepath.Join(dir, optionsConfigFile)); err == nil {
		currentOptions = o
	}
	_ = LoadColorsFile(filepath.Join(dir, colorsConfigFile))
	_ = LoadPalettesFile(filepath.Join(dir, palettesConfigFile))
}
