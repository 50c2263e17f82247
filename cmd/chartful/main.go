package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chartful"
	"chartful/table"
)

var (
	// Global flags
	verbose bool

	// gallery flags
	outDir string
	format string
	layout string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chartful",
	Short: "chartful - fluent statistical charts from tabular data",
	Long: `chartful wraps a charting backend with a fluent API for producing
styled statistical charts (line, bar, scatter, heatmap, histogram, radar)
from tabular data, and exports them as HTML, PNG, or SVG.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		chartful.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Render one chart of every plot family into a directory",
	Long: `Renders a demonstration chart for each plot family using generated
sample data. Useful for eyeballing style changes and verifying an install.`,
	RunE: runGallery,
}

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the registered color palettes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range chartful.PaletteNames() {
			p, err := chartful.PaletteByName(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %-12s %s\n", p.Name(), p.Kind(), strings.Join(p.Hexes(), " "))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write default configuration files to the config directory",
	Long: `Writes the stock options and palette definitions to the chartful
config directory ($CHARTFUL_CONFIG_DIR or ~/.chartful) so they can be edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := chartful.ConfigDir()
		if err := chartful.SaveOptionsFile(filepath.Join(dir, "options_config.yaml"), chartful.CurrentOptions()); err != nil {
			return err
		}
		if err := chartful.SavePalettesFile(filepath.Join(dir, "color_palettes_config.yaml")); err != nil {
			return err
		}
		fmt.Printf("wrote configuration to %s\n", dir)
		return nil
	},
}

func runGallery(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	builders := map[string]func() (*chartful.Chart, error){
		"line":        galleryLine,
		"scatter":     galleryScatter,
		"area":        galleryArea,
		"bar":         galleryBar,
		"bar_stacked": galleryBarStacked,
		"lollipop":    galleryLollipop,
		"interval":    galleryInterval,
		"heatmap":     galleryHeatmap,
		"histogram":   galleryHistogram,
		"kde":         galleryKDE,
		"hexbin":      galleryHexbin,
		"radar":       galleryRadar,
	}
	ctx := context.Background()
	for name, build := range builders {
		c, err := build()
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
		path := filepath.Join(outDir, name+"."+format)
		if err := c.Save(ctx, path, format); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		logger.Info("rendered", zap.String("chart", name), zap.String("path", path))
	}
	return nil
}

// sampleTimeSeries generates a month of daily values per group.
func sampleTimeSeries() *table.Table {
	rng := rand.New(rand.NewSource(7))
	t := table.New("day", "value", "region")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, region := range []string{"north", "south"} {
		level := 50 + rng.Float64()*20
		for d := 0; d < 30; d++ {
			level += rng.Float64()*6 - 3
			_ = t.AppendRow(start.AddDate(0, 0, d), level, region)
		}
	}
	return t
}

func sampleFruit() *table.Table {
	t := table.New("fruit", "country", "quantity")
	rows := [][]any{
		{"apple", "US", 14.0}, {"apple", "CA", 9.0},
		{"banana", "US", 21.0}, {"banana", "CA", 12.0},
		{"grape", "US", 7.0}, {"grape", "CA", 11.0},
		{"kiwi", "US", 4.0}, {"kiwi", "CA", 6.0},
	}
	for _, row := range rows {
		_ = t.AppendRow(row...)
	}
	return t
}

func galleryLine() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisDatetime, chartful.AxisLinear)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Daily activity").SetSubtitle("generated sample data")
	c.Axes().SetXAxisLabel("day").SetYAxisLabel("value")
	err = c.Plot().Line(chartful.LineArgs{
		Data: sampleTimeSeries(), XColumn: "day", YColumn: "value", ColorColumn: "region",
	})
	return c, err
}

func galleryScatter() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisLinear, chartful.AxisLinear)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Weight vs height")
	rng := rand.New(rand.NewSource(11))
	t := table.New("x", "y", "size")
	for i := 0; i < 80; i++ {
		x := rng.NormFloat64()*10 + 170
		_ = t.AppendRow(x, x*0.45+rng.NormFloat64()*4, 4+rng.Float64()*16)
	}
	err = c.Plot().Scatter(chartful.ScatterArgs{
		Data: t, XColumn: "x", YColumn: "y", SizeColumn: "size",
	})
	return c, err
}

func galleryArea() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisDatetime, chartful.AxisLinear)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Stacked activity")
	err = c.Plot().Area(chartful.AreaArgs{
		Data: sampleTimeSeries(), XColumn: "day", YColumn: "value",
		ColorColumn: "region", Stacked: true,
	})
	return c, err
}

func galleryBar() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisCategorical, chartful.AxisLinear)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Fruit sales")
	err = c.Plot().Bar(chartful.CategoricalArgs{
		Data: sampleFruit(), CategoricalColumns: []string{"fruit", "country"},
		NumericColumn: "quantity", OrderBy: "values",
	})
	return c, err
}

func galleryBarStacked() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisLinear, chartful.AxisCategorical)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Fruit sales by country")
	err = c.Plot().BarStacked(chartful.BarStackedArgs{
		CategoricalArgs: chartful.CategoricalArgs{
			Data: sampleFruit(), CategoricalColumns: []string{"fruit"},
			NumericColumn: "quantity", OrderBy: "values",
		},
		StackColumn: "country",
	})
	return c, err
}

func galleryLollipop() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisLinear, chartful.AxisCategorical)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Fruit sales")
	err = c.Plot().Lollipop(chartful.CategoricalArgs{
		Data: sampleFruit(), CategoricalColumns: []string{"fruit", "country"},
		NumericColumn: "quantity", OrderBy: "values",
	})
	return c, err
}

func galleryInterval() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisCategorical, chartful.AxisLinear)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Latency intervals")
	t := table.New("endpoint", "p25", "p75", "p50")
	_ = t.AppendRow("search", 40.0, 95.0, 60.0)
	_ = t.AppendRow("checkout", 80.0, 160.0, 120.0)
	_ = t.AppendRow("browse", 15.0, 45.0, 28.0)
	err = c.Plot().Interval(chartful.IntervalArgs{
		Data: t, CategoricalColumns: []string{"endpoint"},
		LowerColumn: "p25", UpperColumn: "p75", MiddleColumn: "p50",
	})
	return c, err
}

func galleryHeatmap() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisCategorical, chartful.AxisCategorical)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Sales heatmap")
	err = c.Plot().Heatmap(chartful.HeatmapArgs{
		Data: sampleFruit(), XColumn: "fruit", YColumn: "country",
		ValueColumn: "quantity", TextValues: true,
	})
	return c, err
}

func galleryHistogram() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisLinear, chartful.AxisDensity)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Value distribution")
	rng := rand.New(rand.NewSource(3))
	t := table.New("value")
	for i := 0; i < 500; i++ {
		_ = t.AppendRow(rng.NormFloat64()*12 + 100)
	}
	err = c.Plot().Histogram(chartful.HistogramArgs{
		Data: t, ValuesColumn: "value", Bins: "auto",
	})
	return c, err
}

func galleryKDE() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisLinear, chartful.AxisDensity)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Value density")
	rng := rand.New(rand.NewSource(5))
	t := table.New("value", "cohort")
	for i := 0; i < 300; i++ {
		_ = t.AppendRow(rng.NormFloat64()*8+60, "control")
		_ = t.AppendRow(rng.NormFloat64()*8+72, "treatment")
	}
	err = c.Plot().KDE(chartful.KDEArgs{
		Data: t, ValuesColumn: "value", ColorColumn: "cohort", Shade: true,
	})
	return c, err
}

func galleryHexbin() (*chartful.Chart, error) {
	c, err := chartful.New(layout, chartful.AxisDensity, chartful.AxisDensity)
	if err != nil {
		return nil, err
	}
	c.SetTitle("Point density")
	rng := rand.New(rand.NewSource(13))
	t := table.New("x", "y")
	for i := 0; i < 2000; i++ {
		_ = t.AppendRow(rng.NormFloat64()*3, rng.NormFloat64()*3)
	}
	err = c.Plot().Hexbin(chartful.HexbinArgs{
		Data: t, XColumn: "x", YColumn: "y", Size: 0.5,
	})
	return c, err
}

func galleryRadar() (*chartful.Chart, error) {
	rc, err := chartful.NewRadar(layout)
	if err != nil {
		return nil, err
	}
	rc.Chart().SetTitle("Skill profile")
	t := table.New("score", "skill")
	for i, skill := range []string{"speed", "power", "range", "accuracy", "stamina"} {
		_ = t.AppendRow(3+2*math.Sin(float64(i)), skill)
	}
	if err := rc.Area(chartful.RadarArgs{Data: t, RColumn: "score"}); err != nil {
		return nil, err
	}
	if err := rc.RadarText(chartful.RadarTextArgs{
		RadarArgs:  chartful.RadarArgs{Data: t, RColumn: "score"},
		TextColumn: "skill", Offset: .8,
	}); err != nil {
		return nil, err
	}
	return rc.Chart(), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	galleryCmd.Flags().StringVar(&outDir, "out", "gallery", "output directory")
	galleryCmd.Flags().StringVar(&format, "format", chartful.FormatHTML, "output format: html, png, or svg")
	galleryCmd.Flags().StringVar(&layout, "layout", "", "chart layout preset")
	rootCmd.AddCommand(galleryCmd, palettesCmd, configInitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
