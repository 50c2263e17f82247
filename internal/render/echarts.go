package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

type renderer interface {
	Render(w io.Writer) error
}

// renderECharts materializes the accumulated series into go-echarts chart
// objects, overlaps the glyph families onto one base chart, and writes the
// standalone HTML page.
func (f *Figure) renderECharts(w io.Writer) error {
	var heats, bars, lines, scatters []Series
	for _, s := range f.series {
		switch s.Kind {
		case KindHeat:
			heats = append(heats, s)
		case KindBar:
			bars = append(bars, s)
		case KindLine, KindArea:
			lines = append(lines, s)
		case KindScatter, KindText:
			scatters = append(scatters, s)
		}
	}

	var base renderer
	heatChart := f.buildHeatMap(heats, len(heats) > 0)
	barChart := f.buildBar(bars, heatChart == nil && len(bars) > 0)
	lineChart := f.buildLine(lines, heatChart == nil && barChart == nil && len(lines) > 0)
	scatterChart := f.buildScatter(scatters,
		heatChart == nil && barChart == nil && lineChart == nil && len(scatters) > 0)

	switch {
	case heatChart != nil:
		if barChart != nil {
			heatChart.Overlap(barChart)
		}
		if lineChart != nil {
			heatChart.Overlap(lineChart)
		}
		if scatterChart != nil {
			heatChart.Overlap(scatterChart)
		}
		base = heatChart
	case barChart != nil:
		if lineChart != nil {
			barChart.Overlap(lineChart)
		}
		if scatterChart != nil {
			barChart.Overlap(scatterChart)
		}
		base = barChart
	case lineChart != nil:
		if scatterChart != nil {
			lineChart.Overlap(scatterChart)
		}
		base = lineChart
	case scatterChart != nil:
		base = scatterChart
	default:
		// An empty figure still renders its frame and titles.
		base = f.buildLine([]Series{{Kind: KindLine, Name: ""}}, true)
	}

	var buf bytes.Buffer
	if err := base.Render(&buf); err != nil {
		return fmt.Errorf("render: backend render failed: %w", err)
	}
	html := buf.String()
	if f.SourceLabel != "" {
		footer := fmt.Sprintf(
			`<p style="text-align:right;font-size:10px;color:#898989;font-family:%s;margin:2px 12px;">%s</p>`,
			f.FontFamily, f.SourceLabel)
		html = strings.Replace(html, "</body>", footer+"\n</body>", 1)
	}
	_, err := io.WriteString(w, html)
	return err
}

// globalOpts builds the page, title, legend, axis, and visual map options
// applied to the base chart.
func (f *Figure) globalOpts() []charts.GlobalOpts {
	renderKind := "canvas"
	if f.SVG {
		renderKind = "svg"
	}
	out := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:           fmt.Sprintf("%dpx", f.Width),
			Height:          fmt.Sprintf("%dpx", f.Height),
			PageTitle:       f.PageTitle,
			BackgroundColor: f.Background,
			Renderer:        renderKind,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    f.Title,
			Subtitle: f.Subtitle,
			TitleStyle: &opts.TextStyle{
				Color:    f.TitleColor,
				FontSize: f.TitleSize,
			},
			SubtitleStyle: &opts.TextStyle{
				Color:    f.SubtitleColor,
				FontSize: f.SubtitleSize,
			},
		}),
		charts.WithGridOpts(opts.Grid{ContainLabel: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(f.legendOpts()),
		charts.WithXAxisOpts(f.axisOpts(f.X).xAxis()),
		charts.WithYAxisOpts(f.axisOpts(f.Y).yAxis()),
	}
	if f.VMap != nil {
		out = append(out, charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(f.VMap.Min),
			Max:        float32(f.VMap.Max),
			InRange:    &opts.VisualMapInRange{Color: f.VMap.Colors},
		}))
	}
	return out
}

func (f *Figure) legendOpts() opts.Legend {
	var names []interface{}
	for _, s := range f.series {
		if s.NoLegend || s.Name == "" {
			continue
		}
		names = append(names, s.Name)
	}
	if f.Legend.Reversed {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return opts.Legend{
		Show:   opts.Bool(f.Legend.Show && len(names) > 0),
		Orient: f.Legend.Orient,
		Left:   f.Legend.Left,
		Top:    f.Legend.Top,
		Right:  f.Legend.Right,
		Bottom: f.Legend.Bottom,
		Data:   names,
	}
}

// axisSpec is the shared axis option shape projected into the backend's
// separate x and y types.
type axisSpec struct {
	name      string
	kind      string
	data      interface{}
	min, max  interface{}
	show      types.Bool
	axisLabel *opts.AxisLabel
}

func (f *Figure) axisOpts(a Axis) axisSpec {
	spec := axisSpec{
		name: a.Label,
		kind: a.Kind,
		show: opts.Bool(!a.Hidden),
	}
	if len(a.Data) > 0 {
		spec.data = a.Data
	}
	if a.Min != nil {
		spec.min = *a.Min
	}
	if a.Max != nil {
		spec.max = *a.Max
	}
	label := &opts.AxisLabel{Show: opts.Bool(!a.Hidden), Rotate: float64(a.Rotate)}
	switch {
	case a.FormatterJS != "":
		label.Formatter = types.FuncStr(opts.FuncOpts(a.FormatterJS))
	case a.Formatter != "":
		label.Formatter = types.FuncStr(a.Formatter)
	}
	spec.axisLabel = label
	return spec
}

func (s axisSpec) xAxis() opts.XAxis {
	return opts.XAxis{
		Name: s.name, Type: s.kind, Data: s.data,
		Min: s.min, Max: s.max, Show: s.show, AxisLabel: s.axisLabel,
	}
}

func (s axisSpec) yAxis() opts.YAxis {
	return opts.YAxis{
		Name: s.name, Type: s.kind, Data: s.data,
		Min: s.min, Max: s.max, Show: s.show, AxisLabel: s.axisLabel,
	}
}

// annotationOpts carries the figure's mark lines and areas; they attach to
// the first series of the base chart.
func (f *Figure) annotationOpts() []charts.SeriesOpts {
	var out []charts.SeriesOpts
	for _, m := range f.markLines {
		switch {
		case m.X != nil && m.Y != nil && m.X2 != nil && m.Y2 != nil:
			out = append(out, charts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
				Name:        m.Name,
				Coordinate0: []interface{}{*m.X, *m.Y},
				Coordinate1: []interface{}{*m.X2, *m.Y2},
			}))
		case m.X != nil:
			out = append(out, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name: m.Name, XAxis: *m.X,
			}))
		case m.Y != nil:
			out = append(out, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name: m.Name, YAxis: *m.Y,
			}))
		}
	}
	if len(f.markLines) > 0 {
		first := f.markLines[0]
		out = append(out, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol: []string{"none", "none"},
			LineStyle: &opts.LineStyle{
				Color: first.Color,
				Width: float32(first.Width),
				Type:  first.Dash,
			},
		}))
	}
	for _, a := range f.markAreas {
		out = append(out, charts.WithMarkAreaNameCoordItemOpts(opts.MarkAreaNameCoordItem{
			Coordinate0: []interface{}{deref(a.X1), deref(a.Y1)},
			Coordinate1: []interface{}{deref(a.X2), deref(a.Y2)},
			ItemStyle: &opts.ItemStyle{
				Color:   a.Color,
				Opacity: float32(a.Opacity),
			},
		}))
	}
	return out
}

func deref(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func (f *Figure) buildLine(list []Series, isBase bool) *charts.Line {
	if len(list) == 0 {
		return nil
	}
	line := charts.NewLine()
	if isBase {
		line.SetGlobalOptions(f.globalOpts()...)
	}
	for i, s := range list {
		var data []opts.LineData
		if len(s.Categories) > 0 {
			data = make([]opts.LineData, len(s.Values))
			for j, v := range s.Values {
				if f.Horizontal {
					data[j] = opts.LineData{Value: []interface{}{v, s.Categories[j]}}
				} else {
					data[j] = opts.LineData{Value: []interface{}{s.Categories[j], v}}
				}
			}
		} else {
			data = make([]opts.LineData, len(s.XY))
			for j, xy := range s.XY {
				data[j] = opts.LineData{Value: []interface{}{xy[0], xy[1]}}
			}
		}
		so := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				Stack:      s.Stack,
				ShowSymbol: opts.Bool(s.ShowSymbol),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: s.Color,
				Width: float32(s.LineWidth),
				Type:  s.LineDash,
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if s.Kind == KindArea {
			so = append(so, charts.WithAreaStyleOpts(opts.AreaStyle{
				Color:   s.Color,
				Opacity: float32(s.Opacity),
			}))
		}
		if isBase && i == 0 {
			so = append(so, f.annotationOpts()...)
		}
		line.AddSeries(s.Name, data, so...)
	}
	return line
}

func (f *Figure) buildBar(list []Series, isBase bool) *charts.Bar {
	if len(list) == 0 {
		return nil
	}
	bar := charts.NewBar()
	if isBase {
		bar.SetGlobalOptions(f.globalOpts()...)
	}
	for i, s := range list {
		data := make([]opts.BarData, len(s.Values))
		for j, v := range s.Values {
			d := opts.BarData{Value: v}
			if len(s.Colors) > j && s.Colors[j] != "" {
				d.ItemStyle = &opts.ItemStyle{Color: s.Colors[j]}
			}
			data[j] = d
		}
		so := []charts.SeriesOpts{
			charts.WithBarChartOpts(opts.BarChart{
				Stack:          s.Stack,
				BarCategoryGap: f.BarCategoryGap,
			}),
		}
		if s.Color != "" {
			so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		if isBase && i == 0 {
			so = append(so, f.annotationOpts()...)
		}
		bar.AddSeries(s.Name, data, so...)
	}
	return bar
}

func (f *Figure) buildScatter(list []Series, isBase bool) *charts.Scatter {
	if len(list) == 0 {
		return nil
	}
	scatter := charts.NewScatter()
	if isBase {
		scatter.SetGlobalOptions(f.globalOpts()...)
	}
	for i, s := range list {
		data := f.scatterData(s)
		so := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if s.Kind == KindText {
			so = append(so, charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
				Position:  s.LabelPosition,
				Color:     s.LabelColor,
				FontSize:  s.LabelFontSize,
			}))
		}
		if isBase && i == 0 {
			so = append(so, f.annotationOpts()...)
		}
		scatter.AddSeries(s.Name, data, so...)
	}
	return scatter
}

// scatterData emits coordinate pairs, honoring categorical coordinates and
// horizontal orientation.
func (f *Figure) scatterData(s Series) []opts.ScatterData {
	symbolSize := s.SymbolSize
	if s.Kind == KindText {
		symbolSize = 0
	} else if symbolSize == 0 {
		symbolSize = 8
	}
	size := func(j int) int {
		if len(s.Sizes) > j && s.Sizes[j] > 0 {
			return s.Sizes[j]
		}
		return symbolSize
	}
	var data []opts.ScatterData
	if len(s.Categories) > 0 {
		data = make([]opts.ScatterData, len(s.Values))
		for j, v := range s.Values {
			var value interface{}
			switch {
			case len(s.YCategories) > j:
				value = []interface{}{s.Categories[j], s.YCategories[j]}
			case f.Horizontal:
				value = []interface{}{v, s.Categories[j]}
			default:
				value = []interface{}{s.Categories[j], v}
			}
			data[j] = opts.ScatterData{
				Value:      value,
				Symbol:     s.Symbol,
				SymbolSize: size(j),
			}
			if len(s.Texts) > j {
				data[j].Name = s.Texts[j]
			}
		}
	} else {
		data = make([]opts.ScatterData, len(s.XY))
		for j, xy := range s.XY {
			data[j] = opts.ScatterData{
				Value:      []interface{}{xy[0], xy[1]},
				Symbol:     s.Symbol,
				SymbolSize: size(j),
			}
			if len(s.Texts) > j {
				data[j].Name = s.Texts[j]
			}
		}
	}
	return data
}

func (f *Figure) buildHeatMap(list []Series, isBase bool) *charts.HeatMap {
	if len(list) == 0 {
		return nil
	}
	heat := charts.NewHeatMap()
	if isBase {
		heat.SetGlobalOptions(f.globalOpts()...)
	}
	for i, s := range list {
		data := make([]opts.HeatMapData, len(s.Values))
		for j, v := range s.Values {
			data[j] = opts.HeatMapData{
				Value: []interface{}{s.Categories[j], s.YCategories[j], v},
			}
		}
		var so []charts.SeriesOpts
		if isBase && i == 0 {
			so = append(so, f.annotationOpts()...)
		}
		heat.AddSeries(s.Name, data, so...)
	}
	return heat
}
