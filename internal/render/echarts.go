// Package render draws chart specs with the external rendering engines:
// go-echarts for interactive HTML pages and go-chart for static PNG/SVG
// images. It consumes specs as-is and holds no state of its own.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/graficos-io/graficos/internal/chart"
)

// HTMLLine converts a line spec into a go-echarts line chart. Series with
// the secondary-axis hint are plotted against an extended y-axis.
func HTMLLine(spec *chart.Spec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(echartsGlobals(spec)...)

	secondary := false
	for _, s := range spec.Series {
		if s.Axis == chart.AxisSecondary {
			secondary = true
		}
	}
	if secondary {
		line.ExtendYAxis(opts.YAxis{Type: "value"})
	}

	line.SetXAxis(tickLabels(spec))
	for _, s := range spec.Series {
		items := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			items[i] = opts.LineData{Value: p.Value}
		}
		axisIndex := 0
		if s.Axis == chart.AxisSecondary {
			axisIndex = 1
		}
		line.AddSeries(s.Name, items,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axisIndex, ShowSymbol: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	}
	return line
}

// HTMLBar converts a bar spec into a go-echarts bar chart.
func HTMLBar(spec *chart.Spec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(echartsGlobals(spec)...)

	bar.SetXAxis(tickLabels(spec))
	for _, s := range spec.Series {
		items := make([]opts.BarData, len(s.Points))
		for i, p := range s.Points {
			items[i] = opts.BarData{Value: p.Value}
		}
		bar.AddSeries(s.Name, items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "outside"}),
		)
	}
	return bar
}

// WriteHTML renders a single spec as a standalone HTML document.
func WriteHTML(w io.Writer, spec *chart.Spec) error {
	switch spec.Kind {
	case chart.KindBar:
		return HTMLBar(spec).Render(w)
	case chart.KindLine:
		return HTMLLine(spec).Render(w)
	default:
		return fmt.Errorf("render: unknown chart kind %q", spec.Kind)
	}
}

// WriteGallery renders several specs onto one flex-layout page.
func WriteGallery(w io.Writer, specs ...*chart.Spec) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, spec := range specs {
		switch spec.Kind {
		case chart.KindBar:
			page.AddCharts(HTMLBar(spec))
		case chart.KindLine:
			page.AddCharts(HTMLLine(spec))
		default:
			return fmt.Errorf("render: unknown chart kind %q", spec.Kind)
		}
	}
	return page.Render(w)
}

// echartsGlobals maps the spec's title and tick styling onto global options.
func echartsGlobals(spec *chart.Spec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Show:     opts.Bool(true),
				Rotate:   float64(spec.TickAngle),
				Interval: "0",
			},
		}),
	}
}

func tickLabels(spec *chart.Spec) []string {
	labels := make([]string, len(spec.Ticks))
	for i, t := range spec.Ticks {
		labels[i] = t.Label
	}
	return labels
}
