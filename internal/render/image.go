package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/graficos-io/graficos/internal/chart"
)

// PNG renders a spec as a PNG image.
func PNG(spec *chart.Spec, w io.Writer) error {
	return writeImage(spec, gochart.PNG, w)
}

// SVG renders a spec as an SVG image.
func SVG(spec *chart.Spec, w io.Writer) error {
	return writeImage(spec, gochart.SVG, w)
}

func writeImage(spec *chart.Spec, rp gochart.RendererProvider, w io.Writer) error {
	switch spec.Kind {
	case chart.KindBar:
		return imageBar(spec, rp, w)
	case chart.KindLine:
		return imageLine(spec, rp, w)
	default:
		return fmt.Errorf("render: unknown chart kind %q", spec.Kind)
	}
}

func imageLine(spec *chart.Spec, rp gochart.RendererProvider, w io.Writer) error {
	if len(spec.Series) == 0 || len(spec.Series[0].Points) < 2 {
		return fmt.Errorf("render: %q needs at least two points", spec.Title)
	}

	var series []gochart.Series
	for _, s := range spec.Series {
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.Time
			ys[i] = p.Value
		}
		ts := gochart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: hexColor(s.Color),
				StrokeWidth: 2,
			},
		}
		if s.Axis == chart.AxisSecondary {
			ts.YAxis = gochart.YAxisSecondary
		}
		series = append(series, ts)
	}

	ticks := make([]gochart.Tick, len(spec.Ticks))
	for i, t := range spec.Ticks {
		ticks[i] = gochart.Tick{Value: timeToFloat(t.Time), Label: t.Label}
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Series: series,
		XAxis:  gochart.XAxis{Ticks: ticks},
	}
	return graph.Render(rp, w)
}

func imageBar(spec *chart.Spec, rp gochart.RendererProvider, w io.Writer) error {
	if len(spec.Series) == 0 || len(spec.Series[0].Points) == 0 {
		return fmt.Errorf("render: %q has no bars", spec.Title)
	}

	s := spec.Series[0]
	bars := make([]gochart.Value, len(s.Points))
	for i, p := range s.Points {
		label := ""
		if i < len(spec.Ticks) {
			label = spec.Ticks[i].Label
		}
		bars[i] = gochart.Value{
			Label: label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   hexColor(s.Color),
				StrokeColor: hexColor(s.Color),
			},
		}
	}

	graph := gochart.BarChart{
		Title:    spec.Title,
		Bars:     bars,
		BarWidth: 40,
	}
	return graph.Render(rp, w)
}

// timeToFloat matches go-chart's internal time-to-x conversion.
func timeToFloat(t time.Time) float64 {
	return float64(t.UnixNano())
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
