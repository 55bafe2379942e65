package chart

import (
	"strconv"
	"time"

	"github.com/graficos-io/graficos/pkg/format"
	"github.com/graficos-io/graficos/pkg/table"
)

// BuildLineSeries builds a single-series line chart spec: rows sorted
// ascending by dateCol, windowed to the trailing NPoints, one formatted
// label per point and one tick per windowed date. Tables with fewer rows
// than the window produce all rows.
func BuildLineSeries(tbl *table.Table, dateCol, valueCol string, style StyleConfig) (*Spec, error) {
	const op = "build line series"

	style = style.withDefaults("Line Chart")
	if style.NPoints <= 0 {
		return nil, &InvalidConfigError{Field: "n_points", Reason: "must be positive"}
	}
	tmpl, err := format.Parse(style.YFormat)
	if err != nil {
		return nil, &InvalidConfigError{Field: "y_format", Reason: err.Error()}
	}

	if _, err := tbl.Column(valueCol); err != nil {
		return nil, withOp(err, op)
	}
	sorted, err := tbl.SortByTime(dateCol)
	if err != nil {
		return nil, withOp(err, op)
	}

	win := sorted.Tail(style.NPoints)
	times, err := win.TimeValues(dateCol)
	if err != nil {
		return nil, withOp(err, op)
	}
	values, err := win.NumberValues(valueCol)
	if err != nil {
		return nil, withOp(err, op)
	}

	return &Spec{
		Title: style.Title,
		Kind:  KindLine,
		Series: []Series{{
			Name:   valueCol,
			Color:  style.Color,
			Format: style.YFormat,
			Axis:   AxisPrimary,
			Points: timePoints(times, values),
			Labels: applyLabels(tmpl, values),
		}},
		Ticks:     timeTicks(times, style.DateFormat),
		TickAngle: style.TickAngle,
	}, nil
}

// BuildDualSeries builds a two-series line chart spec sharing one x-axis.
// Each series keeps its own name, color and text format; the second series
// carries the secondary-axis hint so a renderer may give it its own scale.
func BuildDualSeries(tbl *table.Table, dateCol string, a, b SeriesOpts, style StyleConfig) (*Spec, error) {
	const op = "build dual series"

	style = style.withDefaults("Dual Line Chart")
	if style.NPoints <= 0 {
		return nil, &InvalidConfigError{Field: "n_points", Reason: "must be positive"}
	}
	a = a.withDefaults(ColorBlue, "number")
	b = b.withDefaults(ColorGray, "percentage")
	tmplA, err := format.Parse(a.Format)
	if err != nil {
		return nil, &InvalidConfigError{Field: "y1_format", Reason: err.Error()}
	}
	tmplB, err := format.Parse(b.Format)
	if err != nil {
		return nil, &InvalidConfigError{Field: "y2_format", Reason: err.Error()}
	}

	for _, col := range []string{a.Column, b.Column} {
		if _, err := tbl.Column(col); err != nil {
			return nil, withOp(err, op)
		}
	}
	sorted, err := tbl.SortByTime(dateCol)
	if err != nil {
		return nil, withOp(err, op)
	}

	win := sorted.Tail(style.NPoints)
	times, err := win.TimeValues(dateCol)
	if err != nil {
		return nil, withOp(err, op)
	}
	valuesA, err := win.NumberValues(a.Column)
	if err != nil {
		return nil, withOp(err, op)
	}
	valuesB, err := win.NumberValues(b.Column)
	if err != nil {
		return nil, withOp(err, op)
	}

	return &Spec{
		Title: style.Title,
		Kind:  KindLine,
		Series: []Series{
			{
				Name:   a.Name,
				Color:  a.Color,
				Format: a.Format,
				Axis:   AxisPrimary,
				Points: timePoints(times, valuesA),
				Labels: applyLabels(tmplA, valuesA),
			},
			{
				Name:   b.Name,
				Color:  b.Color,
				Format: b.Format,
				Axis:   AxisSecondary,
				Points: timePoints(times, valuesB),
				Labels: applyLabels(tmplB, valuesB),
			},
		},
		Ticks:     timeTicks(times, style.DateFormat),
		TickAngle: style.TickAngle,
	}, nil
}

// BuildBarSeries builds a bar chart spec. The value column is divided by
// scaleFactor first, then the trailing window is taken, so the emitted
// values and currency labels are in scaled units. Unlike the line builders
// the rows are not sorted, and date ticks always use the fixed month +
// full-year layout regardless of StyleConfig.DateFormat.
func BuildBarSeries(tbl *table.Table, xCol, valueCol string, scaleFactor float64, style StyleConfig) (*Spec, error) {
	const op = "build bar series"

	style = style.withDefaults("Bar Chart")
	if style.NPoints <= 0 {
		return nil, &InvalidConfigError{Field: "n_points", Reason: "must be positive"}
	}
	if scaleFactor <= 0 {
		return nil, &InvalidConfigError{Field: "scale_factor", Reason: "must be positive"}
	}

	if _, err := tbl.Column(xCol); err != nil {
		return nil, withOp(err, op)
	}
	scaled, err := tbl.Scale(valueCol, scaleFactor)
	if err != nil {
		return nil, withOp(err, op)
	}

	win := scaled.Tail(style.NPoints)
	xc, err := win.Column(xCol)
	if err != nil {
		return nil, withOp(err, op)
	}
	values, err := win.NumberValues(valueCol)
	if err != nil {
		return nil, withOp(err, op)
	}

	points := make([]Point, len(values))
	ticks := make([]Tick, len(values))
	switch xc.Type() {
	case table.TypeTime:
		for i, ts := range xc.Times() {
			points[i] = Point{Time: ts, Value: values[i]}
			ticks[i] = Tick{Time: ts, Label: ts.Format(barDateFormat)}
		}
	case table.TypeString:
		for i, s := range xc.Strings() {
			points[i] = Point{Category: s, Value: values[i]}
			ticks[i] = Tick{Category: s, Label: s}
		}
	default:
		for i, v := range xc.Numbers() {
			s := strconv.FormatFloat(v, 'g', -1, 64)
			points[i] = Point{Category: s, Value: values[i]}
			ticks[i] = Tick{Category: s, Label: s}
		}
	}

	return &Spec{
		Title: style.Title,
		Kind:  KindBar,
		Series: []Series{{
			Name:   valueCol,
			Color:  style.Color,
			Format: format.Currency.String(),
			Axis:   AxisPrimary,
			Points: points,
			Labels: applyLabels(format.Currency, values),
		}},
		Ticks:     ticks,
		TickAngle: style.TickAngle,
	}, nil
}

// withDefaults fills unset presentation fields. NPoints is deliberately not
// defaulted here: a non-positive window is a caller error, not a gap.
// TickAngle is also left alone, since 0 means horizontal labels rather than
// "unset"; DefaultStyle supplies the usual 45.
func (s StyleConfig) withDefaults(title string) StyleConfig {
	if s.Title == "" {
		s.Title = title
	}
	if s.DateFormat == "" {
		s.DateFormat = DefaultDateFormat
	}
	if s.YFormat == "" {
		s.YFormat = "number"
	}
	if s.Color == "" {
		s.Color = ColorOrange
	}
	return s
}

func (o SeriesOpts) withDefaults(color, formatName string) SeriesOpts {
	if o.Name == "" {
		o.Name = o.Column
	}
	if o.Color == "" {
		o.Color = color
	}
	if o.Format == "" {
		o.Format = formatName
	}
	return o
}

func timePoints(times []time.Time, values []float64) []Point {
	points := make([]Point, len(values))
	for i := range values {
		points[i] = Point{Time: times[i], Value: values[i]}
	}
	return points
}

func timeTicks(times []time.Time, layout string) []Tick {
	ticks := make([]Tick, len(times))
	for i, ts := range times {
		ticks[i] = Tick{Time: ts, Label: ts.Format(layout)}
	}
	return ticks
}

func applyLabels(tmpl format.Template, values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = tmpl.Apply(v)
	}
	return labels
}
