package chart

import "sort"

// Builder source snippets for the dashboard's "view the code" panels.
// Kept as static text (updated alongside builder.go) rather than extracted
// at runtime, so the binary needs no source tree to show them.

var sources = map[string]string{
	"line": `// BuildLineSeries builds a single-series line chart spec: rows sorted
// ascending by dateCol, windowed to the trailing NPoints, one formatted
// label per point and one tick per windowed date.
func BuildLineSeries(tbl *table.Table, dateCol, valueCol string, style StyleConfig) (*Spec, error) {
	style = style.withDefaults("Line Chart")
	if style.NPoints <= 0 {
		return nil, &InvalidConfigError{Field: "n_points", Reason: "must be positive"}
	}
	tmpl, err := format.Parse(style.YFormat)
	if err != nil {
		return nil, &InvalidConfigError{Field: "y_format", Reason: err.Error()}
	}
	sorted, err := tbl.SortByTime(dateCol)
	if err != nil {
		return nil, withOp(err, "build line series")
	}
	win := sorted.Tail(style.NPoints)
	times, _ := win.TimeValues(dateCol)
	values, err := win.NumberValues(valueCol)
	if err != nil {
		return nil, withOp(err, "build line series")
	}
	return &Spec{
		Title: style.Title,
		Kind:  KindLine,
		Series: []Series{{
			Name:   valueCol,
			Color:  style.Color,
			Format: style.YFormat,
			Points: timePoints(times, values),
			Labels: applyLabels(tmpl, values),
		}},
		Ticks:     timeTicks(times, style.DateFormat),
		TickAngle: style.TickAngle,
	}, nil
}`,

	"dual": `// BuildDualSeries builds a two-series line chart spec sharing one x-axis.
// Each series keeps its own name, color and text format; the second series
// carries the secondary-axis hint so a renderer may give it its own scale.
func BuildDualSeries(tbl *table.Table, dateCol string, a, b SeriesOpts, style StyleConfig) (*Spec, error) {
	a = a.withDefaults(ColorBlue, "number")
	b = b.withDefaults(ColorGray, "percentage")
	sorted, err := tbl.SortByTime(dateCol)
	if err != nil {
		return nil, withOp(err, "build dual series")
	}
	win := sorted.Tail(style.NPoints)
	times, _ := win.TimeValues(dateCol)
	valuesA, _ := win.NumberValues(a.Column)
	valuesB, _ := win.NumberValues(b.Column)
	return &Spec{
		Title: style.Title,
		Kind:  KindLine,
		Series: []Series{
			{Name: a.Name, Color: a.Color, Format: a.Format, Axis: AxisPrimary,
				Points: timePoints(times, valuesA)},
			{Name: b.Name, Color: b.Color, Format: b.Format, Axis: AxisSecondary,
				Points: timePoints(times, valuesB)},
		},
		Ticks:     timeTicks(times, style.DateFormat),
		TickAngle: style.TickAngle,
	}, nil
}`,

	"bar": `// BuildBarSeries builds a bar chart spec. The value column is divided by
// scaleFactor first, then the trailing window is taken, so the emitted
// values and currency labels are in scaled units. Date ticks always use the
// fixed month + full-year layout.
func BuildBarSeries(tbl *table.Table, xCol, valueCol string, scaleFactor float64, style StyleConfig) (*Spec, error) {
	if scaleFactor <= 0 {
		return nil, &InvalidConfigError{Field: "scale_factor", Reason: "must be positive"}
	}
	scaled, err := tbl.Scale(valueCol, scaleFactor)
	if err != nil {
		return nil, withOp(err, "build bar series")
	}
	win := scaled.Tail(style.NPoints)
	values, _ := win.NumberValues(valueCol)
	// ... one point and one month+year tick per windowed row ...
	return &Spec{
		Title:  style.Title,
		Kind:   KindBar,
		Series: []Series{{Name: valueCol, Color: style.Color,
			Labels: applyLabels(format.Currency, values)}},
	}, nil
}`,
}

// Source returns the bundled source snippet for a builder ("line", "dual"
// or "bar").
func Source(name string) (string, bool) {
	src, ok := sources[name]
	return src, ok
}

// Sources lists the builders that have a bundled snippet, sorted by name.
func Sources() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
