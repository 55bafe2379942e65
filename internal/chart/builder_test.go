package chart

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/graficos-io/graficos/pkg/table"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

// threeMonths has rows deliberately out of date order so sorting is visible.
func threeMonths(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.TimeColumn("date", []time.Time{
			day(t, "2022-01-01"),
			day(t, "2022-03-01"),
			day(t, "2022-02-01"),
		}),
		table.NumberColumn("value", []float64{100, 150, 200}),
		table.NumberColumn("other", []float64{0.10, 0.30, 0.20}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

func style(n int) StyleConfig {
	s := DefaultStyle()
	s.NPoints = n
	return s
}

// ════════════════════════════════════════════════════════════════════
// Line builder
// ════════════════════════════════════════════════════════════════════

func TestBuildLineSeries(t *testing.T) {
	spec, err := BuildLineSeries(threeMonths(t), "date", "value", style(12))
	if err != nil {
		t.Fatalf("BuildLineSeries: %v", err)
	}

	if spec.Kind != KindLine {
		t.Errorf("Kind: got %v, want %v", spec.Kind, KindLine)
	}
	if len(spec.Series) != 1 {
		t.Fatalf("series count: got %d, want 1", len(spec.Series))
	}

	points := spec.Series[0].Points
	if len(points) != 3 {
		t.Fatalf("points: got %d, want 3", len(points))
	}

	// Points come out sorted ascending by date even though the input is not.
	for i := 1; i < len(points); i++ {
		if points[i].Time.Before(points[i-1].Time) {
			t.Errorf("points not ascending at %d", i)
		}
	}
	wantValues := []float64{100, 200, 150}
	for i, p := range points {
		if p.Value != wantValues[i] {
			t.Errorf("point[%d].Value: got %v, want %v", i, p.Value, wantValues[i])
		}
	}

	// One label and one tick per point.
	if len(spec.Series[0].Labels) != len(points) {
		t.Errorf("labels: got %d, want %d", len(spec.Series[0].Labels), len(points))
	}
	if len(spec.Ticks) != len(points) {
		t.Errorf("ticks: got %d, want %d", len(spec.Ticks), len(points))
	}
	if got := spec.Ticks[0].Label; got != "January 22" {
		t.Errorf("tick[0]: got %q, want %q", got, "January 22")
	}
}

func TestBuildLineSeriesWindow(t *testing.T) {
	spec, err := BuildLineSeries(threeMonths(t), "date", "value", style(2))
	if err != nil {
		t.Fatalf("BuildLineSeries: %v", err)
	}

	points := spec.Series[0].Points
	if len(points) != 2 {
		t.Fatalf("points: got %d, want 2", len(points))
	}

	// Trailing window keeps the two most recent rows after sorting.
	want := []struct {
		date  string
		value float64
	}{
		{"2022-02-01", 200},
		{"2022-03-01", 150},
	}
	for i, w := range want {
		if !points[i].Time.Equal(day(t, w.date)) {
			t.Errorf("point[%d].Time: got %v, want %s", i, points[i].Time, w.date)
		}
		if points[i].Value != w.value {
			t.Errorf("point[%d].Value: got %v, want %v", i, points[i].Value, w.value)
		}
	}
}

// Builders are pure: the same table and config always produce an identical
// spec, and building one never changes the input table.
func TestBuildersDeterministic(t *testing.T) {
	tbl := threeMonths(t)

	tests := []struct {
		name  string
		build func() (*Spec, error)
	}{
		{"line", func() (*Spec, error) {
			return BuildLineSeries(tbl, "date", "value", style(2))
		}},
		{"dual", func() (*Spec, error) {
			return BuildDualSeries(tbl, "date",
				SeriesOpts{Column: "value"},
				SeriesOpts{Column: "other"},
				style(2))
		}},
		{"bar", func() (*Spec, error) {
			return BuildBarSeries(tbl, "date", "value", 1_000_000, style(2))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := tt.build()
			if err != nil {
				t.Fatalf("first build: %v", err)
			}
			second, err := tt.build()
			if err != nil {
				t.Fatalf("second build: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("specs differ between builds:\nfirst:  %+v\nsecond: %+v", first, second)
			}
		})
	}
}

func TestBuildLineSeriesDefaults(t *testing.T) {
	s := StyleConfig{NPoints: 12}
	spec, err := BuildLineSeries(threeMonths(t), "date", "value", s)
	if err != nil {
		t.Fatalf("BuildLineSeries: %v", err)
	}

	if spec.Title != "Line Chart" {
		t.Errorf("Title: got %q, want %q", spec.Title, "Line Chart")
	}
	if spec.Series[0].Color != ColorOrange {
		t.Errorf("Color: got %q, want %q", spec.Series[0].Color, ColorOrange)
	}
	if spec.Series[0].Format != "number" {
		t.Errorf("Format: got %q, want %q", spec.Series[0].Format, "number")
	}
	// A zero tick angle is a valid choice (horizontal labels), not a gap to
	// fill; only DefaultStyle supplies 45.
	if spec.TickAngle != 0 {
		t.Errorf("TickAngle: got %d, want 0", spec.TickAngle)
	}
}

func TestBuildLineSeriesErrors(t *testing.T) {
	tbl := threeMonths(t)

	tests := []struct {
		name       string
		run        func() error
		wantKind   string
		wantColumn string
	}{
		{
			name: "missing date column",
			run: func() error {
				_, err := BuildLineSeries(tbl, "no_date", "value", style(12))
				return err
			},
			wantKind:   "column",
			wantColumn: "no_date",
		},
		{
			name: "missing value column",
			run: func() error {
				_, err := BuildLineSeries(tbl, "date", "no_value", style(12))
				return err
			},
			wantKind:   "column",
			wantColumn: "no_value",
		},
		{
			name: "zero window",
			run: func() error {
				_, err := BuildLineSeries(tbl, "date", "value", style(0))
				return err
			},
			wantKind: "config",
		},
		{
			name: "unknown format",
			run: func() error {
				s := style(12)
				s.YFormat = "scientific"
				_, err := BuildLineSeries(tbl, "date", "value", s)
				return err
			},
			wantKind: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cnf *table.ColumnNotFoundError
			var cfg *InvalidConfigError
			switch tt.wantKind {
			case "column":
				if !errors.As(err, &cnf) {
					t.Fatalf("expected ColumnNotFoundError, got %v", err)
				}
				if cnf.Column != tt.wantColumn {
					t.Errorf("error column: got %q, want %q", cnf.Column, tt.wantColumn)
				}
			case "config":
				if !errors.As(err, &cfg) {
					t.Errorf("expected InvalidConfigError, got %v", err)
				}
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// Dual builder
// ════════════════════════════════════════════════════════════════════

func TestBuildDualSeries(t *testing.T) {
	spec, err := BuildDualSeries(threeMonths(t), "date",
		SeriesOpts{Column: "value", Name: "Sales"},
		SeriesOpts{Column: "other", Name: "Margin"},
		style(12))
	if err != nil {
		t.Fatalf("BuildDualSeries: %v", err)
	}

	if len(spec.Series) != 2 {
		t.Fatalf("series count: got %d, want 2", len(spec.Series))
	}

	a, b := spec.Series[0], spec.Series[1]
	if a.Axis != AxisPrimary {
		t.Errorf("series a axis: got %v, want primary", a.Axis)
	}
	if b.Axis != AxisSecondary {
		t.Errorf("series b axis: got %v, want secondary", b.Axis)
	}
	if a.Name != "Sales" || b.Name != "Margin" {
		t.Errorf("names: got %q/%q", a.Name, b.Name)
	}

	// Default formats are independent per series.
	if a.Format != "number" {
		t.Errorf("series a format: got %q, want number", a.Format)
	}
	if b.Format != "percentage" {
		t.Errorf("series b format: got %q, want percentage", b.Format)
	}

	// Labels honor each series' own template; sorted order is 0.10, 0.20, 0.30.
	if got := a.Labels[0]; got != "100" {
		t.Errorf("a.Labels[0]: got %q, want %q", got, "100")
	}
	if got := b.Labels[0]; got != "10.0%" {
		t.Errorf("b.Labels[0]: got %q, want %q", got, "10.0%")
	}

	// Both series share the x window.
	if len(a.Points) != len(b.Points) {
		t.Errorf("point counts differ: %d vs %d", len(a.Points), len(b.Points))
	}
}

func TestBuildDualSeriesExplicitFormats(t *testing.T) {
	spec, err := BuildDualSeries(threeMonths(t), "date",
		SeriesOpts{Column: "value", Format: "currency"},
		SeriesOpts{Column: "other", Format: "decimal"},
		style(12))
	if err != nil {
		t.Fatalf("BuildDualSeries: %v", err)
	}

	if got := spec.Series[0].Labels[0]; got != "$100M" {
		t.Errorf("a.Labels[0]: got %q, want %q", got, "$100M")
	}
	if got := spec.Series[1].Labels[0]; got != "0.10" {
		t.Errorf("b.Labels[0]: got %q, want %q", got, "0.10")
	}
}

func TestBuildDualSeriesErrors(t *testing.T) {
	tbl := threeMonths(t)

	_, err := BuildDualSeries(tbl, "date",
		SeriesOpts{Column: "missing"},
		SeriesOpts{Column: "other"},
		style(12))
	var cnf *table.ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
	if cnf.Column != "missing" {
		t.Errorf("error column: got %q, want %q", cnf.Column, "missing")
	}

	_, err = BuildDualSeries(tbl, "date",
		SeriesOpts{Column: "value", Format: "bogus"},
		SeriesOpts{Column: "other"},
		style(12))
	var cfg *InvalidConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
	if cfg.Field != "y1_format" {
		t.Errorf("Field: got %q, want y1_format", cfg.Field)
	}
}

// ════════════════════════════════════════════════════════════════════
// Bar builder
// ════════════════════════════════════════════════════════════════════

func TestBuildBarSeries(t *testing.T) {
	tbl, err := table.New(
		table.TimeColumn("date", []time.Time{
			day(t, "2022-01-01"),
			day(t, "2022-02-01"),
		}),
		table.NumberColumn("monto", []float64{2_500_000, 4_000_000}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}

	spec, err := BuildBarSeries(tbl, "date", "monto", 1_000_000, style(12))
	if err != nil {
		t.Fatalf("BuildBarSeries: %v", err)
	}

	if spec.Kind != KindBar {
		t.Errorf("Kind: got %v, want %v", spec.Kind, KindBar)
	}

	points := spec.Series[0].Points
	if points[0].Value != 2.5 {
		t.Errorf("point[0].Value: got %v, want 2.5", points[0].Value)
	}
	if points[1].Value != 4 {
		t.Errorf("point[1].Value: got %v, want 4", points[1].Value)
	}

	// Labels are always currency over the scaled values.
	labels := spec.Series[0].Labels
	if labels[0] != "$2M" {
		t.Errorf("label[0]: got %q, want %q", labels[0], "$2M")
	}
	if labels[1] != "$4M" {
		t.Errorf("label[1]: got %q, want %q", labels[1], "$4M")
	}

	// Bar ticks use the fixed month + full-year layout.
	if got := spec.Ticks[0].Label; got != "January 2022" {
		t.Errorf("tick[0]: got %q, want %q", got, "January 2022")
	}
}

// Bar rows are emitted in stored order, not sorted.
func TestBuildBarSeriesPreservesOrder(t *testing.T) {
	tbl, err := table.New(
		table.TimeColumn("date", []time.Time{
			day(t, "2022-03-01"),
			day(t, "2022-01-01"),
		}),
		table.NumberColumn("monto", []float64{3_000_000, 1_000_000}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}

	spec, err := BuildBarSeries(tbl, "date", "monto", 1_000_000, style(12))
	if err != nil {
		t.Fatalf("BuildBarSeries: %v", err)
	}

	points := spec.Series[0].Points
	if !points[0].Time.Equal(day(t, "2022-03-01")) {
		t.Errorf("point[0] reordered: got %v", points[0].Time)
	}
	if points[0].Value != 3 {
		t.Errorf("point[0].Value: got %v, want 3", points[0].Value)
	}
}

func TestBuildBarSeriesCategorical(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("region", []string{"north", "south"}),
		table.NumberColumn("monto", []float64{1_000_000, 2_000_000}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}

	spec, err := BuildBarSeries(tbl, "region", "monto", 1_000_000, style(12))
	if err != nil {
		t.Fatalf("BuildBarSeries: %v", err)
	}

	if got := spec.Series[0].Points[0].Category; got != "north" {
		t.Errorf("category: got %q, want %q", got, "north")
	}
	if got := spec.Ticks[1].Label; got != "south" {
		t.Errorf("tick[1]: got %q, want %q", got, "south")
	}
}

func TestBuildBarSeriesErrors(t *testing.T) {
	tbl := threeMonths(t)

	_, err := BuildBarSeries(tbl, "date", "value", 0, style(12))
	var cfg *InvalidConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected InvalidConfigError for zero scale, got %v", err)
	}
	if cfg.Field != "scale_factor" {
		t.Errorf("Field: got %q, want scale_factor", cfg.Field)
	}

	_, err = BuildBarSeries(tbl, "date", "value", -2, style(12))
	if !errors.As(err, &cfg) {
		t.Errorf("expected InvalidConfigError for negative scale, got %v", err)
	}

	_, err = BuildBarSeries(tbl, "date", "missing", 1, style(12))
	var cnf *table.ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
	if cnf.Column != "missing" {
		t.Errorf("error column: got %q, want %q", cnf.Column, "missing")
	}
}

// ════════════════════════════════════════════════════════════════════
// Source snippets
// ════════════════════════════════════════════════════════════════════

func TestSource(t *testing.T) {
	names := Sources()
	want := []string{"bar", "dual", "line"}
	if len(names) != len(want) {
		t.Fatalf("Sources: got %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Sources[%d]: got %q, want %q", i, names[i], n)
		}
	}

	src, ok := Source("line")
	if !ok {
		t.Fatal("Source(line): not found")
	}
	if src == "" {
		t.Error("Source(line): empty snippet")
	}

	if _, ok := Source("pie"); ok {
		t.Error("Source(pie): expected not found")
	}
}
