package demo

import (
	"testing"
	"time"
)

func TestTableShape(t *testing.T) {
	tbl := NewSeeded(DefaultSeed).Table()

	// Monthly from January 2022 through January 2024 inclusive.
	if got := tbl.NumRows(); got != 25 {
		t.Errorf("NumRows: got %d, want 25", got)
	}

	want := []string{ColDate, ColValue1, ColValue2, ColMonto}
	names := tbl.ColumnNames()
	if len(names) != len(want) {
		t.Fatalf("columns: got %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("column[%d]: got %q, want %q", i, names[i], n)
		}
	}

	times, err := tbl.TimeValues(ColDate)
	if err != nil {
		t.Fatalf("TimeValues: %v", err)
	}
	first := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !times[0].Equal(first) {
		t.Errorf("first date: got %v, want %v", times[0], first)
	}
	if !times[len(times)-1].Equal(last) {
		t.Errorf("last date: got %v, want %v", times[len(times)-1], last)
	}
}

func TestValueRanges(t *testing.T) {
	tbl := NewSeeded(7).Table()

	tests := []struct {
		column   string
		min, max float64
	}{
		{ColValue1, 500, 2000},
		{ColValue2, 800, 1500},
		{ColMonto, 1_000_000, 5_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			values, err := tbl.NumberValues(tt.column)
			if err != nil {
				t.Fatalf("NumberValues: %v", err)
			}
			for i, v := range values {
				if v < tt.min || v >= tt.max {
					t.Errorf("row %d: %v outside [%v, %v)", i, v, tt.min, tt.max)
				}
			}
		})
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := NewSeeded(DefaultSeed).Table()
	b := NewSeeded(DefaultSeed).Table()

	va, _ := a.NumberValues(ColValue1)
	vb, _ := b.NumberValues(ColValue1)
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("same seed diverged at row %d: %v != %v", i, va[i], vb[i])
		}
	}

	c := NewSeeded(DefaultSeed + 1).Table()
	vc, _ := c.NumberValues(ColValue1)
	same := true
	for i := range va {
		if va[i] != vc[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical tables")
	}
}

func TestNextUsesGivenDate(t *testing.T) {
	g := New(nil)
	when := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	row := g.Next(when)
	if !row.Date.Equal(when) {
		t.Errorf("Date: got %v, want %v", row.Date, when)
	}
	if row.Value1 < 500 || row.Value1 >= 2000 {
		t.Errorf("Value1 out of range: %v", row.Value1)
	}
}
