// Package demo generates the sample table used by the dashboard pages and
// the chart gallery.
package demo

import (
	"math/rand"
	"time"

	"github.com/graficos-io/graficos/pkg/table"
)

// DefaultSeed reproduces the canonical demo dataset.
const DefaultSeed = 42

// Demo table column names.
const (
	ColDate   = "date"
	ColValue1 = "Value1"
	ColValue2 = "Value2"
	ColMonto  = "Monto_Efectivo"
)

// Generator produces demo rows from its own random source. The source is
// injected rather than global, so two generators with the same seed emit
// identical tables and concurrent callers never share RNG state.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator around rng. A nil rng falls back to a fresh
// source with DefaultSeed.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}
	return &Generator{rng: rng}
}

// NewSeeded creates a generator with its own source from seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Row is one generated observation, used by the live feed.
type Row struct {
	Date          time.Time `json:"date"`
	Value1        float64   `json:"value1"`
	Value2        float64   `json:"value2"`
	MontoEfectivo float64   `json:"monto_efectivo"`
}

// Next generates one observation dated at date.
func (g *Generator) Next(date time.Time) Row {
	return Row{
		Date:          date,
		Value1:        float64(500 + g.rng.Intn(1500)),
		Value2:        float64(800 + g.rng.Intn(700)),
		MontoEfectivo: float64(1_000_000 + g.rng.Intn(4_000_000)),
	}
}

// Table generates the demo dataset: one row per month from January 2022
// through January 2024, with two value columns and one monetary column.
func (g *Generator) Table() *table.Table {
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	var (
		dates  []time.Time
		value1 []float64
		value2 []float64
		monto  []float64
	)
	for d := start; !d.After(end); d = d.AddDate(0, 1, 0) {
		row := g.Next(d)
		dates = append(dates, d)
		value1 = append(value1, row.Value1)
		value2 = append(value2, row.Value2)
		monto = append(monto, row.MontoEfectivo)
	}

	tbl, err := table.New(
		table.TimeColumn(ColDate, dates),
		table.NumberColumn(ColValue1, value1),
		table.NumberColumn(ColValue2, value2),
		table.NumberColumn(ColMonto, monto),
	)
	if err != nil {
		// Columns are built in lockstep above, lengths always agree.
		panic(err)
	}
	return tbl
}
