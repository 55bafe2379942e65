// Package chart builds declarative chart specifications from tabular data.
//
// The three builders (BuildLineSeries, BuildDualSeries, BuildBarSeries) are
// pure transformations: they sort and window the input table, attach
// formatted point labels and axis ticks, and hand back a Spec for a
// rendering collaborator (internal/render) to draw. They never mutate the
// input table and are safe to call concurrently.
package chart

import "time"

// Kind identifies the chart family a Spec describes.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// AxisHint tells the renderer which y-axis a series belongs to. Builders
// only hint; whether the renderer draws one shared axis or two is its call.
type AxisHint string

const (
	AxisPrimary   AxisHint = "primary"
	AxisSecondary AxisHint = "secondary"
)

// Point is a single (x, y) pair. Exactly one of Time and Category is set,
// matching the x column's type.
type Point struct {
	Time     time.Time `json:"time,omitempty"`
	Category string    `json:"category,omitempty"`
	Value    float64   `json:"value"`
}

// Series is one plotted line or bar group: ordered points, a formatted text
// label per point, and styling.
type Series struct {
	Name   string   `json:"name"`
	Color  string   `json:"color"`
	Format string   `json:"format"`
	Axis   AxisHint `json:"axis"`
	Points []Point  `json:"points"`
	Labels []string `json:"labels"`
}

// Tick is one x-axis tick: the underlying value plus its display label.
// Builders emit exactly one tick per windowed row, in point order.
type Tick struct {
	Time     time.Time `json:"time,omitempty"`
	Category string    `json:"category,omitempty"`
	Label    string    `json:"label"`
}

// Spec is the declarative chart description handed to a renderer. It is
// built fresh per call and owned by the caller; builders never retain or
// modify one after returning it.
type Spec struct {
	Title     string   `json:"title"`
	Kind      Kind     `json:"kind"`
	Series    []Series `json:"series"`
	Ticks     []Tick   `json:"ticks"`
	TickAngle int      `json:"tick_angle"`
}
