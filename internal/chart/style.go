package chart

// Series colors shared by the demo dashboards.
const (
	ColorOrange  = "#FF6200"
	ColorBlue    = "#0131FF"
	ColorGray    = "#C7D2FF"
	ColorSuccess = "#00AA44"
	ColorWarning = "#FFB800"
	ColorDanger  = "#FF4B4B"
)

// Styling defaults.
const (
	DefaultNPoints   = 12
	DefaultTickAngle = 45

	// DefaultDateFormat labels line-chart ticks as month + 2-digit year.
	DefaultDateFormat = "January 06"

	// barDateFormat is the fixed month + full-year layout used by bar-chart
	// ticks, independent of StyleConfig.DateFormat. Existing dashboards
	// depend on the two chart families labeling dates differently.
	barDateFormat = "January 2006"
)

// StyleConfig controls windowing and presentation for a single builder call.
// Zero values mean "use the default"; obtain a populated config from
// DefaultStyle and override fields as needed.
type StyleConfig struct {
	Title      string
	NPoints    int
	TickAngle  int
	DateFormat string
	YFormat    string // format template name for single-series builders
	Color      string
}

// DefaultStyle returns the styling defaults shared by all builders.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		NPoints:    DefaultNPoints,
		TickAngle:  DefaultTickAngle,
		DateFormat: DefaultDateFormat,
		YFormat:    "number",
		Color:      ColorOrange,
	}
}

// SeriesOpts selects and styles one series of a dual-axis chart.
type SeriesOpts struct {
	Column string
	Name   string
	Color  string
	Format string // format template name; the two series are independent
}
