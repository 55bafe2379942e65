// Package format provides the text templates used for chart point labels:
// plain numbers, percentages, currency in millions, and two-decimal values.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Template is a named text rendering for numeric values.
type Template int

const (
	// Number renders a grouped integer: 1234.0 → "1,234".
	Number Template = iota
	// Percentage renders value×100 with one decimal: 0.123 → "12.3%".
	Percentage
	// Currency renders "$" + grouped integer + "M": 2.5 → "$2M".
	Currency
	// Decimal renders a grouped value with two decimals: 1234.5 → "1,234.50".
	Decimal
)

var names = map[Template]string{
	Number:     "number",
	Percentage: "percentage",
	Currency:   "currency",
	Decimal:    "decimal",
}

// String returns the template name.
func (t Template) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "unknown"
}

// Parse resolves a template by name.
func Parse(name string) (Template, error) {
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("format: unknown template %q", name)
}

// Apply renders a value under the template.
func (t Template) Apply(v float64) string {
	switch t {
	case Percentage:
		return fmt.Sprintf("%.1f%%", v*100)
	case Currency:
		return "$" + Group(v, 0) + "M"
	case Decimal:
		return Group(v, 2)
	default:
		return Group(v, 0)
	}
}

// Group formats a value with comma thousands separators and the given number
// of decimal places.
func Group(v float64, decimals int) string {
	negative := v < 0
	v = math.Abs(v)

	s := fmt.Sprintf("%.*f", decimals, v)
	intPart := s
	decPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i:]
	}

	grouped := groupDigits(intPart)
	if negative {
		return "-" + grouped + decPart
	}
	return grouped + decPart
}

// groupDigits inserts commas every three digits from the right.
func groupDigits(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
