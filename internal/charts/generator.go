// Package charts renders snowfall charts for the snapshot page: one
// interactive ECharts snippet per resort and a static overview image.
package charts

import (
	"errors"
	"strings"
)

// ErrNoChartData is returned when there is nothing to plot
var ErrNoChartData = errors.New("no chart data")

// ChartGenerator handles creation of chart snippets and images
type ChartGenerator struct {
	pastColor   string
	futureColor string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		pastColor:   "#9aa5b1",
		futureColor: "#3b82c4",
	}
}

// snippetID builds a DOM id that is safe for getElementById and CSS
func snippetID(prefix, resortID string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	for _, r := range strings.ToLower(resortID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
