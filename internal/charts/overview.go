package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"skisnap/internal/models"
)

// OverviewFile is the published name of the overview image
const OverviewFile = "snowfall_overview.png"

// GenerateOverviewPNG renders the next-7-days snowfall of every resort that
// has a snowfall summary as a bar chart.
func (cg *ChartGenerator) GenerateOverviewPNG(snapshot *models.Snapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, ErrNoChartData
	}

	var bars []chart.Value
	peak := 0.0
	for _, v := range snapshot.Resorts {
		if v.Snowfall == nil {
			continue
		}
		bars = append(bars, chart.Value{
			Label: v.Name,
			Value: v.Snowfall.Next7,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(cg.futureColor[1:]),
				StrokeColor: drawing.ColorFromHex(cg.futureColor[1:]),
				StrokeWidth: 1,
			},
		})
		if v.Snowfall.Next7 > peak {
			peak = v.Snowfall.Next7
		}
	}
	if len(bars) == 0 {
		return nil, ErrNoChartData
	}

	// all-zero series collapse the value range
	top := 10.0
	if peak > top {
		top = peak * 1.1
	}

	graph := chart.BarChart{
		Title: "Snowfall next 7 days (cm)",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Height:   360,
		Width:    160*len(bars) + 200,
		BarWidth: 60,
		Bars:     bars,
		XAxis: chart.Style{
			FontSize: 10,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render snowfall overview: %w", err)
	}
	return buf.Bytes(), nil
}
