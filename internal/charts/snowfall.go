package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"skisnap/internal/models"
)

// GenerateSnowfallSnippet builds the daily snowfall bar chart of one resort.
// Days before the resort's today are drawn grey, today and later in blue.
func (cg *ChartGenerator) GenerateSnowfallSnippet(view models.ResortView) (ChartSnippet, error) {
	if len(view.SnowfallSeries) == 0 {
		return ChartSnippet{}, ErrNoChartData
	}

	id := snippetID("chart-snowfall", view.ID)
	subtitle := ""
	if view.Snowfall != nil {
		subtitle = fmt.Sprintf("%s station", view.Snowfall.Station)
	}

	days := make([]string, 0, len(view.SnowfallSeries))
	values := make([]opts.BarData, 0, len(view.SnowfallSeries))
	for _, d := range view.SnowfallSeries {
		amount := 0.0
		if d.AmountCm != nil {
			amount = *d.AmountCm
		}
		color := cg.futureColor
		if d.Date < view.Today {
			color = cg.pastColor
		}
		days = append(days, d.Date)
		values = append(values, opts.BarData{
			Name:      d.Date,
			Value:     amount,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   "100%",
			Height:  "260px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily snowfall",
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "cm",
		}),
	)
	bar.SetXAxis(days).AddSeries("Snowfall", values)
	bar.Validate()

	return newSnippet(id, view.Name+" snowfall", "260px", string(bar.JSONNotEscaped())), nil
}
