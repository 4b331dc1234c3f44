// Package aggregate turns per-source partial records into display-ready values.
package aggregate

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"skisnap/internal/models"
)

// DateLayout is the calendar-date format shared by series and "today"
const DateLayout = "2006-01-02"

// Snowfall sums a daily series into three windows relative to today:
// every date before today, today plus the next two days, and today plus the
// next six days. Missing amounts count as zero. The series is used in the
// order given; duplicate dates are summed twice.
func Snowfall(series []models.DailySnowfall, today string) models.SnowfallSummary {
	var past, next3, next7 []float64

	end3, end7 := today, today
	if t, err := time.Parse(DateLayout, today); err == nil {
		end3 = t.AddDate(0, 0, 2).Format(DateLayout)
		end7 = t.AddDate(0, 0, 6).Format(DateLayout)
	}

	for _, day := range series {
		amount := 0.0
		if day.AmountCm != nil {
			amount = *day.AmountCm
		}
		switch {
		case day.Date < today:
			past = append(past, amount)
		case day.Date <= end3:
			next3 = append(next3, amount)
			next7 = append(next7, amount)
		case day.Date <= end7:
			next7 = append(next7, amount)
		}
	}

	return models.SnowfallSummary{
		Past3: sum(past),
		Next3: sum(next3),
		Next7: sum(next7),
	}
}

func sum(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Sum(xs)
}

// Today returns the calendar date of now in loc
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}
