package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// Forecast window requested per station
const (
	ForecastPastDays = 3
	ForecastDays     = 7
)

const currentVariables = "temperature_2m,apparent_temperature,snow_depth,weather_code,wind_speed_10m,wind_gusts_10m"

// openMeteoResponse is the subset of the Open-Meteo forecast payload we read.
// Pointers keep "null" apart from zero.
type openMeteoResponse struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		FeelsLike   *float64 `json:"apparent_temperature"`
		SnowDepth   *float64 `json:"snow_depth"` // metres
		WeatherCode *float64 `json:"weather_code"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
		WindGusts   *float64 `json:"wind_gusts_10m"`
	} `json:"current"`
	Daily struct {
		Time        []string   `json:"time"`
		SnowfallSum []*float64 `json:"snowfall_sum"`
	} `json:"daily"`
}

// ForecastFetcher reads per-station weather from an Open-Meteo compatible API
type ForecastFetcher struct {
	fetcher TextFetcher
	baseURL string
}

// NewForecastFetcher creates a forecast fetcher for the given endpoint
func NewForecastFetcher(fetcher TextFetcher, baseURL string) *ForecastFetcher {
	return &ForecastFetcher{
		fetcher: fetcher,
		baseURL: baseURL,
	}
}

// Fetch returns one reading per configured station, top first. A station
// whose request fails is omitted; the call fails only when every station does.
func (f *ForecastFetcher) Fetch(ctx context.Context, resort models.ResortConfig, timezone string) ([]models.StationReading, error) {
	stations := resort.Stations.Ordered()
	if len(stations) == 0 {
		return nil, nil
	}

	var readings []models.StationReading
	var errs []error
	for _, st := range stations {
		reading, err := f.fetchStation(ctx, resort, st, timezone)
		if err != nil {
			logger.Warn("Station forecast unavailable", map[string]interface{}{
				"resort":   resort.ID,
				"position": st.Position,
				"error":    err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		readings = append(readings, reading)
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("forecast for %s: %w", resort.ID, errors.Join(errs...))
	}
	return readings, nil
}

func (f *ForecastFetcher) fetchStation(ctx context.Context, resort models.ResortConfig, st models.Station, timezone string) (models.StationReading, error) {
	body, err := f.fetcher.FetchText(ctx, f.stationURL(resort, st, timezone))
	if err != nil {
		return models.StationReading{}, err
	}
	return ParseForecast(body, st)
}

func (f *ForecastFetcher) stationURL(resort models.ResortConfig, st models.Station, timezone string) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(resort.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(resort.Longitude, 'f', 4, 64))
	q.Set("elevation", strconv.Itoa(st.Elevation))
	q.Set("current", currentVariables)
	q.Set("daily", "snowfall_sum")
	q.Set("past_days", strconv.Itoa(ForecastPastDays))
	q.Set("forecast_days", strconv.Itoa(ForecastDays))
	q.Set("timezone", timezone)
	return f.baseURL + "?" + q.Encode()
}

// ParseForecast decodes one station's forecast payload
func ParseForecast(body string, st models.Station) (models.StationReading, error) {
	var resp openMeteoResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return models.StationReading{}, fmt.Errorf("%w: decode forecast: %w", ErrUnavailable, err)
	}

	reading := models.StationReading{
		Position:    st.Position,
		Elevation:   st.Elevation,
		Temperature: resp.Current.Temperature,
		FeelsLike:   resp.Current.FeelsLike,
		WindSpeed:   resp.Current.WindSpeed,
		WindGusts:   resp.Current.WindGusts,
	}
	if d := resp.Current.SnowDepth; d != nil {
		depth := math.Round(*d*1000) / 10
		reading.SnowDepthCm = &depth
	}
	if c := resp.Current.WeatherCode; c != nil {
		code := int(*c)
		reading.WeatherCode = &code
	}

	for i, date := range resp.Daily.Time {
		day := models.DailySnowfall{Date: date}
		if i < len(resp.Daily.SnowfallSum) {
			day.AmountCm = resp.Daily.SnowfallSum[i]
		}
		reading.Snowfall = append(reading.Snowfall, day)
	}
	return reading, nil
}
