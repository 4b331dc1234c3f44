package models

import "time"

// DailySnowfall is one point of a daily snowfall series.
// Date uses the YYYY-MM-DD layout in the resort's local calendar.
type DailySnowfall struct {
	Date     string   `json:"date"`
	AmountCm *float64 `json:"amount_cm,omitempty"`
}

// StationReading holds the forecast provider's data for one elevation station
type StationReading struct {
	Position    string          `json:"position"`
	Elevation   int             `json:"elevation"`
	Temperature *float64        `json:"temperature,omitempty"` // °C
	FeelsLike   *float64        `json:"feels_like,omitempty"`  // °C
	SnowDepthCm *float64        `json:"snow_depth_cm,omitempty"`
	WeatherCode *int            `json:"weather_code,omitempty"` // WMO code
	WindSpeed   *float64        `json:"wind_speed,omitempty"`   // km/h
	WindGusts   *float64        `json:"wind_gusts,omitempty"`   // km/h
	Snowfall    []DailySnowfall `json:"snowfall,omitempty"`
}

// Lift and piste states reported by the live map
const (
	StatusOpen       = "open"
	StatusClosed     = "closed"
	StatusEvaluating = "evaluating"
)

// LiftStatusEntry is a lift as named by the live map
type LiftStatusEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// PisteStatusEntry is a piste as named by the live map
type PisteStatusEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// LiveMap is the live-map overlay for one resort
type LiveMap struct {
	Lifts  []LiftStatusEntry  `json:"lifts"`
	Pistes []PisteStatusEntry `json:"pistes"`
}

// Occupancy is an "open out of total" counter
type Occupancy struct {
	Open  int `json:"open"`
	Total int `json:"total"`
}

// ResortStatus holds the facts extracted from the resort status page
type ResortStatus struct {
	Lifts           *Occupancy `json:"lifts,omitempty"`
	Runs            *Occupancy `json:"runs,omitempty"`
	KmOpen          *int       `json:"km_open,omitempty"`
	BaseDepthCm     *int       `json:"base_depth_cm,omitempty"`
	SummitDepthCm   *int       `json:"summit_depth_cm,omitempty"`
	BaseCondition   string     `json:"base_condition,omitempty"`
	SummitCondition string     `json:"summit_condition,omitempty"`
}

// LiftScheduleEntry is one lift's scheduled daily operating hours
type LiftScheduleEntry struct {
	Name  string `json:"name"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OperatingHours is the resort-wide earliest opening and latest closing
type OperatingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// LiftSchedule is the parsed schedule page
type LiftSchedule struct {
	Lifts   map[string]LiftScheduleEntry `json:"lifts"`
	General *OperatingHours              `json:"general,omitempty"`
}

// Headline is one item of a resort news feed
type Headline struct {
	Title     string     `json:"title"`
	Link      string     `json:"link,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

// AvalancheBulletin is one sub-region bulletin reduced to what aggregation needs
type AvalancheBulletin struct {
	Regions    []string  `json:"regions"`
	Ratings    []string  `json:"ratings"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	Source     string    `json:"source,omitempty"`
}

// AvalancheAssessment is the aggregated regional danger
type AvalancheAssessment struct {
	Level      int        `json:"level"`
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	Emoji      string     `json:"emoji"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Source     string     `json:"source,omitempty"`
}
