package models

import "time"

// Snapshot is the full output of one pipeline run, handed to the renderer
type Snapshot struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Today       string               `json:"today"`
	Avalanche   *AvalancheAssessment `json:"avalanche,omitempty"`
	Resorts     []ResortView         `json:"resorts"`
}

// ResortView is one resort's reconciled presentation data
type ResortView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Area     string `json:"area,omitempty"`
	Today    string `json:"today"`
	Timezone string `json:"timezone"`

	Stations []StationView    `json:"stations,omitempty"`
	Snowfall *SnowfallSummary `json:"snowfall,omitempty"`

	// SnowfallSeries is the series the summary was computed from, kept for charts.
	SnowfallSeries []DailySnowfall `json:"snowfall_series,omitempty"`

	Lifts           *Occupancy `json:"lifts,omitempty"`
	Pistes          *Occupancy `json:"pistes,omitempty"`
	KmOpen          *int       `json:"km_open,omitempty"`
	BaseDepthCm     *int       `json:"base_depth_cm,omitempty"`
	SummitDepthCm   *int       `json:"summit_depth_cm,omitempty"`
	BaseCondition   string     `json:"base_condition,omitempty"`
	SummitCondition string     `json:"summit_condition,omitempty"`

	LiftList  []LiftView         `json:"lift_list,omitempty"`
	PisteList []PisteStatusEntry `json:"piste_list,omitempty"`
	Hours     *OperatingHours    `json:"hours,omitempty"`

	Avalanche *AvalancheAssessment `json:"avalanche,omitempty"`
	Headlines []Headline           `json:"headlines,omitempty"`

	Sources []StageResult `json:"sources"`
}

// StationView is a station reading prepared for display
type StationView struct {
	StationReading
	Condition string `json:"condition,omitempty"`
	Emoji     string `json:"emoji,omitempty"`
}

// SnowfallSummary holds the three snowfall window sums in cm
type SnowfallSummary struct {
	Station string  `json:"station"`
	Past3   float64 `json:"past_3"`
	Next3   float64 `json:"next_3"`
	Next7   float64 `json:"next_7"`
}

// LiftView is a live-map lift with its matched schedule, if any
type LiftView struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Open      string `json:"open,omitempty"`
	Close     string `json:"close,omitempty"`
	MatchRule string `json:"match_rule,omitempty"`
}

// Pipeline stages of one resort
const (
	StagePending         = "pending"
	StageFetchingWeather = "fetching_weather"
	StageFetchingStatus  = "fetching_status"
	StageFetchingLiveMap = "fetching_live_map"
	StageFetchingSched   = "fetching_schedule"
	StageFetchingNews    = "fetching_news"
	StageAggregating     = "aggregating"
	StageDone            = "done"
)

// Outcomes of a fetch stage
const (
	SourceAvailable   = "available"
	SourceUnavailable = "unavailable"
	SourceSkipped     = "skipped"
)

// StageResult records how one fetch stage ended
type StageResult struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
