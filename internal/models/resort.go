package models

// Station positions a resort may report weather for
const (
	PositionTop    = "top"
	PositionMid    = "mid"
	PositionBottom = "bottom"
)

// StationElevations maps the logical station positions to elevations in metres.
// A nil position is not measured.
type StationElevations struct {
	Top    *int `yaml:"top,omitempty" json:"top,omitempty"`
	Mid    *int `yaml:"mid,omitempty" json:"mid,omitempty"`
	Bottom *int `yaml:"bottom,omitempty" json:"bottom,omitempty"`
}

// Station is one configured elevation point
type Station struct {
	Position  string
	Elevation int
}

// Ordered returns the configured stations from top to bottom, skipping absent ones.
func (s StationElevations) Ordered() []Station {
	var out []Station
	if s.Top != nil {
		out = append(out, Station{Position: PositionTop, Elevation: *s.Top})
	}
	if s.Mid != nil {
		out = append(out, Station{Position: PositionMid, Elevation: *s.Mid})
	}
	if s.Bottom != nil {
		out = append(out, Station{Position: PositionBottom, Elevation: *s.Bottom})
	}
	return out
}

// ResortConfig describes one resort and where its data lives
type ResortConfig struct {
	ID        string            `yaml:"id" json:"id"`
	Name      string            `yaml:"name" json:"name"`
	Area      string            `yaml:"area,omitempty" json:"area,omitempty"`
	Latitude  float64           `yaml:"latitude" json:"latitude"`
	Longitude float64           `yaml:"longitude" json:"longitude"`
	Timezone  string            `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	Stations  StationElevations `yaml:"stations" json:"stations"`

	StatusURL   string `yaml:"status_url,omitempty" json:"status_url,omitempty"`
	ScheduleURL string `yaml:"schedule_url,omitempty" json:"schedule_url,omitempty"`
	LiveMapURL  string `yaml:"live_map_url,omitempty" json:"live_map_url,omitempty"`
	NewsURL     string `yaml:"news_url,omitempty" json:"news_url,omitempty"`

	// AvalancheRegions holds bulletin region ID prefixes, e.g. "IT-32-BZ".
	// Empty means the resort uses the whole bulletin.
	AvalancheRegions []string `yaml:"avalanche_regions,omitempty" json:"avalanche_regions,omitempty"`
}
