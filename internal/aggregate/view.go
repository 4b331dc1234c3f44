package aggregate

import (
	"skisnap/internal/matcher"
	"skisnap/internal/models"
)

// Partials is everything the fetch stages gathered for one resort. A nil
// field means the source was unavailable or not configured.
type Partials struct {
	Resort   models.ResortConfig
	Today    string
	Timezone string

	Stations  []models.StationReading
	Status    *models.ResortStatus
	LiveMap   *models.LiveMap
	Schedule  *models.LiftSchedule
	Headlines []models.Headline
	Avalanche *models.AvalancheAssessment

	Sources []models.StageResult
}

// BuildView reconciles a resort's partial records into its view. The view
// shares no slices with p.
func BuildView(p Partials) models.ResortView {
	v := models.ResortView{
		ID:       p.Resort.ID,
		Name:     p.Resort.Name,
		Area:     p.Resort.Area,
		Today:    p.Today,
		Timezone: p.Timezone,
		Sources:  append([]models.StageResult(nil), p.Sources...),
	}

	for _, st := range p.Stations {
		label, emoji := WeatherCondition(st.WeatherCode)
		reading := st
		reading.Snowfall = append([]models.DailySnowfall(nil), st.Snowfall...)
		v.Stations = append(v.Stations, models.StationView{
			StationReading: reading,
			Condition:      label,
			Emoji:          emoji,
		})
	}

	if st, ok := snowfallStation(p.Stations); ok {
		summary := Snowfall(st.Snowfall, p.Today)
		summary.Station = st.Position
		v.Snowfall = &summary
		v.SnowfallSeries = append([]models.DailySnowfall(nil), st.Snowfall...)
	}

	if s := p.Status; s != nil {
		v.Lifts = copyOccupancy(s.Lifts)
		v.Pistes = copyOccupancy(s.Runs)
		v.KmOpen = copyInt(s.KmOpen)
		v.BaseDepthCm = copyInt(s.BaseDepthCm)
		v.SummitDepthCm = copyInt(s.SummitDepthCm)
		v.BaseCondition = s.BaseCondition
		v.SummitCondition = s.SummitCondition
	}

	var schedule map[string]models.LiftScheduleEntry
	if p.Schedule != nil {
		schedule = p.Schedule.Lifts
		if p.Schedule.General != nil {
			hours := *p.Schedule.General
			v.Hours = &hours
		}
	}

	if m := p.LiveMap; m != nil {
		for _, lift := range m.Lifts {
			lv := models.LiftView{Name: lift.Name, Status: lift.Status}
			if res := matcher.Match(lift.Name, schedule); res.Found() {
				lv.Open = res.Entry.Open
				lv.Close = res.Entry.Close
				lv.MatchRule = string(res.Rule)
			}
			v.LiftList = append(v.LiftList, lv)
		}
		v.PisteList = append([]models.PisteStatusEntry(nil), m.Pistes...)

		if v.Lifts == nil && len(m.Lifts) > 0 {
			v.Lifts = countLifts(m.Lifts)
		}
		if v.Pistes == nil && len(m.Pistes) > 0 {
			v.Pistes = countPistes(m.Pistes)
		}
	}

	if p.Avalanche != nil {
		a := *p.Avalanche
		v.Avalanche = &a
	}
	v.Headlines = append([]models.Headline(nil), p.Headlines...)

	return v
}

// snowfallStation picks the highest station that has a snowfall series
func snowfallStation(stations []models.StationReading) (models.StationReading, bool) {
	for _, pos := range []string{models.PositionTop, models.PositionMid, models.PositionBottom} {
		for _, st := range stations {
			if st.Position == pos && len(st.Snowfall) > 0 {
				return st, true
			}
		}
	}
	return models.StationReading{}, false
}

func countLifts(lifts []models.LiftStatusEntry) *models.Occupancy {
	o := &models.Occupancy{Total: len(lifts)}
	for _, l := range lifts {
		if l.Status == models.StatusOpen {
			o.Open++
		}
	}
	return o
}

func countPistes(pistes []models.PisteStatusEntry) *models.Occupancy {
	o := &models.Occupancy{Total: len(pistes)}
	for _, p := range pistes {
		if p.Status == models.StatusOpen {
			o.Open++
		}
	}
	return o
}

func copyOccupancy(o *models.Occupancy) *models.Occupancy {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
