package aggregate

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"skisnap/internal/models"
)

// DangerLevel describes one step of the European avalanche danger scale
type DangerLevel struct {
	Level int
	Label string
	Color string
	Emoji string
}

var dangerLevels = []DangerLevel{
	{Level: 1, Label: "Low", Color: "#ccff66", Emoji: "🟢"},
	{Level: 2, Label: "Moderate", Color: "#ffff00", Emoji: "🟡"},
	{Level: 3, Label: "Considerable", Color: "#ff9900", Emoji: "🟠"},
	{Level: 4, Label: "High", Color: "#ff0000", Emoji: "🔴"},
	{Level: 5, Label: "Very High", Color: "#600000", Emoji: "⚫"},
}

var dangerCategories = map[string]int{
	"low":          1,
	"moderate":     2,
	"considerable": 3,
	"high":         4,
	"very_high":    5,
}

// LevelFor maps a bulletin rating category to its level. Categories outside
// the scale, such as "no_snow" or "no_rating", report false.
func LevelFor(category string) (int, bool) {
	l, ok := dangerCategories[strings.ToLower(strings.TrimSpace(category))]
	return l, ok
}

// Danger returns the fixed description of a level, clamped to 1..5
func Danger(level int) DangerLevel {
	if level < 1 {
		level = 1
	}
	if level > len(dangerLevels) {
		level = len(dangerLevels)
	}
	return dangerLevels[level-1]
}

// Avalanche reduces bulletins to the highest danger level among them. When
// regions is non-empty only bulletins covering a region with one of those ID
// prefixes contribute. No contributing rating yields level 1.
func Avalanche(bulletins []models.AvalancheBulletin, regions []string) models.AvalancheAssessment {
	var levels []float64
	var from, until time.Time
	var source string

	for _, b := range bulletins {
		if !coversAny(b.Regions, regions) {
			continue
		}
		for _, r := range b.Ratings {
			if l, ok := LevelFor(r); ok {
				levels = append(levels, float64(l))
			}
		}
		if !b.ValidFrom.IsZero() && (from.IsZero() || b.ValidFrom.Before(from)) {
			from = b.ValidFrom
		}
		if b.ValidUntil.After(until) {
			until = b.ValidUntil
		}
		if source == "" {
			source = b.Source
		}
	}

	level := 1
	if len(levels) > 0 {
		level = int(floats.Max(levels))
	}
	d := Danger(level)

	a := models.AvalancheAssessment{
		Level:  d.Level,
		Label:  d.Label,
		Color:  d.Color,
		Emoji:  d.Emoji,
		Source: source,
	}
	if !from.IsZero() {
		a.ValidFrom = &from
	}
	if !until.IsZero() {
		a.ValidUntil = &until
	}
	return a
}

func coversAny(bulletinRegions, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, r := range bulletinRegions {
		for _, p := range prefixes {
			if strings.HasPrefix(strings.ToUpper(r), strings.ToUpper(p)) {
				return true
			}
		}
	}
	return false
}
