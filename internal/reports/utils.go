package reports

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"skisnap/internal/models"
)

// ToTitleCase converts a string to title case (first letter of each word capitalized)
func ToTitleCase(s string) string {
	if s == "" {
		return s
	}

	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// sourceLabel turns a stage name like "fetching_live_map" into "Live Map"
func sourceLabel(stage string) string {
	name := strings.TrimPrefix(stage, "fetching_")
	return ToTitleCase(strings.ReplaceAll(name, "_", " "))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"occupancy": func(o *models.Occupancy) string {
			if o == nil {
				return ""
			}
			return fmt.Sprintf("%d/%d", o.Open, o.Total)
		},
		"integer": func(v *int) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%d", *v)
		},
		"measure": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.1f", *v)
		},
		"decimal": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"day": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"sourceLabel": sourceLabel,
	}
}
