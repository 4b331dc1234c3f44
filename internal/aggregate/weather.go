package aggregate

type weatherCondition struct {
	label string
	emoji string
}

// wmoConditions covers the WMO 4677 subset forecast providers emit
var wmoConditions = map[int]weatherCondition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	56: {"Freezing drizzle", "🌧️"},
	57: {"Dense freezing drizzle", "🌧️"},
	61: {"Light rain", "🌦️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Light snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "🌨️"},
	80: {"Light showers", "🌦️"},
	81: {"Showers", "🌧️"},
	82: {"Violent showers", "⛈️"},
	85: {"Snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// WeatherCondition returns the label and emoji for a WMO weather code.
// Unknown or missing codes return empty strings.
func WeatherCondition(code *int) (label, emoji string) {
	if code == nil {
		return "", ""
	}
	c, ok := wmoConditions[*code]
	if !ok {
		return "", ""
	}
	return c.label, c.emoji
}
