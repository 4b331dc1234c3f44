// Package extract pulls typed facts out of scraped third-party markup.
//
// Every source quirk lives in the pattern table below, so a layout change on
// a resort page means editing one regular expression, not the pipeline.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"skisnap/internal/models"
)

// Pattern is a named case-insensitive expression applied to normalized text
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

func newPattern(name, expr string) Pattern {
	return Pattern{Name: name, re: regexp.MustCompile(`(?i)` + expr)}
}

// conditionLabels is the fixed surface-condition vocabulary.
// Multi-word labels come before their suffixes so "Packed Powder" wins over "Powder".
var conditionLabels = []string{
	"Machine Groomed",
	"Packed Powder",
	"Spring Conditions",
	"Frozen Granular",
	"Hard Pack",
	"Powder",
	"Icy",
	"Variable",
}

func conditionAlternation() string {
	quoted := make([]string, len(conditionLabels))
	for i, l := range conditionLabels {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(l), " ", `\s+`)
	}
	return "(" + strings.Join(quoted, "|") + ")"
}

// Status page patterns
var (
	LiftsOpen       = newPattern("lifts_open", `\blifts\s+open\s+(\d+)\s*/\s*(\d+)`)
	RunsOpen        = newPattern("runs_open", `\bruns\s+open\s+(\d+)\s*/\s*(\d+)`)
	KmOpen          = newPattern("km_open", `(?:^|[^\d.,])(\d+)\s*km\s+open\b`)
	BaseDepth       = newPattern("base_depth", `\bbase\s+(\d+)\s*cm\b`)
	SummitDepth     = newPattern("summit_depth", `\bsummit\s+(\d+)\s*cm\b`)
	BaseCondition   = newPattern("base_condition", `\bbase\s+\d+\s*cm\s+`+conditionAlternation()+`\b`)
	SummitCondition = newPattern("summit_condition", `\bsummit\s+\d+\s*cm\s+`+conditionAlternation()+`\b`)
)

var whitespace = regexp.MustCompile(`\s+`)

// CollapseSpace trims s and folds every whitespace run into one space
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Text reduces markup to its visible text: tags removed, script and style
// bodies dropped, entities decoded, whitespace collapsed. Plain text passes
// through unchanged apart from whitespace folding.
func Text(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return CollapseSpace(b.String())
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			}
			// Tags separate words even when the markup has no whitespace.
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Extract runs a pattern over raw markup and returns the capture groups of
// the first match. ok is false when the pattern does not occur.
func Extract(raw string, p Pattern) ([]string, bool) {
	return match(Text(raw), p)
}

func match(text string, p Pattern) ([]string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// ParseStatusPage extracts every status-page fact it can find. A missing
// fact leaves its field nil; it never prevents the others from parsing.
func ParseStatusPage(raw string) models.ResortStatus {
	text := Text(raw)
	var st models.ResortStatus

	st.Lifts = occupancy(text, LiftsOpen)
	st.Runs = occupancy(text, RunsOpen)
	st.KmOpen = integer(text, KmOpen)
	st.BaseDepthCm = integer(text, BaseDepth)
	st.SummitDepthCm = integer(text, SummitDepth)
	st.BaseCondition = condition(text, BaseCondition)
	st.SummitCondition = condition(text, SummitCondition)

	return st
}

func occupancy(text string, p Pattern) *models.Occupancy {
	caps, ok := match(text, p)
	if !ok {
		return nil
	}
	open, err1 := strconv.Atoi(caps[0])
	total, err2 := strconv.Atoi(caps[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	return &models.Occupancy{Open: open, Total: total}
}

func integer(text string, p Pattern) *int {
	caps, ok := match(text, p)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(caps[0])
	if err != nil {
		return nil
	}
	return &n
}

// condition returns the vocabulary label in its canonical casing
func condition(text string, p Pattern) string {
	caps, ok := match(text, p)
	if !ok {
		return ""
	}
	found := CollapseSpace(caps[0])
	for _, label := range conditionLabels {
		if strings.EqualFold(label, found) {
			return label
		}
	}
	return ""
}
