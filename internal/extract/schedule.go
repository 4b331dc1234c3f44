package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"skisnap/internal/models"
)

// liftPrefixes are the lift types that carry a schedule, longest first.
// The Italian names are what Dolomites schedule pages print.
var liftPrefixes = []string{
	"people-mover",
	"people mover",
	"funicolare",
	"chairlift",
	"cabinovia",
	"seggiovia",
	"funicular",
	"cableway",
	"funifor",
	"funivia",
	"gondola",
}

var (
	timeRange     = regexp.MustCompile(`(?:^|[^\d.,])(\d{1,2})\s*[:.]\s*(\d{1,2})\s*(?:-|–|—|to)\s*(\d{1,2})\s*[:.]\s*(\d{1,2})`)
	trailingParen = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
)

// labelTags open a schedule block; listTags hold its time ranges
var (
	labelTags = map[atom.Atom]bool{
		atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
		atom.H5: true, atom.H6: true, atom.Strong: true, atom.B: true, atom.Dt: true,
	}
	listTags = map[atom.Atom]bool{atom.Ul: true, atom.Ol: true, atom.Dd: true}
)

// ParseSchedule scans a lift-schedule page for "label, then list of time
// ranges" blocks. Blocks whose label is not a scheduled lift type, or whose
// list has no parsable range, are skipped without affecting later blocks.
func ParseSchedule(raw string) models.LiftSchedule {
	sched := models.LiftSchedule{Lifts: make(map[string]models.LiftScheduleEntry)}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return sched
	}

	var label string
	var haveLabel bool
	earliest, latest := -1, -1

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case labelTags[n.DataAtom]:
				label = CollapseSpace(nodeText(n))
				haveLabel = label != ""
				return
			case listTags[n.DataAtom]:
				if haveLabel {
					if entry, open, close, ok := scheduleBlock(label, nodeText(n)); ok {
						if _, dup := sched.Lifts[entry.Name]; !dup {
							sched.Lifts[entry.Name] = entry
						}
						if earliest < 0 || open < earliest {
							earliest = open
						}
						if close > latest {
							latest = close
						}
					}
				}
				haveLabel = false
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if earliest >= 0 {
		sched.General = &models.OperatingHours{
			Open:  FormatClock(earliest),
			Close: FormatClock(latest),
		}
	}
	return sched
}

// scheduleBlock turns one label and its list text into a schedule entry
func scheduleBlock(label, list string) (models.LiftScheduleEntry, int, int, bool) {
	name, ok := CanonicalLiftName(label)
	if !ok {
		return models.LiftScheduleEntry{}, 0, 0, false
	}
	open, close, ok := ParseTimeRange(list)
	if !ok {
		return models.LiftScheduleEntry{}, 0, 0, false
	}
	return models.LiftScheduleEntry{
		Name:  name,
		Open:  FormatClock(open),
		Close: FormatClock(close),
	}, open, close, true
}

// CanonicalLiftName strips a recognised lift-type prefix and any trailing
// parenthetical from a schedule label and upper-cases the rest. ok is false
// when the label does not start with a scheduled lift type.
func CanonicalLiftName(label string) (string, bool) {
	label = CollapseSpace(label)
	for _, prefix := range liftPrefixes {
		if len(label) < len(prefix) || !strings.EqualFold(label[:len(prefix)], prefix) {
			continue
		}
		rest := label[len(prefix):]
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			// "Gondolas" or "Funiforbahn" are not this prefix
			continue
		}
		rest = strings.TrimLeft(rest, " :-–—")
		for trailingParen.MatchString(rest) {
			rest = trailingParen.ReplaceAllString(rest, "")
		}
		name := strings.ToUpper(CollapseSpace(rest))
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}

// ParseTimeRange finds the first "H:MM – H:MM" (or "H.MM") range in s and
// returns both ends as minutes of the day
func ParseTimeRange(s string) (open, close int, ok bool) {
	for _, m := range timeRange.FindAllStringSubmatch(s, -1) {
		o, okOpen := minuteOfDay(m[1], m[2])
		c, okClose := minuteOfDay(m[3], m[4])
		if okOpen && okClose {
			return o, c, true
		}
	}
	return 0, 0, false
}

func minuteOfDay(hour, minute string) (int, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m > 59 || (h == 24 && m > 0) {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders a minute of the day as H:MM
func FormatClock(minute int) string {
	return fmt.Sprintf("%d:%02d", minute/60, minute%60)
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
