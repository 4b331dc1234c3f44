// Package matcher reconciles lift names between the live-status source and
// the schedule source, which spell the same lift differently.
package matcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"skisnap/internal/models"
)

// Rule names the heuristic that produced a match
type Rule string

const (
	RuleNone     Rule = "none"
	RuleExact    Rule = "exact"
	RuleContains Rule = "contains"
	RuleTokens   Rule = "tokens"
)

// minTokenOverlap is the smallest shared-token count accepted as a match
const minTokenOverlap = 2

// Result is the outcome of a match. A zero Result is a no-match.
type Result struct {
	Entry models.LiftScheduleEntry
	Rule  Rule
}

// Found reports whether a schedule entry was matched
func (r Result) Found() bool {
	return r.Rule != "" && r.Rule != RuleNone
}

var noMatch = Result{Rule: RuleNone}

// Match finds the schedule entry for a live-status lift name. Rules are tried
// in order and the first hit wins:
//
//  1. exact match after case folding and whitespace collapsing
//  2. containment in either direction
//  3. the single entry sharing the most tokens (at least two)
//
// Ties in token overlap are reported as no match.
func Match(statusName string, schedule map[string]models.LiftScheduleEntry) Result {
	name := normalize(statusName)
	if name == "" || len(schedule) == 0 {
		return noMatch
	}

	keys := make([]string, 0, len(schedule))
	for k := range schedule {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	normalized := make([]string, len(keys))
	for i, k := range keys {
		normalized[i] = normalize(k)
		if normalized[i] == name {
			return Result{Entry: schedule[k], Rule: RuleExact}
		}
	}

	for i, k := range keys {
		key := normalized[i]
		if key == "" {
			continue
		}
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return Result{Entry: schedule[k], Rule: RuleContains}
		}
	}

	statusTokens := tokens(name)
	if len(statusTokens) < minTokenOverlap {
		return noMatch
	}

	best, bestKey, tied := 0, "", false
	for i, k := range keys {
		n := overlap(statusTokens, tokens(normalized[i]))
		switch {
		case n > best:
			best, bestKey, tied = n, k, false
		case n == best && n > 0:
			tied = true
		}
	}
	if best < minTokenOverlap || tied {
		return noMatch
	}
	return Result{Entry: schedule[bestKey], Rule: RuleTokens}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// tokens splits on whitespace and hyphens, keeping tokens longer than two runes
func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	}) {
		if utf8.RuneCountInString(f) > 2 {
			out[f] = struct{}{}
		}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
