// Package llm writes the markdown conditions digest shown at the top of the
// snapshot page, either through a language model or deterministically.
package llm

import (
	"context"
	"fmt"
	"strings"

	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// DigestWriter produces a markdown digest of a snapshot
type DigestWriter interface {
	GenerateDigest(ctx context.Context, snapshot *models.Snapshot) (string, error)
}

// Digester prefers its writer and falls back to the built-in digest when
// there is no writer or it fails.
type Digester struct {
	writer DigestWriter
}

// NewDigester creates a digester; writer may be nil
func NewDigester(writer DigestWriter) *Digester {
	return &Digester{writer: writer}
}

// Digest never fails; a cancelled context also yields the fallback
func (d *Digester) Digest(ctx context.Context, snapshot *models.Snapshot) string {
	if d.writer != nil {
		digest, err := d.writer.GenerateDigest(ctx, snapshot)
		if err == nil && strings.TrimSpace(digest) != "" {
			return digest
		}
		fields := map[string]interface{}{}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.Warn("Digest writer failed, using built-in digest", fields)
	}
	return FallbackDigest(snapshot)
}

// FallbackDigest renders the facts of the snapshot as markdown. Unknown
// values are left out rather than shown as zero.
func FallbackDigest(snapshot *models.Snapshot) string {
	if snapshot == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Conditions for %s\n\n", snapshot.Today)
	if a := snapshot.Avalanche; a != nil {
		fmt.Fprintf(&b, "Regional avalanche danger: %s %d %s.\n\n", a.Emoji, a.Level, a.Label)
	}

	for _, v := range snapshot.Resorts {
		fmt.Fprintf(&b, "### %s\n\n", v.Name)
		lines := resortLines(v)
		if len(lines) == 0 {
			b.WriteString("No data available.\n\n")
			continue
		}
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func resortLines(v models.ResortView) []string {
	var lines []string
	if v.Lifts != nil {
		lines = append(lines, fmt.Sprintf("Lifts open: %d/%d", v.Lifts.Open, v.Lifts.Total))
	}
	if v.Pistes != nil {
		lines = append(lines, fmt.Sprintf("Pistes open: %d/%d", v.Pistes.Open, v.Pistes.Total))
	}
	if v.KmOpen != nil {
		lines = append(lines, fmt.Sprintf("Slopes open: %d km", *v.KmOpen))
	}
	if depth := snowDepth(v); depth != "" {
		lines = append(lines, depth)
	}
	if s := v.Snowfall; s != nil {
		lines = append(lines, fmt.Sprintf("Snowfall (%s station): %.1f cm past 3 days, %.1f cm next 3 days, %.1f cm next 7 days",
			s.Station, s.Past3, s.Next3, s.Next7))
	}
	if v.Hours != nil {
		lines = append(lines, fmt.Sprintf("Lifts run %s to %s", v.Hours.Open, v.Hours.Close))
	}
	if a := v.Avalanche; a != nil {
		lines = append(lines, fmt.Sprintf("Avalanche danger: %s %d %s", a.Emoji, a.Level, a.Label))
	}
	if len(v.Headlines) > 0 {
		lines = append(lines, "Latest news: "+v.Headlines[0].Title)
	}
	return lines
}

func snowDepth(v models.ResortView) string {
	var parts []string
	if v.BaseDepthCm != nil {
		parts = append(parts, withCondition(fmt.Sprintf("%d cm at the base", *v.BaseDepthCm), v.BaseCondition))
	}
	if v.SummitDepthCm != nil {
		parts = append(parts, withCondition(fmt.Sprintf("%d cm at the summit", *v.SummitDepthCm), v.SummitCondition))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Snow depth: " + strings.Join(parts, ", ")
}

func withCondition(s, condition string) string {
	if condition == "" {
		return s
	}
	return fmt.Sprintf("%s (%s)", s, condition)
}
