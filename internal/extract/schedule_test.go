package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schedulePage = `
<html><body>
<div class="lifts">
  <p>Gondola Piz Sorega (8-seater)</p>
  <ul><li>9.00 – 16.30</li></ul>

  <p>Chairlift Col Alto</p>
  <ul><li>8:30 - 16:00</li><li>closed on Mondays</li></ul>

  <p>Ski bus Line 1</p>
  <ul><li>7:00 - 20:00</li></ul>

  <p>Funicular Bamby</p>
  <ul><li>all day</li></ul>

  <h3>Cabinovia   Boè</h3>
  <ol><li>8.45—17.15</li></ol>
</div>
</body></html>`

func TestParseSchedule(t *testing.T) {
	sched := ParseSchedule(schedulePage)

	require.Len(t, sched.Lifts, 3)

	sorega := sched.Lifts["PIZ SOREGA"]
	assert.Equal(t, "PIZ SOREGA", sorega.Name)
	assert.Equal(t, "9:00", sorega.Open)
	assert.Equal(t, "16:30", sorega.Close)

	colAlto := sched.Lifts["COL ALTO"]
	assert.Equal(t, "8:30", colAlto.Open)
	assert.Equal(t, "16:00", colAlto.Close)

	boe := sched.Lifts["BOÈ"]
	assert.Equal(t, "8:45", boe.Open)
	assert.Equal(t, "17:15", boe.Close)

	require.NotNil(t, sched.General)
	assert.Equal(t, "8:30", sched.General.Open)
	assert.Equal(t, "17:15", sched.General.Close)
}

func TestParseScheduleSkipsBadBlocksWithoutStopping(t *testing.T) {
	raw := `
<p>Gondola Broken</p><ul><li>whenever</li></ul>
<p>Tourist info</p><ul><li>9:00 - 18:00</li></ul>
<p>Chairlift Works</p><ul><li>10:00 - 15:00</li></ul>`

	sched := ParseSchedule(raw)
	require.Len(t, sched.Lifts, 1)
	assert.Equal(t, "10:00", sched.Lifts["WORKS"].Open)
	require.NotNil(t, sched.General)
	assert.Equal(t, "10:00", sched.General.Open)
	assert.Equal(t, "15:00", sched.General.Close)
}

func TestParseScheduleDefinitionList(t *testing.T) {
	sched := ParseSchedule(`<dl><dt>People-mover Village</dt><dd>8:00-19:00</dd></dl>`)

	entry, ok := sched.Lifts["VILLAGE"]
	require.True(t, ok)
	assert.Equal(t, "8:00", entry.Open)
	assert.Equal(t, "19:00", entry.Close)
}

func TestParseScheduleEmpty(t *testing.T) {
	sched := ParseSchedule("<p>No lifts today</p>")

	assert.Empty(t, sched.Lifts)
	assert.Nil(t, sched.General)
}

func TestCanonicalLiftName(t *testing.T) {
	tests := []struct {
		label  string
		want   string
		wantOK bool
	}{
		{label: "Gondola Piz Sorega", want: "PIZ SOREGA", wantOK: true},
		{label: "CHAIRLIFT  Col   Alto (4-seater) (new)", want: "COL ALTO", wantOK: true},
		{label: "Funifor: Sass Pordoi", want: "SASS PORDOI", wantOK: true},
		{label: "people mover Centro", want: "CENTRO", wantOK: true},
		{label: "Seggiovia Pralongià", want: "PRALONGIÀ", wantOK: true},
		{label: "Gondolas overview", wantOK: false},
		{label: "Gondola", wantOK: false},
		{label: "Ski school", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := CanonicalLiftName(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in        string
		open      int
		close     int
		wantFound bool
	}{
		{in: "9.00 – 16.30", open: 540, close: 990, wantFound: true},
		{in: "08:05-12:00", open: 485, close: 720, wantFound: true},
		{in: "Mon-Fri 9:00 to 17:00", open: 540, close: 1020, wantFound: true},
		{in: "25:00 - 26:00, 9:00 - 10:00", open: 540, close: 600, wantFound: true},
		{in: "(8.30-16.00)", open: 510, close: 960, wantFound: true},
		{in: "123.45 - 16.30", wantFound: false},
		{in: "12.5.30 - 16.30", wantFound: false},
		{in: "closed", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			open, close, ok := ParseTimeRange(tt.in)
			require.Equal(t, tt.wantFound, ok)
			assert.Equal(t, tt.open, open)
			assert.Equal(t, tt.close, close)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "9:00", FormatClock(540))
	assert.Equal(t, "16:30", FormatClock(990))
	assert.Equal(t, "0:05", FormatClock(5))
}
