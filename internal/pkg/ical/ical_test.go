package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetupExportInUTC(t *testing.T) {
	start, err := ParseStart("2026-01-15T18:00:00", time.UTC)
	require.NoError(t, err)

	out := string(Marshal(Event{UID: "evt-1", Title: "Meetup", Start: start}))

	assert.Contains(t, out, "SUMMARY:Meetup\r\n")
	assert.Contains(t, out, "DTSTART:20260115T180000Z\r\n")
	assert.Contains(t, out, "DTEND:20260115T200000Z\r\n")
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
}

func TestParseStartLayouts(t *testing.T) {
	accra := time.FixedZone("GMT+1", 3600)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-15T18:00:00Z", time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)},
		{"2026-01-15T18:00:00+02:00", time.Date(2026, 1, 15, 16, 0, 0, 0, time.UTC)},
		{"2026-01-15T18:00:00", time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)},
		{"2026-01-15T18:00", time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)},
		{"2026-01-15", time.Date(2026, 1, 14, 23, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseStart(tc.in, accra)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}

	_, err := ParseStart("next tuesday", accra)
	assert.Error(t, err)
}

func TestMarshalEscapesText(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := string(Marshal(Event{
		UID:         "evt-2",
		Title:       "Food, drinks; music",
		Description: "Line one\nLine two \\ end",
		Start:       start,
		Stamp:       start,
	}))

	assert.Contains(t, out, `SUMMARY:Food\, drinks\; music`)
	assert.Contains(t, out, `DESCRIPTION:Line one\nLine two \\ end`)
	assert.Contains(t, out, "DTSTAMP:20260301T100000Z")
}

func TestMarshalFoldsLongLines(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	long := strings.Repeat("Akwaaba é ", 30)

	out := string(Marshal(Event{UID: "evt-3", Title: "x", Description: long, Start: start}))

	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75, line)
	}

	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	assert.Contains(t, unfolded, "DESCRIPTION:"+long)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "osu-night-market.ics", Filename("Osu Night Market!"))
	assert.Equal(t, "event.ics", Filename("!!!"))
}

func TestMarshalReplacesInvalidUTF8(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	out := Marshal(Event{UID: "evt-4", Title: strings.Repeat("\x80", 200), Start: start})

	assert.True(t, utf8.Valid(out))
	for _, line := range strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
	}
	assert.Contains(t, string(out), "SUMMARY:\uFFFD\r\n")
}

func TestWriteFoldedCutsRunsOfContinuationBytes(t *testing.T) {
	var buf bytes.Buffer
	writeFolded(&buf, "X-RAW:"+strings.Repeat("\x80", 200))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75)
		assert.NotEqual(t, " ", line)
	}
}
