// Package ical writes RFC 5545 calendar files for community events.
package ical

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	prodID = "-//Diaspora Hub//Events//EN"
	// DefaultDuration applies when an event has no end
	DefaultDuration = 2 * time.Hour

	utcLayout  = "20060102T150405Z"
	maxOctets  = 75
	lineEnding = "\r\n"
)

var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStart reads an event timestamp. Values without an offset are
// interpreted in loc.
func ParseStart(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for i, layout := range startLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, loc)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Event is one VEVENT
type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	// End defaults to Start plus DefaultDuration when zero
	End time.Time
	// Stamp defaults to the time of marshalling when zero
	Stamp time.Time
}

// Marshal renders a VCALENDAR holding the given events
func Marshal(events ...Event) []byte {
	var buf bytes.Buffer
	w := func(line string) { writeFolded(&buf, line) }

	w("BEGIN:VCALENDAR")
	w("VERSION:2.0")
	w("PRODID:" + prodID)
	w("CALSCALE:GREGORIAN")
	w("METHOD:PUBLISH")

	now := time.Now()
	for _, e := range events {
		end := e.End
		if end.IsZero() {
			end = e.Start.Add(DefaultDuration)
		}
		stamp := e.Stamp
		if stamp.IsZero() {
			stamp = now
		}

		w("BEGIN:VEVENT")
		w("UID:" + escapeText(e.UID))
		w("DTSTAMP:" + formatUTC(stamp))
		w("DTSTART:" + formatUTC(e.Start))
		w("DTEND:" + formatUTC(end))
		w("SUMMARY:" + escapeText(e.Title))
		if e.Description != "" {
			w("DESCRIPTION:" + escapeText(e.Description))
		}
		if e.Location != "" {
			w("LOCATION:" + escapeText(e.Location))
		}
		w("END:VEVENT")
	}

	w("END:VCALENDAR")
	return buf.Bytes()
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(utcLayout)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD"))
}

// writeFolded splits lines longer than 75 octets without breaking a UTF-8
// sequence; continuation lines start with a single space
func writeFolded(buf *bytes.Buffer, line string) {
	limit := maxOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		buf.WriteString(line[:cut])
		buf.WriteString(lineEnding)
		buf.WriteByte(' ')
		line = line[cut:]
		limit = maxOctets - 1
	}
	buf.WriteString(line)
	buf.WriteString(lineEnding)
}

// Filename turns an event title into "<slug>.ics"
func Filename(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "event"
	}
	return slug + ".ics"
}
