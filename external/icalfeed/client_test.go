package icalfeed

import (
	"testing"
	"time"
)

const sampleCalendar = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//clubraces//race calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:race-2026-02-07@waratahmasters.com.au\r\n" +
	"SUMMARY:Criterium Round 1\r\n" +
	"LOCATION:Lansdowne Park\\, Georges Hall\r\n" +
	"DTSTART;VALUE=DATE:20260207\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:race-2026-02-14@waratahmasters.com.au\r\n" +
	"SUMMARY:Criterium Round 2 with a very long title that the\r\n" +
	" \r\n" +
	"DTSTART:20260214T090000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseCalendar(t *testing.T) {
	t.Parallel()

	events, err := ParseCalendar([]byte(sampleCalendar))
	if err != nil {
		t.Fatalf("parse calendar: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.UID != "race-2026-02-07@waratahmasters.com.au" {
		t.Fatalf("unexpected UID: %q", first.UID)
	}
	if first.Title != "Criterium Round 1" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Location != "Lansdowne Park, Georges Hall" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
	want := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Fatalf("unexpected date: %s", first.Date)
	}

	second := events[1]
	wantSecond := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	if !second.Date.Equal(wantSecond) {
		t.Fatalf("unexpected second date: %s", second.Date)
	}
}

func TestParseCalendar_FoldedLine(t *testing.T) {
	t.Parallel()

	data := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:folded@example.com\r\n" +
		"SUMMARY:Hill Climb Champion\r\n" +
		" ships\r\n" +
		"DTSTART;VALUE=DATE:20260301\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events, err := ParseCalendar([]byte(data))
	if err != nil {
		t.Fatalf("parse calendar: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Hill Climb Championships" {
		t.Fatalf("unexpected title: %q", events[0].Title)
	}
}

func TestParseCalendar_SkipsEventsWithoutDateOrTitle(t *testing.T) {
	t.Parallel()

	data := "BEGIN:VCALENDAR\n" +
		"BEGIN:VEVENT\n" +
		"UID:no-date@example.com\n" +
		"SUMMARY:No Date\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" +
		"UID:no-title@example.com\n" +
		"DTSTART;VALUE=DATE:20260301\n" +
		"END:VEVENT\n" +
		"END:VCALENDAR\n"

	events, err := ParseCalendar([]byte(data))
	if err != nil {
		t.Fatalf("parse calendar: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected 0 events, got %d", len(events))
	}
}

func TestParseCalendar_Empty(t *testing.T) {
	t.Parallel()

	if _, err := ParseCalendar(nil); err == nil {
		t.Fatalf("expected error for empty calendar data")
	}
}

func TestParseICalDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		params map[string]string
		want   time.Time
	}{
		{name: "date only", value: "20260207", params: map[string]string{"VALUE": "DATE"}, want: time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		{name: "utc datetime", value: "20260214T090000Z", want: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)},
		{name: "floating datetime", value: "20260214T090000", want: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseICalDate(tt.value, tt.params)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %s want %s", got, tt.want)
			}
		})
	}
}
