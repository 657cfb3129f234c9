package rider

import (
	"testing"
	"time"
)

func TestClassification(t *testing.T) {
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		gender string
		dob    time.Time
		want   string
	}{
		{name: "kid", gender: "M", dob: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), want: "Kidz"},
		{name: "under 13", gender: "M", dob: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), want: "U13 M"},
		{name: "under 17 female", gender: "F", dob: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), want: "U17 W"},
		{name: "under 23", gender: "M", dob: time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), want: "U23 M"},
		{name: "elite", gender: "M", dob: time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC), want: "Elite M"},
		{name: "masters one", gender: "M", dob: time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC), want: "M1"},
		{name: "masters three", gender: "F", dob: time.Date(1982, 1, 1, 0, 0, 0, 0, time.UTC), want: "W3"},
		{name: "masters band capped", gender: "M", dob: time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC), want: "M10"},
		{name: "birthday not yet reached", gender: "M", dob: time.Date(1996, 7, 1, 0, 0, 0, 0, time.UTC), want: "Elite M"},
		{name: "unknown dob", gender: "M", dob: time.Time{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classification(tt.gender, tt.dob, at)
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestMakeUsername(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		last      string
		licenceNo string
		want      string
	}{
		{name: "with licence", first: "Alan", last: "Moore", licenceNo: "100001", want: "alan-moore-100001"},
		{name: "without licence", first: "Alan", last: "Moore", want: "alan-moore"},
		{name: "punctuation stripped", first: "Mary-Jane", last: "O'Brien", licenceNo: "AUS 204", want: "mary-jane-o-brien-aus-204"},
		{name: "whitespace trimmed", first: "  Beth ", last: " Nguyen", licenceNo: "", want: "beth-nguyen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeUsername(tt.first, tt.last, tt.licenceNo)
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}
