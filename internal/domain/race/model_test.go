package race

import (
	"testing"
	"time"
)

func TestGradeOrder(t *testing.T) {
	rc := Race{Grading: "A, A2 ,B,,C"}
	got := rc.GradeOrder()
	want := []string{"A", "A2", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q want %q", i, got[i], want[i])
		}
	}

	if (Race{}).GradeOrder() != nil {
		t.Fatalf("expected nil order for empty grading")
	}
}

func TestGradeBelow(t *testing.T) {
	order := []string{"A", "A2", "B", "C", "D"}

	tests := []struct {
		name   string
		raced  string
		usual  string
		want   bool
	}{
		{name: "below usual", raced: "C", usual: "B", want: true},
		{name: "above usual", raced: "A2", usual: "B", want: false},
		{name: "same grade", raced: "B", usual: "B", want: false},
		{name: "unknown usual grade falls back", raced: "E", usual: "B", want: true},
		{name: "missing usual", raced: "B", usual: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeBelow(order, tt.raced, tt.usual); got != tt.want {
				t.Fatalf("got %t want %t", got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	rc := Race{Title: "Criterium Round 1", Date: time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)}
	if got := rc.Label(); got != "Criterium Round 1, 2026-02-07" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestCourseSimilarity(t *testing.T) {
	if got := CourseSimilarity("Lansdowne Park", "Lansdowne Park"); got != 1 {
		t.Fatalf("identical names should score 1, got %f", got)
	}
	if got := CourseSimilarity("Lansdowne Park, Georges Hall", "Lansdowne Park"); got < 0.4 {
		t.Fatalf("expected close match, got %f", got)
	}
	if got := CourseSimilarity("Heffron Park", "Lansdowne Park"); got > 0.5 {
		t.Fatalf("expected weak match, got %f", got)
	}
	if got := CourseSimilarity("", "Lansdowne Park"); got != 0 {
		t.Fatalf("empty name should score 0, got %f", got)
	}
	if got := CourseSimilarity("LANSDOWNE  park", "lansdowne-park"); got != 1 {
		t.Fatalf("normalisation should make these equal, got %f", got)
	}
}
