package usecase

import (
	"errors"
	"testing"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
)

func TestRecalcService_RecalculateByClub(t *testing.T) {
	f := newClubFixture(t)
	svc := NewRecalcService(f.clubs, f.pointScores, f.tally, nil)

	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1})
	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 2, Grade: "B", UsualGrade: "B", Number: 12, Place: 2})

	out, err := svc.Recalculate(t.Context(), RecalcInput{ClubSlug: "Waratah"})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if out.TaskCount != 1 || out.SuccessCount != 1 || out.FailedCount != 0 {
		t.Fatalf("unexpected run summary: %+v", out)
	}
	if out.Tasks[0].PointScoreID != memory.PointScoreIDWaratahSeason || out.Tasks[0].Status != "success" {
		t.Fatalf("unexpected task: %+v", out.Tasks[0])
	}

	standings, err := f.tally.Tabulate(t.Context(), memory.PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}
	if len(standings) != 2 || standings[0].RiderID != 1 {
		t.Fatalf("unexpected standings: %+v", standings)
	}
}

func TestRecalcService_ExplicitIDsDeduplicated(t *testing.T) {
	f := newClubFixture(t)
	svc := NewRecalcService(f.clubs, f.pointScores, f.tally, nil)

	out, err := svc.Recalculate(t.Context(), RecalcInput{
		PointScoreIDs: []int64{memory.PointScoreIDWaratahSeason, memory.PointScoreIDWaratahSeason},
	})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if out.TaskCount != 1 {
		t.Fatalf("duplicate ids should collapse to one task, got %d", out.TaskCount)
	}
}

func TestRecalcService_MissingPointScoreFailsTask(t *testing.T) {
	f := newClubFixture(t)
	svc := NewRecalcService(f.clubs, f.pointScores, f.tally, nil)

	out, err := svc.Recalculate(t.Context(), RecalcInput{PointScoreIDs: []int64{99}})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if out.FailedCount != 1 || out.Tasks[0].Status != "failed" {
		t.Fatalf("missing point score should fail its task: %+v", out)
	}
}

func TestRecalcService_InputValidation(t *testing.T) {
	f := newClubFixture(t)
	svc := NewRecalcService(f.clubs, f.pointScores, f.tally, nil)

	if _, err := svc.Recalculate(t.Context(), RecalcInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty input, got %v", err)
	}
	if _, err := svc.Recalculate(t.Context(), RecalcInput{PointScoreIDs: []int64{0}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-positive id, got %v", err)
	}
	if _, err := svc.Recalculate(t.Context(), RecalcInput{ClubSlug: "gotham"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown club, got %v", err)
	}
}

func TestNormalizeRecalcWorkerCount(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		tasks     int
		want      int
	}{
		{name: "default", requested: 0, tasks: 8, want: 2},
		{name: "capped to tasks", requested: 8, tasks: 3, want: 3},
		{name: "explicit", requested: 3, tasks: 8, want: 3},
		{name: "at least one", requested: 0, tasks: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeRecalcWorkerCount(tt.requested, tt.tasks); got != tt.want {
				t.Fatalf("got %d want %d", got, tt.want)
			}
		})
	}
}
