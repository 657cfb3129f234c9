package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
)

func TestTallyService_TallyScoresPlacings(t *testing.T) {
	f := newClubFixture(t)

	// Three finishers make a tiny field: only the winner beats participation.
	results := []race.Result{
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1}),
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 2, Grade: "B", UsualGrade: "B", Number: 12, Place: 2}),
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 3, Grade: "B", UsualGrade: "B", Number: 13, DNF: true}),
	}
	for _, res := range results {
		if err := f.tally.Tally(t.Context(), memory.PointScoreIDWaratahSeason, res); err != nil {
			t.Fatalf("tally result: %v", err)
		}
	}

	standings, err := f.tally.Tabulate(t.Context(), memory.PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("unexpected standings size: %d", len(standings))
	}
	if standings[0].RiderID != 1 || standings[0].Points != 3 {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
	if standings[1].Points != 2 || standings[2].Points != 2 {
		t.Fatalf("minor placings should earn participation: %+v", standings)
	}

	events, err := f.tally.Audit(t.Context(), memory.PointScoreIDWaratahSeason, 1)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("unexpected audit size: %d", len(events))
	}
	want := "Placed 1 in small race < 6 riders : Criterium Round 1, 2026-02-07"
	if events[0].Reason != want {
		t.Fatalf("unexpected audit reason: %q", events[0].Reason)
	}
}

func TestTallyService_TallyIgnoresRacesOutsidePointScore(t *testing.T) {
	f := newClubFixture(t)

	rc, err := f.races.Create(t.Context(), race.Race{
		ClubID:  memory.ClubIDWaratah,
		Title:   "Invitational",
		Date:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:  race.StatusPublished,
		Grading: "A,B,C",
	})
	if err != nil {
		t.Fatalf("create race: %v", err)
	}
	res := f.addResult(t, race.Result{RaceID: rc.ID, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1})

	if err := f.tally.Tally(t.Context(), memory.PointScoreIDWaratahSeason, res); err != nil {
		t.Fatalf("tally result: %v", err)
	}
	standings, err := f.tally.Tabulate(t.Context(), memory.PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("result outside the point score must not be tallied: %+v", standings)
	}
}

func TestTallyService_PromotableRiderCapped(t *testing.T) {
	f := newClubFixture(t)

	// Three wins in the year before the opener make rider 1 promotable.
	for i := 0; i < 3; i++ {
		rc, err := f.races.Create(t.Context(), race.Race{
			ClubID:  memory.ClubIDWaratah,
			Title:   "Early Round",
			Date:    time.Date(2025, time.Month(9+i), 1, 0, 0, 0, 0, time.UTC),
			Status:  race.StatusPublished,
			Grading: "A,A2,B,C,D,E,F",
		})
		if err != nil {
			t.Fatalf("create race: %v", err)
		}
		f.addResult(t, race.Result{RaceID: rc.ID, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1})
	}

	res := f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1})
	if err := f.tally.Tally(t.Context(), memory.PointScoreIDWaratahSeason, res); err != nil {
		t.Fatalf("tally result: %v", err)
	}

	events, err := f.tally.Audit(t.Context(), memory.PointScoreIDWaratahSeason, 1)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(events) != 1 || events[0].Points != 2 {
		t.Fatalf("promotable riders must only earn participation: %+v", events)
	}
	want := "Rider eligible for promotion : Criterium Round 1, 2026-02-07"
	if events[0].Reason != want {
		t.Fatalf("unexpected audit reason: %q", events[0].Reason)
	}
}

func TestTallyService_HelperCreditedAveragePoints(t *testing.T) {
	f := newClubFixture(t)

	if err := f.tallies.Append(t.Context(), memory.PointScoreIDWaratahSeason, 1, 7, "Placed 1 in race"); err != nil {
		t.Fatalf("seed tally: %v", err)
	}
	if err := f.tallies.Append(t.Context(), memory.PointScoreIDWaratahSeason, 1, 3, "Placed 5 in race"); err != nil {
		t.Fatalf("seed tally: %v", err)
	}

	res := f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahClassic, RiderID: 1, Grade: race.HelperGrade, Number: 999})
	if err := f.tally.Tally(t.Context(), memory.PointScoreIDWaratahSeason, res); err != nil {
		t.Fatalf("tally helper result: %v", err)
	}

	events, err := f.tally.Audit(t.Context(), memory.PointScoreIDWaratahSeason, 1)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	last := events[len(events)-1]
	if last.Points != 5 {
		t.Fatalf("helper should be credited the rounded average, got %d", last.Points)
	}
	want := "Helper 5 : Criterium Round 2, 2026-02-14"
	if last.Reason != want {
		t.Fatalf("unexpected helper reason: %q", last.Reason)
	}
}

func TestTallyService_RecalculateReproducesStandings(t *testing.T) {
	f := newClubFixture(t)

	results := []race.Result{
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1}),
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 2, Grade: "B", UsualGrade: "B", Number: 12, Place: 2}),
		f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahClassic, RiderID: 2, Grade: "B", UsualGrade: "B", Number: 12, Place: 1}),
	}
	for _, res := range results {
		if err := f.tally.Tally(t.Context(), memory.PointScoreIDWaratahSeason, res); err != nil {
			t.Fatalf("tally result: %v", err)
		}
	}
	before, err := f.tally.Tabulate(t.Context(), memory.PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}

	if err := f.tally.Recalculate(t.Context(), memory.PointScoreIDWaratahSeason); err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	after, err := f.tally.Tabulate(t.Context(), memory.PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("tabulate: %v", err)
	}

	if len(before) != len(after) {
		t.Fatalf("standings size changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i].RiderID != after[i].RiderID || before[i].Points != after[i].Points || before[i].EventCount != after[i].EventCount {
			t.Fatalf("standing %d changed: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestTallyService_NotFound(t *testing.T) {
	f := newClubFixture(t)

	if err := f.tally.Recalculate(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.tally.Tabulate(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.tally.PointScore(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTallyService_AuditEmptyForUnknownRider(t *testing.T) {
	f := newClubFixture(t)

	events, err := f.tally.Audit(t.Context(), memory.PointScoreIDWaratahSeason, 42)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty audit history, got %v", events)
	}
}
