package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
)

func newClubService(f *clubFixture, now func() time.Time) *ClubService {
	return NewClubService(f.clubs, f.races, f.results, f.riders, now)
}

func TestClubService_ListClubs(t *testing.T) {
	f := newClubFixture(t)
	svc := newClubService(f, nil)

	clubs, err := svc.ListClubs(t.Context())
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(clubs))
	}
}

func TestClubService_GetClubNormalisesSlug(t *testing.T) {
	f := newClubFixture(t)
	svc := newClubService(f, nil)

	c, err := svc.GetClub(t.Context(), "  Waratah ")
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if c.ID != memory.ClubIDWaratah {
		t.Fatalf("unexpected club: %+v", c)
	}

	if _, err := svc.GetClub(t.Context(), "gotham"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetClub(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClubService_Statistics(t *testing.T) {
	f := newClubFixture(t)
	now := func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	svc := newClubService(f, now)

	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 1})

	stats, err := svc.Statistics(t.Context(), "waratah")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.CurrentMembers != 3 {
		t.Fatalf("expected 3 current members, got %d", stats.CurrentMembers)
	}
	if stats.RacesRun != 2 {
		t.Fatalf("expected 2 races, got %d", stats.RacesRun)
	}
	if stats.ResultsRecorded != 1 {
		t.Fatalf("expected 1 result, got %d", stats.ResultsRecorded)
	}
}

func TestClubService_StatisticsExpiresOldMemberships(t *testing.T) {
	f := newClubFixture(t)
	now := func() time.Time { return time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC) }
	svc := newClubService(f, now)

	stats, err := svc.Statistics(t.Context(), "waratah")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.CurrentMembers != 0 {
		t.Fatalf("lapsed memberships should not count, got %d", stats.CurrentMembers)
	}
}

func TestClubService_ListRaces(t *testing.T) {
	f := newClubFixture(t)
	svc := newClubService(f, nil)

	races, err := svc.ListRaces(t.Context(), "waratah")
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	if len(races) != 2 {
		t.Fatalf("expected 2 races, got %d", len(races))
	}
	if races[0].Date.After(races[1].Date) {
		t.Fatalf("races should come back oldest first: %+v", races)
	}

	empty, err := svc.ListRaces(t.Context(), "lidcombe")
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no races for lidcombe, got %d", len(empty))
	}
}

func TestClubService_ListResultsOrdering(t *testing.T) {
	f := newClubFixture(t)
	svc := newClubService(f, nil)

	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 3, Grade: "C", UsualGrade: "C", Number: 31, Place: 1})
	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 2, Grade: "B", UsualGrade: "B", Number: 12})
	f.addResult(t, race.Result{RaceID: memory.RaceIDWaratahOpener, RiderID: 1, Grade: "B", UsualGrade: "B", Number: 11, Place: 2})

	results, err := svc.ListResults(t.Context(), memory.RaceIDWaratahOpener)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].RiderID != 1 || results[1].RiderID != 2 || results[2].RiderID != 3 {
		t.Fatalf("results should sort by grade, placings before finishers: %+v", results)
	}

	if _, err := svc.ListResults(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClubService_GetRider(t *testing.T) {
	f := newClubFixture(t)
	svc := newClubService(f, nil)

	rd, err := svc.GetRider(t.Context(), 1)
	if err != nil {
		t.Fatalf("get rider: %v", err)
	}
	if rd.Username != "alan-moore-100001" {
		t.Fatalf("unexpected rider: %+v", rd)
	}

	if _, err := svc.GetRider(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
