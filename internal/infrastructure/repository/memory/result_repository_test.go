package memory

import (
	"errors"
	"testing"

	"github.com/openvelo/clubraces/internal/domain/race"
)

func TestResultRepository_CreateRejectsDuplicates(t *testing.T) {
	races := NewRaceRepository(SeedRaces())
	repo := NewResultRepository(nil, races)

	first, err := repo.Create(t.Context(), race.Result{RaceID: RaceIDWaratahOpener, RiderID: 1, Grade: "B", Number: 11, Place: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("created result should get an id")
	}

	_, err = repo.Create(t.Context(), race.Result{RaceID: RaceIDWaratahOpener, RiderID: 1, Grade: "C", Number: 40})
	if !errors.Is(err, race.ErrDuplicateResult) {
		t.Fatalf("same rider in the same race should be rejected, got %v", err)
	}

	_, err = repo.Create(t.Context(), race.Result{RaceID: RaceIDWaratahOpener, RiderID: 2, Grade: "B", Number: 11})
	if !errors.Is(err, race.ErrDuplicateResult) {
		t.Fatalf("same bib in the same grade should be rejected, got %v", err)
	}

	if _, err := repo.Create(t.Context(), race.Result{RaceID: RaceIDWaratahClassic, RiderID: 1, Grade: "B", Number: 11}); err != nil {
		t.Fatalf("same rider in another race should be fine: %v", err)
	}
	if _, err := repo.Create(t.Context(), race.Result{RaceID: RaceIDWaratahOpener, RiderID: 3, Grade: "C", Number: 11}); err != nil {
		t.Fatalf("same bib in another grade should be fine: %v", err)
	}
}

func TestResultRepository_DeleteByRace(t *testing.T) {
	races := NewRaceRepository(SeedRaces())
	repo := NewResultRepository(nil, races)

	for riderID, raceID := range map[int64]int64{1: RaceIDWaratahOpener, 2: RaceIDWaratahOpener, 3: RaceIDWaratahClassic} {
		if _, err := repo.Create(t.Context(), race.Result{RaceID: raceID, RiderID: riderID, Grade: "B", Number: int(10 + riderID)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.DeleteByRace(t.Context(), RaceIDWaratahOpener); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n, err := repo.CountByRace(t.Context(), RaceIDWaratahOpener); err != nil || n != 0 {
		t.Fatalf("opener results should be gone, got %d (%v)", n, err)
	}
	if n, err := repo.CountByRace(t.Context(), RaceIDWaratahClassic); err != nil || n != 1 {
		t.Fatalf("classic results should survive, got %d (%v)", n, err)
	}
}

func TestResultRepository_ListByRaceOrdering(t *testing.T) {
	races := NewRaceRepository(SeedRaces())
	repo := NewResultRepository(nil, races)

	seed := []race.Result{
		{RaceID: RaceIDWaratahOpener, RiderID: 1, Grade: "C", Number: 31, Place: 1},
		{RaceID: RaceIDWaratahOpener, RiderID: 2, Grade: "B", Number: 14},
		{RaceID: RaceIDWaratahOpener, RiderID: 3, Grade: "B", Number: 12, Place: 2},
		{RaceID: RaceIDWaratahOpener, RiderID: 4, Grade: "B", Number: 11, Place: 1},
	}
	for _, res := range seed {
		if _, err := repo.Create(t.Context(), res); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	results, err := repo.ListByRace(t.Context(), RaceIDWaratahOpener)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]int64, 0, len(results))
	for _, res := range results {
		got = append(got, res.RiderID)
	}
	want := []int64{4, 3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}
