package memory

import "testing"

func TestTallyRepository_AppendAccumulates(t *testing.T) {
	repo := NewTallyRepository()

	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 1, 7, "Placed 1 in race"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 1, 2, "Participation"); err != nil {
		t.Fatalf("append: %v", err)
	}

	tally, found, err := repo.Get(t.Context(), PointScoreIDWaratahSeason, 1)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if tally.Points != 9 || tally.EventCount != 2 {
		t.Fatalf("unexpected tally: %+v", tally)
	}

	events, err := repo.Audit(t.Context(), PointScoreIDWaratahSeason, 1)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(events) != 2 || events[0].Seq != 1 || events[1].Seq != 2 {
		t.Fatalf("audit events should be sequenced: %+v", events)
	}
	if events[1].Reason != "Participation" {
		t.Fatalf("unexpected reason: %q", events[1].Reason)
	}
}

func TestTallyRepository_ListRanksByPoints(t *testing.T) {
	repo := NewTallyRepository()

	must := func(riderID int64, points int) {
		t.Helper()
		if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, riderID, points, "Placed"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	must(1, 2)
	must(1, 2)
	must(2, 7)
	must(3, 4)

	standings, err := repo.List(t.Context(), PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 tallies, got %d", len(standings))
	}
	if standings[0].RiderID != 2 || standings[1].RiderID != 1 || standings[2].RiderID != 3 {
		t.Fatalf("unexpected ranking: %+v", standings)
	}
}

func TestTallyRepository_ListBreaksTiesOnFewerEvents(t *testing.T) {
	repo := NewTallyRepository()

	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 1, 7, "Placed"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 2, 5, "Placed"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 2, 2, "Participation"); err != nil {
		t.Fatalf("append: %v", err)
	}

	standings, err := repo.List(t.Context(), PointScoreIDWaratahSeason)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if standings[0].RiderID != 1 {
		t.Fatalf("equal points should rank the rider with fewer events first: %+v", standings)
	}
}

func TestTallyRepository_DeleteByPointScore(t *testing.T) {
	repo := NewTallyRepository()

	if err := repo.Append(t.Context(), PointScoreIDWaratahSeason, 1, 7, "Placed"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(t.Context(), 2, 1, 5, "Placed"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := repo.DeleteByPointScore(t.Context(), PointScoreIDWaratahSeason); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, found, _ := repo.Get(t.Context(), PointScoreIDWaratahSeason, 1); found {
		t.Fatal("deleted point score tally should be gone")
	}
	events, err := repo.Audit(t.Context(), PointScoreIDWaratahSeason, 1)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("deleted point score events should be gone: %+v", events)
	}
	if tally, found, _ := repo.Get(t.Context(), 2, 1); !found || tally.Points != 5 {
		t.Fatalf("other point scores should be untouched: %+v", tally)
	}
}
