package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openvelo/clubraces/internal/domain/race"
)

type ResultRepository struct {
	mu     sync.RWMutex
	items  map[int64]race.Result
	orders []int64
	nextID int64
	races  *RaceRepository
}

func NewResultRepository(results []race.Result, races *RaceRepository) *ResultRepository {
	items := make(map[int64]race.Result, len(results))
	orders := make([]int64, 0, len(results))
	var nextID int64

	for _, res := range results {
		items[res.ID] = res
		orders = append(orders, res.ID)
		if res.ID > nextID {
			nextID = res.ID
		}
	}

	return &ResultRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
		races:  races,
	}
}

func (r *ResultRepository) ListByRace(_ context.Context, raceID int64) ([]race.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Result, 0)
	for _, id := range r.orders {
		if r.items[id].RaceID == raceID {
			out = append(out, r.items[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.Place != b.Place {
			// Unplaced results sort after every placed result.
			if a.Place == 0 {
				return false
			}
			if b.Place == 0 {
				return true
			}
			return a.Place < b.Place
		}
		return a.Number < b.Number
	})

	return out, nil
}

func (r *ResultRepository) CountByRace(_ context.Context, raceID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		if r.items[id].RaceID == raceID {
			count++
		}
	}

	return count, nil
}

func (r *ResultRepository) CountByRaceAndGrade(_ context.Context, raceID int64, grade string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		res := r.items[id]
		if res.RaceID == raceID && res.Grade == grade {
			count++
		}
	}

	return count, nil
}

func (r *ResultRepository) Create(_ context.Context, res race.Result) (race.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.orders {
		existing := r.items[id]
		if existing.RaceID != res.RaceID {
			continue
		}
		if existing.RiderID == res.RiderID {
			return race.Result{}, race.ErrDuplicateResult
		}
		if existing.Grade == res.Grade && existing.Number == res.Number {
			return race.Result{}, race.ErrDuplicateResult
		}
	}

	r.nextID++
	res.ID = r.nextID
	r.items[res.ID] = res
	r.orders = append(r.orders, res.ID)

	return res, nil
}

func (r *ResultRepository) DeleteByRace(_ context.Context, raceID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, id := range r.orders {
		if r.items[id].RaceID == raceID {
			delete(r.items, id)
			continue
		}
		kept = append(kept, id)
	}
	r.orders = kept

	return nil
}

func (r *ResultRepository) CountByClub(_ context.Context, clubID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.races.mu.RLock()
	defer r.races.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		rc, ok := r.races.items[r.items[id].RaceID]
		if ok && rc.ClubID == clubID {
			count++
		}
	}

	return count, nil
}

func (r *ResultRepository) PerformanceCounts(_ context.Context, clubID, riderID int64, grade string, since, before time.Time) (race.PerformanceCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.races.mu.RLock()
	defer r.races.mu.RUnlock()

	var counts race.PerformanceCounts
	for _, id := range r.orders {
		res := r.items[id]
		if res.RiderID != riderID || res.Grade != grade || !res.Placed() {
			continue
		}
		rc, ok := r.races.items[res.RaceID]
		if !ok || rc.ClubID != clubID {
			continue
		}
		if rc.Date.Before(since) || !rc.Date.Before(before) {
			continue
		}
		if res.Place == 1 {
			counts.Wins++
		}
		if res.Place <= 3 {
			counts.Places++
		}
	}

	return counts, nil
}
