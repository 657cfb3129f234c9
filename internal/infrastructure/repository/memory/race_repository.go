package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/race"
)

type RaceRepository struct {
	mu     sync.RWMutex
	items  map[int64]race.Race
	orders []int64
	nextID int64
}

func NewRaceRepository(races []race.Race) *RaceRepository {
	items := make(map[int64]race.Race, len(races))
	orders := make([]int64, 0, len(races))
	var nextID int64

	for _, rc := range races {
		items[rc.ID] = rc
		orders = append(orders, rc.ID)
		if rc.ID > nextID {
			nextID = rc.ID
		}
	}

	return &RaceRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
	}
}

func (r *RaceRepository) GetByID(_ context.Context, raceID int64) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rc, ok := r.items[raceID]
	if !ok {
		return race.Race{}, false, nil
	}

	return rc, true, nil
}

func (r *RaceRepository) ListByClub(_ context.Context, clubID int64) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0)
	for _, id := range r.orders {
		if r.items[id].ClubID == clubID {
			out = append(out, r.items[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *RaceRepository) Create(_ context.Context, rc race.Race) (race.Race, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rc.ID = r.nextID
	r.items[rc.ID] = rc
	r.orders = append(r.orders, rc.ID)

	return rc, nil
}

func (r *RaceRepository) ExistsByHash(_ context.Context, clubID int64, hash string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		rc := r.items[id]
		if rc.ClubID == clubID && rc.ContentHash == hash {
			return true, nil
		}
	}

	return false, nil
}

func (r *RaceRepository) CountByClub(_ context.Context, clubID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		if r.items[id].ClubID == clubID {
			count++
		}
	}

	return count, nil
}
