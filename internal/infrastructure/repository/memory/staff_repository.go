package memory

import (
	"context"
	"sync"
	"time"

	"github.com/openvelo/clubraces/internal/domain/race"
)

type StaffRepository struct {
	mu     sync.RWMutex
	items  map[int64]race.Staff
	orders []int64
	nextID int64
	races  *RaceRepository
}

func NewStaffRepository(staff []race.Staff, races *RaceRepository) *StaffRepository {
	items := make(map[int64]race.Staff, len(staff))
	orders := make([]int64, 0, len(staff))
	var nextID int64

	for _, st := range staff {
		items[st.ID] = st
		orders = append(orders, st.ID)
		if st.ID > nextID {
			nextID = st.ID
		}
	}

	return &StaffRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
		races:  races,
	}
}

func (r *StaffRepository) ListByRace(_ context.Context, raceID int64) ([]race.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Staff, 0)
	for _, id := range r.orders {
		if r.items[id].RaceID == raceID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *StaffRepository) Create(_ context.Context, st race.Staff) (race.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	st.ID = r.nextID
	r.items[st.ID] = st
	r.orders = append(r.orders, st.ID)

	return st, nil
}

func (r *StaffRepository) DutyCounts(_ context.Context, clubID int64, role race.StaffRole, since time.Time) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.races.mu.RLock()
	defer r.races.mu.RUnlock()

	counts := map[int64]int{}
	for _, id := range r.orders {
		st := r.items[id]
		if st.Role != role {
			continue
		}
		rc, ok := r.races.items[st.RaceID]
		if !ok || rc.ClubID != clubID || rc.Date.Before(since) {
			continue
		}
		counts[st.RiderID]++
	}

	return counts, nil
}
