package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openvelo/clubraces/internal/domain/rider"
)

type RiderRepository struct {
	mu          sync.RWMutex
	items       map[int64]rider.Rider
	orders      []int64
	nextID      int64
	memberships *MembershipRepository
}

func NewRiderRepository(riders []rider.Rider, memberships *MembershipRepository) *RiderRepository {
	items := make(map[int64]rider.Rider, len(riders))
	orders := make([]int64, 0, len(riders))
	var nextID int64

	for _, rd := range riders {
		items[rd.ID] = rd
		orders = append(orders, rd.ID)
		if rd.ID > nextID {
			nextID = rd.ID
		}
	}

	return &RiderRepository{
		items:       items,
		orders:      orders,
		nextID:      nextID,
		memberships: memberships,
	}
}

func (r *RiderRepository) GetByID(_ context.Context, riderID int64) (rider.Rider, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.items[riderID]
	if !ok {
		return rider.Rider{}, false, nil
	}

	return rd, true, nil
}

func (r *RiderRepository) GetByUsername(_ context.Context, username string) (rider.Rider, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if r.items[id].Username == username {
			return r.items[id], true, nil
		}
	}

	return rider.Rider{}, false, nil
}

func (r *RiderRepository) Create(_ context.Context, rd rider.Rider) (rider.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rd.ID = r.nextID
	r.items[rd.ID] = rd
	r.orders = append(r.orders, rd.ID)

	return rd, nil
}

func (r *RiderRepository) Update(_ context.Context, rd rider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[rd.ID]; !ok {
		return nil
	}
	r.items[rd.ID] = rd

	return nil
}

func (r *RiderRepository) CountCurrentMembers(_ context.Context, clubID int64, asOf time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.memberships.mu.RLock()
	defer r.memberships.mu.RUnlock()

	count := 0
	cutoff := asOf.AddDate(-1, 0, 0)
	for _, id := range r.orders {
		m, found, _ := r.memberships.current(id)
		if found && m.ClubID == clubID && !m.Date.Before(cutoff) {
			count++
		}
	}

	return count, nil
}

func (r *RiderRepository) ListMembersByClub(_ context.Context, clubID int64, category rider.MembershipCategory, asOf time.Time) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.memberships.mu.RLock()
	defer r.memberships.mu.RUnlock()

	cutoff := asOf.AddDate(-1, 0, 0)
	out := make([]rider.Rider, 0)
	for _, id := range r.orders {
		m, found, _ := r.memberships.current(id)
		if found && m.ClubID == clubID && m.Category == category && !m.Date.Before(cutoff) {
			out = append(out, r.items[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})

	return out, nil
}
