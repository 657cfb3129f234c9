package memory

import (
	"context"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/rider"
)

type MembershipRepository struct {
	mu     sync.RWMutex
	items  map[int64]rider.Membership
	orders []int64
	nextID int64
}

func NewMembershipRepository(memberships []rider.Membership) *MembershipRepository {
	items := make(map[int64]rider.Membership, len(memberships))
	orders := make([]int64, 0, len(memberships))
	var nextID int64

	for _, m := range memberships {
		items[m.ID] = m
		orders = append(orders, m.ID)
		if m.ID > nextID {
			nextID = m.ID
		}
	}

	return &MembershipRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
	}
}

func (r *MembershipRepository) ListByRider(_ context.Context, riderID int64) ([]rider.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Membership, 0)
	for _, id := range r.orders {
		if r.items[id].RiderID == riderID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *MembershipRepository) Current(_ context.Context, riderID int64) (rider.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current(riderID)
}

func (r *MembershipRepository) current(riderID int64) (rider.Membership, bool, error) {
	var (
		latest rider.Membership
		found  bool
	)
	for _, id := range r.orders {
		m := r.items[id]
		if m.RiderID != riderID {
			continue
		}
		if !found || m.Date.After(latest.Date) {
			latest = m
			found = true
		}
	}

	return latest, found, nil
}

func (r *MembershipRepository) Create(_ context.Context, m rider.Membership) (rider.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.ID = r.nextID
	r.items[m.ID] = m
	r.orders = append(r.orders, m.ID)

	return m, nil
}
