package memory

import (
	"context"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/club"
)

type ClubRepository struct {
	mu     sync.RWMutex
	items  map[int64]club.Club
	orders []int64
	nextID int64
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	items := make(map[int64]club.Club, len(clubs))
	orders := make([]int64, 0, len(clubs))
	var nextID int64

	for _, c := range clubs {
		items[c.ID] = c
		orders = append(orders, c.ID)
		if c.ID > nextID {
			nextID = c.ID
		}
	}

	return &ClubRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
	}
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[clubID]
	if !ok {
		return club.Club{}, false, nil
	}

	return c, true, nil
}

func (r *ClubRepository) GetBySlug(_ context.Context, slug string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if r.items[id].Slug == slug {
			return r.items[id], true, nil
		}
	}

	return club.Club{}, false, nil
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) (club.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	r.orders = append(r.orders, c.ID)

	return c, nil
}
