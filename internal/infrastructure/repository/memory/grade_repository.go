package memory

import (
	"context"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/rider"
)

type GradeRepository struct {
	mu     sync.RWMutex
	items  map[int64]rider.ClubGrade
	orders []int64
	nextID int64
}

func NewGradeRepository(grades []rider.ClubGrade) *GradeRepository {
	items := make(map[int64]rider.ClubGrade, len(grades))
	orders := make([]int64, 0, len(grades))
	var nextID int64

	for _, g := range grades {
		items[g.ID] = g
		orders = append(orders, g.ID)
		if g.ID > nextID {
			nextID = g.ID
		}
	}

	return &GradeRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
	}
}

func (r *GradeRepository) Get(_ context.Context, clubID, riderID int64) (rider.ClubGrade, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		g := r.items[id]
		if g.ClubID == clubID && g.RiderID == riderID {
			return g, true, nil
		}
	}

	return rider.ClubGrade{}, false, nil
}

func (r *GradeRepository) Create(_ context.Context, g rider.ClubGrade) (rider.ClubGrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.orders {
		existing := r.items[id]
		if existing.ClubID == g.ClubID && existing.RiderID == g.RiderID {
			return rider.ClubGrade{}, rider.ErrAlreadyGraded
		}
	}

	r.nextID++
	g.ID = r.nextID
	r.items[g.ID] = g
	r.orders = append(r.orders, g.ID)

	return g, nil
}

func (r *GradeRepository) Replace(_ context.Context, clubID, riderID int64, grade string) (rider.ClubGrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.orders {
		g := r.items[id]
		if g.ClubID == clubID && g.RiderID == riderID {
			g.Grade = grade
			r.items[id] = g
			return g, nil
		}
	}

	r.nextID++
	g := rider.ClubGrade{ID: r.nextID, ClubID: clubID, RiderID: riderID, Grade: grade}
	r.items[g.ID] = g
	r.orders = append(r.orders, g.ID)

	return g, nil
}

func (r *GradeRepository) ListByClub(_ context.Context, clubID int64) ([]rider.ClubGrade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.ClubGrade, 0)
	for _, id := range r.orders {
		if r.items[id].ClubID == clubID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}
