package memory

import (
	"context"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/race"
)

type CourseRepository struct {
	mu     sync.RWMutex
	items  map[int64]race.Course
	orders []int64
	nextID int64
}

func NewCourseRepository(courses []race.Course) *CourseRepository {
	items := make(map[int64]race.Course, len(courses))
	orders := make([]int64, 0, len(courses))
	var nextID int64

	for _, c := range courses {
		items[c.ID] = c
		orders = append(orders, c.ID)
		if c.ID > nextID {
			nextID = c.ID
		}
	}

	return &CourseRepository{
		items:  items,
		orders: orders,
		nextID: nextID,
	}
}

func (r *CourseRepository) List(_ context.Context) ([]race.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Course, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *CourseRepository) GetByName(_ context.Context, name string) (race.Course, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if r.items[id].Name == name {
			return r.items[id], true, nil
		}
	}

	return race.Course{}, false, nil
}

func (r *CourseRepository) Create(_ context.Context, c race.Course) (race.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	r.orders = append(r.orders, c.ID)

	return c, nil
}
