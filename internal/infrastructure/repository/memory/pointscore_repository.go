package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
)

type PointScoreRepository struct {
	mu      sync.RWMutex
	items   map[int64]pointscore.PointScore
	raceIDs map[int64][]int64
	orders  []int64
	nextID  int64
	races   *RaceRepository
}

func NewPointScoreRepository(pointScores []pointscore.PointScore, races *RaceRepository) *PointScoreRepository {
	items := make(map[int64]pointscore.PointScore, len(pointScores))
	orders := make([]int64, 0, len(pointScores))
	var nextID int64

	for _, ps := range pointScores {
		items[ps.ID] = ps
		orders = append(orders, ps.ID)
		if ps.ID > nextID {
			nextID = ps.ID
		}
	}

	return &PointScoreRepository{
		items:   items,
		raceIDs: map[int64][]int64{},
		orders:  orders,
		nextID:  nextID,
		races:   races,
	}
}

func (r *PointScoreRepository) GetByID(_ context.Context, pointScoreID int64) (pointscore.PointScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ps, ok := r.items[pointScoreID]
	if !ok {
		return pointscore.PointScore{}, false, nil
	}

	return ps, true, nil
}

func (r *PointScoreRepository) ListByClub(_ context.Context, clubID int64) ([]pointscore.PointScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointscore.PointScore, 0)
	for _, id := range r.orders {
		if r.items[id].ClubID == clubID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *PointScoreRepository) ListByRace(_ context.Context, raceID int64) ([]pointscore.PointScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointscore.PointScore, 0)
	for _, id := range r.orders {
		for _, member := range r.raceIDs[id] {
			if member == raceID {
				out = append(out, r.items[id])
				break
			}
		}
	}

	return out, nil
}

func (r *PointScoreRepository) ContainsRace(_ context.Context, pointScoreID, raceID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.raceIDs[pointScoreID] {
		if member == raceID {
			return true, nil
		}
	}

	return false, nil
}

func (r *PointScoreRepository) ListRaces(_ context.Context, pointScoreID int64) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.races.mu.RLock()
	defer r.races.mu.RUnlock()

	out := make([]race.Race, 0, len(r.raceIDs[pointScoreID]))
	for _, raceID := range r.raceIDs[pointScoreID] {
		if rc, ok := r.races.items[raceID]; ok {
			out = append(out, rc)
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

func (r *PointScoreRepository) AddRace(_ context.Context, pointScoreID, raceID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, member := range r.raceIDs[pointScoreID] {
		if member == raceID {
			return nil
		}
	}
	r.raceIDs[pointScoreID] = append(r.raceIDs[pointScoreID], raceID)

	return nil
}

func (r *PointScoreRepository) Create(_ context.Context, ps pointscore.PointScore) (pointscore.PointScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps.ApplyDefaults()
	r.nextID++
	ps.ID = r.nextID
	r.items[ps.ID] = ps
	r.orders = append(r.orders, ps.ID)

	return ps, nil
}
