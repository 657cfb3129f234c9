package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/pointscore"
)

type TallyRepository struct {
	mu          sync.RWMutex
	tallies     map[int64]pointscore.Tally
	tallyOrders []int64
	events      map[int64]pointscore.Event
	eventOrders []int64
	nextTallyID int64
	nextEventID int64
}

func NewTallyRepository() *TallyRepository {
	return &TallyRepository{
		tallies: map[int64]pointscore.Tally{},
		events:  map[int64]pointscore.Event{},
	}
}

func (r *TallyRepository) Get(_ context.Context, pointScoreID, riderID int64) (pointscore.Tally, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.tallyOrders {
		t := r.tallies[id]
		if t.PointScoreID == pointScoreID && t.RiderID == riderID {
			return t, true, nil
		}
	}

	return pointscore.Tally{}, false, nil
}

func (r *TallyRepository) Append(_ context.Context, pointScoreID, riderID int64, points int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tallyID int64
	for _, id := range r.tallyOrders {
		t := r.tallies[id]
		if t.PointScoreID == pointScoreID && t.RiderID == riderID {
			tallyID = id
			break
		}
	}
	if tallyID == 0 {
		r.nextTallyID++
		tallyID = r.nextTallyID
		r.tallies[tallyID] = pointscore.Tally{
			ID:           tallyID,
			PointScoreID: pointScoreID,
			RiderID:      riderID,
		}
		r.tallyOrders = append(r.tallyOrders, tallyID)
	}

	t := r.tallies[tallyID]
	t.Points += points
	t.EventCount++
	r.tallies[tallyID] = t

	r.nextEventID++
	event := pointscore.Event{
		ID:           r.nextEventID,
		PointScoreID: pointScoreID,
		RiderID:      riderID,
		Seq:          t.EventCount,
		Points:       points,
		Reason:       reason,
	}
	r.events[event.ID] = event
	r.eventOrders = append(r.eventOrders, event.ID)

	return nil
}

func (r *TallyRepository) List(_ context.Context, pointScoreID int64) ([]pointscore.Tally, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointscore.Tally, 0)
	for _, id := range r.tallyOrders {
		if r.tallies[id].PointScoreID == pointScoreID {
			out = append(out, r.tallies[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].EventCount < out[j].EventCount
	})

	return out, nil
}

func (r *TallyRepository) Audit(_ context.Context, pointScoreID, riderID int64) ([]pointscore.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointscore.Event, 0)
	for _, id := range r.eventOrders {
		event := r.events[id]
		if event.PointScoreID == pointScoreID && event.RiderID == riderID {
			out = append(out, event)
		}
	}

	return out, nil
}

func (r *TallyRepository) DeleteByPointScore(_ context.Context, pointScoreID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keptTallies := r.tallyOrders[:0]
	for _, id := range r.tallyOrders {
		if r.tallies[id].PointScoreID == pointScoreID {
			delete(r.tallies, id)
			continue
		}
		keptTallies = append(keptTallies, id)
	}
	r.tallyOrders = keptTallies

	keptEvents := r.eventOrders[:0]
	for _, id := range r.eventOrders {
		if r.events[id].PointScoreID == pointScoreID {
			delete(r.events, id)
			continue
		}
		keptEvents = append(keptEvents, id)
	}
	r.eventOrders = keptEvents

	return nil
}
