package pointscore

import (
	"context"

	"github.com/openvelo/clubraces/internal/domain/race"
)

// Repository provides access to point score definitions and their race
// memberships.
type Repository interface {
	GetByID(ctx context.Context, id int64) (PointScore, bool, error)
	ListByClub(ctx context.Context, clubID int64) ([]PointScore, error)
	// ListByRace returns every point score the race belongs to.
	ListByRace(ctx context.Context, raceID int64) ([]PointScore, error)
	ContainsRace(ctx context.Context, pointScoreID, raceID int64) (bool, error)
	// ListRaces returns the member races ordered by date ascending, then ID.
	ListRaces(ctx context.Context, pointScoreID int64) ([]race.Race, error)
	AddRace(ctx context.Context, pointScoreID, raceID int64) error
	Create(ctx context.Context, ps PointScore) (PointScore, error)
}

// TallyRepository provides access to rider tallies and their audit events.
type TallyRepository interface {
	Get(ctx context.Context, pointScoreID, riderID int64) (Tally, bool, error)
	// Append credits points to the rider's tally, creating it if absent,
	// and appends the audit event in the same step.
	Append(ctx context.Context, pointScoreID, riderID int64, points int, reason string) error
	// List returns tallies ordered by points descending, then event count
	// ascending.
	List(ctx context.Context, pointScoreID int64) ([]Tally, error)
	// Audit returns the rider's events in append order. A rider with no
	// tally yields an empty slice.
	Audit(ctx context.Context, pointScoreID, riderID int64) ([]Event, error)
	DeleteByPointScore(ctx context.Context, pointScoreID int64) error
}
