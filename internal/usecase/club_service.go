package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

// ClubService serves the read side of the club directory: clubs, their
// races, race results and riders.
type ClubService struct {
	clubRepo   club.Repository
	raceRepo   race.Repository
	resultRepo race.ResultRepository
	riderRepo  rider.Repository
	now        func() time.Time
}

func NewClubService(
	clubRepo club.Repository,
	raceRepo race.Repository,
	resultRepo race.ResultRepository,
	riderRepo rider.Repository,
	now func() time.Time,
) *ClubService {
	if now == nil {
		now = time.Now
	}
	return &ClubService{
		clubRepo:   clubRepo,
		raceRepo:   raceRepo,
		resultRepo: resultRepo,
		riderRepo:  riderRepo,
		now:        now,
	}
}

// ListClubs returns every club.
func (s *ClubService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}

// GetClub returns one club by slug.
func (s *ClubService) GetClub(ctx context.Context, slug string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetClub")
	defer span.End()

	return s.resolveClub(ctx, slug)
}

// Statistics summarises the club's membership and racing activity.
func (s *ClubService) Statistics(ctx context.Context, slug string) (club.Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Statistics")
	defer span.End()

	c, err := s.resolveClub(ctx, slug)
	if err != nil {
		return club.Statistics{}, err
	}
	members, err := s.riderRepo.CountCurrentMembers(ctx, c.ID, s.now())
	if err != nil {
		return club.Statistics{}, fmt.Errorf("count members: %w", err)
	}
	races, err := s.raceRepo.CountByClub(ctx, c.ID)
	if err != nil {
		return club.Statistics{}, fmt.Errorf("count races: %w", err)
	}
	results, err := s.resultRepo.CountByClub(ctx, c.ID)
	if err != nil {
		return club.Statistics{}, fmt.Errorf("count results: %w", err)
	}
	return club.Statistics{
		CurrentMembers:  members,
		RacesRun:        races,
		ResultsRecorded: results,
	}, nil
}

// ListRaces returns the club's races, oldest first.
func (s *ClubService) ListRaces(ctx context.Context, slug string) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListRaces")
	defer span.End()

	c, err := s.resolveClub(ctx, slug)
	if err != nil {
		return nil, err
	}
	races, err := s.raceRepo.ListByClub(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list races for club %s: %w", slug, err)
	}
	return races, nil
}

// ListResults returns the race's results in their stored order.
func (s *ClubService) ListResults(ctx context.Context, raceID int64) ([]race.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListResults")
	defer span.End()

	_, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("get race %d: %w", raceID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: race %d", ErrNotFound, raceID)
	}
	results, err := s.resultRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list results for race %d: %w", raceID, err)
	}
	return results, nil
}

// GetRider returns one rider.
func (s *ClubService) GetRider(ctx context.Context, riderID int64) (rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetRider")
	defer span.End()

	rd, found, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("get rider %d: %w", riderID, err)
	}
	if !found {
		return rider.Rider{}, fmt.Errorf("%w: rider %d", ErrNotFound, riderID)
	}
	return rd, nil
}

func (s *ClubService) resolveClub(ctx context.Context, slug string) (club.Club, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return club.Club{}, fmt.Errorf("%w: club slug is required", ErrInvalidInput)
	}
	c, found, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club %s: %w", slug, err)
	}
	if !found {
		return club.Club{}, fmt.Errorf("%w: club %s", ErrNotFound, slug)
	}
	return c, nil
}
