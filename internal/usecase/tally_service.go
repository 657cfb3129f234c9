package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
)

// TallyService maintains point score tallies. Every credit goes through
// Append so the audit trail always explains the standing.
type TallyService struct {
	pointScoreRepo pointscore.Repository
	tallyRepo      pointscore.TallyRepository
	raceRepo       race.Repository
	resultRepo     race.ResultRepository
	promotion      *PromotionService
}

func NewTallyService(
	pointScoreRepo pointscore.Repository,
	tallyRepo pointscore.TallyRepository,
	raceRepo race.Repository,
	resultRepo race.ResultRepository,
	promotion *PromotionService,
) *TallyService {
	return &TallyService{
		pointScoreRepo: pointScoreRepo,
		tallyRepo:      tallyRepo,
		raceRepo:       raceRepo,
		resultRepo:     resultRepo,
		promotion:      promotion,
	}
}

// Tally scores one result against one point score. Results for races that
// are not part of the point score are ignored.
func (s *TallyService) Tally(ctx context.Context, pointScoreID int64, res race.Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TallyService.Tally")
	defer span.End()

	member, err := s.pointScoreRepo.ContainsRace(ctx, pointScoreID, res.RaceID)
	if err != nil {
		return fmt.Errorf("check point score membership: %w", err)
	}
	if !member {
		return nil
	}

	ps, found, err := s.pointScoreRepo.GetByID(ctx, pointScoreID)
	if err != nil {
		return fmt.Errorf("get point score %d: %w", pointScoreID, err)
	}
	if !found {
		return fmt.Errorf("%w: point score %d", ErrNotFound, pointScoreID)
	}

	rc, found, err := s.raceRepo.GetByID(ctx, res.RaceID)
	if err != nil {
		return fmt.Errorf("get race %d: %w", res.RaceID, err)
	}
	if !found {
		return fmt.Errorf("%w: race %d", ErrNotFound, res.RaceID)
	}

	return s.tallyResult(ctx, ps, rc, res)
}

func (s *TallyService) tallyResult(ctx context.Context, ps pointscore.PointScore, rc race.Race, res race.Result) error {
	fieldSize, err := s.resultRepo.CountByRaceAndGrade(ctx, res.RaceID, res.Grade)
	if err != nil {
		return fmt.Errorf("count field size: %w", err)
	}

	promotable := false
	if ps.Method == pointscore.MethodStandard && res.Placed() {
		promotable, err = s.promotion.IsPromotable(ctx, rc.ClubID, res.RiderID, rc.Date)
		if err != nil {
			return fmt.Errorf("check promotion: %w", err)
		}
	}

	points, reason := ps.Score(res, pointscore.ScoreContext{
		FieldSize:  fieldSize,
		Promotable: promotable,
		GradeOrder: rc.GradeOrder(),
	})

	if res.Grade == race.HelperGrade {
		tally, found, err := s.tallyRepo.Get(ctx, ps.ID, res.RiderID)
		if err != nil {
			return fmt.Errorf("get tally: %w", err)
		}
		if found && tally.EventCount > 0 {
			points = int(math.Round(float64(tally.Points) / float64(tally.EventCount)))
			reason = fmt.Sprintf("Helper %d", points)
		}
	}

	reason = reason + " : " + rc.Label()
	if err := s.tallyRepo.Append(ctx, ps.ID, res.RiderID, points, reason); err != nil {
		return fmt.Errorf("append tally event: %w", err)
	}
	return nil
}

// Recalculate rebuilds the point score's tallies from scratch. Races are
// replayed in date order and results in their stored order, so a rebuild
// from unchanged results reproduces the same standings.
func (s *TallyService) Recalculate(ctx context.Context, pointScoreID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TallyService.Recalculate")
	defer span.End()

	ps, found, err := s.pointScoreRepo.GetByID(ctx, pointScoreID)
	if err != nil {
		return fmt.Errorf("get point score %d: %w", pointScoreID, err)
	}
	if !found {
		return fmt.Errorf("%w: point score %d", ErrNotFound, pointScoreID)
	}

	if err := s.tallyRepo.DeleteByPointScore(ctx, pointScoreID); err != nil {
		return fmt.Errorf("clear tallies: %w", err)
	}

	races, err := s.pointScoreRepo.ListRaces(ctx, pointScoreID)
	if err != nil {
		return fmt.Errorf("list point score races: %w", err)
	}
	for _, rc := range races {
		results, err := s.resultRepo.ListByRace(ctx, rc.ID)
		if err != nil {
			return fmt.Errorf("list results for race %d: %w", rc.ID, err)
		}
		for _, res := range results {
			if err := s.tallyResult(ctx, ps, rc, res); err != nil {
				return err
			}
		}
	}
	return nil
}

// PointScore returns the definition behind a standings table.
func (s *TallyService) PointScore(ctx context.Context, pointScoreID int64) (pointscore.PointScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TallyService.PointScore")
	defer span.End()

	ps, found, err := s.pointScoreRepo.GetByID(ctx, pointScoreID)
	if err != nil {
		return pointscore.PointScore{}, fmt.Errorf("get point score %d: %w", pointScoreID, err)
	}
	if !found {
		return pointscore.PointScore{}, fmt.Errorf("%w: point score %d", ErrNotFound, pointScoreID)
	}
	return ps, nil
}

// Tabulate returns the standings, best first.
func (s *TallyService) Tabulate(ctx context.Context, pointScoreID int64) ([]pointscore.Tally, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TallyService.Tabulate")
	defer span.End()

	_, found, err := s.pointScoreRepo.GetByID(ctx, pointScoreID)
	if err != nil {
		return nil, fmt.Errorf("get point score %d: %w", pointScoreID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: point score %d", ErrNotFound, pointScoreID)
	}
	tallies, err := s.tallyRepo.List(ctx, pointScoreID)
	if err != nil {
		return nil, fmt.Errorf("list tallies: %w", err)
	}
	return tallies, nil
}

// Audit returns the rider's scoring history for the point score. Riders
// with no tally yield an empty history.
func (s *TallyService) Audit(ctx context.Context, pointScoreID, riderID int64) ([]pointscore.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TallyService.Audit")
	defer span.End()

	events, err := s.tallyRepo.Audit(ctx, pointScoreID, riderID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	if events == nil {
		events = []pointscore.Event{}
	}
	return events, nil
}
