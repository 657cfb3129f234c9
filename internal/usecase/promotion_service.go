package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

// PromotionConfig holds the thresholds for promotion eligibility.
type PromotionConfig struct {
	// WindowDays is how far back results count, strictly before the as-of
	// date.
	WindowDays int
	// WinThreshold is the number of wins that makes a rider promotable.
	WinThreshold int
	// PlaceThreshold is the number of top-three places that makes a rider
	// promotable.
	PlaceThreshold int
	// TopGrade is the grade riders cannot be promoted out of.
	TopGrade string
}

// DefaultPromotionConfig returns the standard thresholds.
func DefaultPromotionConfig() PromotionConfig {
	return PromotionConfig{
		WindowDays:     365,
		WinThreshold:   3,
		PlaceThreshold: 7,
		TopGrade:       "A",
	}
}

// PromotionService decides whether riders are due to move up a grade.
type PromotionService struct {
	gradeRepo  rider.GradeRepository
	resultRepo race.ResultRepository
	cfg        PromotionConfig
}

func NewPromotionService(gradeRepo rider.GradeRepository, resultRepo race.ResultRepository, cfg PromotionConfig) *PromotionService {
	if cfg.WindowDays <= 0 {
		cfg = DefaultPromotionConfig()
	}
	return &PromotionService{gradeRepo: gradeRepo, resultRepo: resultRepo, cfg: cfg}
}

// IsPromotable reports whether the rider had earned promotion out of their
// current grade for the club as of the given date. Only results ridden in
// the rider's current grade at that club's races count, within the
// configured window ending strictly before asOf.
func (s *PromotionService) IsPromotable(ctx context.Context, clubID, riderID int64, asOf time.Time) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PromotionService.IsPromotable")
	defer span.End()

	grade, found, err := s.gradeRepo.Get(ctx, clubID, riderID)
	if err != nil {
		return false, fmt.Errorf("get club grade: %w", err)
	}
	if !found || grade.Grade == s.cfg.TopGrade {
		return false, nil
	}

	since := asOf.AddDate(0, 0, -s.cfg.WindowDays)
	counts, err := s.resultRepo.PerformanceCounts(ctx, clubID, riderID, grade.Grade, since, asOf)
	if err != nil {
		return false, fmt.Errorf("count performances: %w", err)
	}
	return counts.Wins >= s.cfg.WinThreshold || counts.Places >= s.cfg.PlaceThreshold, nil
}
