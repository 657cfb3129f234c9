package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

// GradingService manages the grade each rider holds per club.
type GradingService struct {
	clubRepo  club.Repository
	riderRepo rider.Repository
	gradeRepo rider.GradeRepository
}

func NewGradingService(clubRepo club.Repository, riderRepo rider.Repository, gradeRepo rider.GradeRepository) *GradingService {
	return &GradingService{clubRepo: clubRepo, riderRepo: riderRepo, gradeRepo: gradeRepo}
}

// Get returns the rider's grade for the club.
func (s *GradingService) Get(ctx context.Context, clubSlug string, riderID int64) (rider.ClubGrade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.Get")
	defer span.End()

	c, err := s.resolveClub(ctx, clubSlug)
	if err != nil {
		return rider.ClubGrade{}, err
	}
	g, found, err := s.gradeRepo.Get(ctx, c.ID, riderID)
	if err != nil {
		return rider.ClubGrade{}, fmt.Errorf("get grade: %w", err)
	}
	if !found {
		return rider.ClubGrade{}, fmt.Errorf("%w: rider %d has no grade for club %s", ErrNotFound, riderID, clubSlug)
	}
	return g, nil
}

// Assign gives the rider their initial grade for the club. A rider that is
// already graded keeps their grade and the call fails.
func (s *GradingService) Assign(ctx context.Context, clubSlug string, riderID int64, grade string) (rider.ClubGrade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.Assign")
	defer span.End()

	c, riderID, grade, err := s.validateGradeInput(ctx, clubSlug, riderID, grade)
	if err != nil {
		return rider.ClubGrade{}, err
	}
	g, err := s.gradeRepo.Create(ctx, rider.ClubGrade{ClubID: c.ID, RiderID: riderID, Grade: grade})
	if err != nil {
		if errors.Is(err, rider.ErrAlreadyGraded) {
			return rider.ClubGrade{}, fmt.Errorf("%w: rider %d already graded for club %s", ErrConflict, riderID, clubSlug)
		}
		return rider.ClubGrade{}, fmt.Errorf("assign grade: %w", err)
	}
	return g, nil
}

// Replace sets the rider's grade for the club, overwriting any held grade.
func (s *GradingService) Replace(ctx context.Context, clubSlug string, riderID int64, grade string) (rider.ClubGrade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.Replace")
	defer span.End()

	c, riderID, grade, err := s.validateGradeInput(ctx, clubSlug, riderID, grade)
	if err != nil {
		return rider.ClubGrade{}, err
	}
	g, err := s.gradeRepo.Replace(ctx, c.ID, riderID, grade)
	if err != nil {
		return rider.ClubGrade{}, fmt.Errorf("replace grade: %w", err)
	}
	return g, nil
}

func (s *GradingService) validateGradeInput(ctx context.Context, clubSlug string, riderID int64, grade string) (club.Club, int64, string, error) {
	grade = strings.TrimSpace(grade)
	if grade == "" || grade == race.HelperGrade {
		return club.Club{}, 0, "", fmt.Errorf("%w: grade %q is not assignable", ErrInvalidInput, grade)
	}
	c, err := s.resolveClub(ctx, clubSlug)
	if err != nil {
		return club.Club{}, 0, "", err
	}
	_, found, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return club.Club{}, 0, "", fmt.Errorf("get rider %d: %w", riderID, err)
	}
	if !found {
		return club.Club{}, 0, "", fmt.Errorf("%w: rider %d", ErrNotFound, riderID)
	}
	return c, riderID, grade, nil
}

func (s *GradingService) resolveClub(ctx context.Context, slug string) (club.Club, error) {
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
