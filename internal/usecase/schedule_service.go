package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/race"
)

const defaultHarvestWorkers = 4

// courseMatchThreshold is the minimum name similarity for a calendar
// event's location to be matched to a known course.
const courseMatchThreshold = 0.3

// ScheduleEvent is one event read from a club's calendar feed.
type ScheduleEvent struct {
	UID      string
	Title    string
	Location string
	Date     time.Time
}

// RaceFeedProvider fetches calendar events from a club's published feed.
type RaceFeedProvider interface {
	FetchEvents(ctx context.Context, feedURL string) ([]ScheduleEvent, error)
}

// HarvestInput controls a harvest run. An empty ClubSlug harvests every
// club with a feed URL.
type HarvestInput struct {
	ClubSlug   string
	MaxWorkers int
}

// HarvestClubResult reports one club's harvest outcome.
type HarvestClubResult struct {
	ClubSlug string `json:"clubSlug"`
	Status   string `json:"status"`
	Created  int    `json:"created"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message,omitempty"`
}

// HarvestResult reports one harvest run.
type HarvestResult struct {
	ClubCount    int                 `json:"clubCount"`
	CreatedCount int                 `json:"createdCount"`
	SkippedCount int                 `json:"skippedCount"`
	FailedCount  int                 `json:"failedCount"`
	Clubs        []HarvestClubResult `json:"clubs"`
}

// ScheduleService imports upcoming races from club calendar feeds. Events
// already imported are recognised by a hash over their identifying fields,
// so a harvest can be re-run safely.
type ScheduleService struct {
	clubRepo       club.Repository
	raceRepo       race.Repository
	courseRepo     race.CourseRepository
	feed           RaceFeedProvider
	defaultGrading string
}

func NewScheduleService(
	clubRepo club.Repository,
	raceRepo race.Repository,
	courseRepo race.CourseRepository,
	feed RaceFeedProvider,
	defaultGrading string,
) *ScheduleService {
	return &ScheduleService{
		clubRepo:       clubRepo,
		raceRepo:       raceRepo,
		courseRepo:     courseRepo,
		feed:           feed,
		defaultGrading: defaultGrading,
	}
}

// Harvest fetches each selected club's feed and creates draft races for
// events not seen before. Clubs are processed concurrently; one club's
// feed failure does not stop the others.
func (s *ScheduleService) Harvest(ctx context.Context, in HarvestInput) (HarvestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Harvest")
	defer span.End()

	if s.feed == nil {
		return HarvestResult{}, fmt.Errorf("%w: no calendar feed provider configured", ErrDependencyUnavailable)
	}

	targets, err := s.resolveTargets(ctx, in.ClubSlug)
	if err != nil {
		return HarvestResult{}, err
	}
	if len(targets) == 0 {
		return HarvestResult{Clubs: []HarvestClubResult{}}, nil
	}

	workers := in.MaxWorkers
	if workers <= 0 {
		workers = defaultHarvestWorkers
	}

	var (
		mu      sync.Mutex
		results = make([]HarvestClubResult, 0, len(targets))
	)
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for _, target := range targets {
		target := target
		p.Go(func(ctx context.Context) error {
			result := s.harvestClub(ctx, target)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return HarvestResult{}, fmt.Errorf("harvest clubs: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ClubSlug < results[j].ClubSlug
	})

	out := HarvestResult{ClubCount: len(results), Clubs: results}
	for _, r := range results {
		out.CreatedCount += r.Created
		out.SkippedCount += r.Skipped
		if r.Status == "failed" {
			out.FailedCount++
		}
	}
	return out, nil
}

func (s *ScheduleService) resolveTargets(ctx context.Context, slug string) ([]club.Club, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug != "" {
		c, found, err := s.clubRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("get club %s: %w", slug, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: club %s", ErrNotFound, slug)
		}
		if c.ICalURL == "" {
			return nil, fmt.Errorf("%w: club %s has no calendar feed", ErrInvalidInput, slug)
		}
		return []club.Club{c}, nil
	}

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	targets := make([]club.Club, 0, len(clubs))
	for _, c := range clubs {
		if c.ICalURL != "" {
			targets = append(targets, c)
		}
	}
	return targets, nil
}

func (s *ScheduleService) harvestClub(ctx context.Context, c club.Club) HarvestClubResult {
	result := HarvestClubResult{ClubSlug: c.Slug, Status: "success"}

	events, err := s.feed.FetchEvents(ctx, c.ICalURL)
	if err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("fetch feed: %v", err)
		return result
	}

	for _, event := range events {
		hash := eventContentHash(event)
		exists, err := s.raceRepo.ExistsByHash(ctx, c.ID, hash)
		if err != nil {
			result.Status = "failed"
			result.Message = fmt.Sprintf("check event %s: %v", event.UID, err)
			return result
		}
		if exists {
			result.Skipped++
			continue
		}

		course, err := s.matchCourse(ctx, event.Location)
		if err != nil {
			result.Status = "failed"
			result.Message = fmt.Sprintf("match course for event %s: %v", event.UID, err)
			return result
		}

		grading := c.Grading
		if grading == "" {
			grading = s.defaultGrading
		}
		_, err = s.raceRepo.Create(ctx, race.Race{
			ClubID:      c.ID,
			CourseID:    course.ID,
			Title:       event.Title,
			Date:        event.Date,
			Status:      race.StatusDraft,
			Grading:     grading,
			ExternalUID: event.UID,
			ContentHash: hash,
		})
		if err != nil {
			result.Status = "failed"
			result.Message = fmt.Sprintf("create race for event %s: %v", event.UID, err)
			return result
		}
		result.Created++
	}
	return result
}

// matchCourse finds the known course whose name best matches the event
// location, falling back to the catch-all unknown course.
func (s *ScheduleService) matchCourse(ctx context.Context, location string) (race.Course, error) {
	if strings.TrimSpace(location) != "" {
		courses, err := s.courseRepo.List(ctx)
		if err != nil {
			return race.Course{}, fmt.Errorf("list courses: %w", err)
		}
		var (
			best      race.Course
			bestScore float64
		)
		for _, course := range courses {
			score := race.CourseSimilarity(course.Name, location)
			if score > bestScore {
				best, bestScore = course, score
			}
		}
		if bestScore >= courseMatchThreshold {
			return best, nil
		}
	}

	unknown, found, err := s.courseRepo.GetByName(ctx, race.UnknownCourseName)
	if err != nil {
		return race.Course{}, fmt.Errorf("get unknown course: %w", err)
	}
	if found {
		return unknown, nil
	}
	unknown, err = s.courseRepo.Create(ctx, race.Course{Name: race.UnknownCourseName})
	if err != nil {
		return race.Course{}, fmt.Errorf("create unknown course: %w", err)
	}
	return unknown, nil
}

func eventContentHash(event ScheduleEvent) string {
	sum := sha256.Sum256([]byte(event.UID + "|" + event.Title + "|" + event.Location + "|" + event.Date.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])
}
