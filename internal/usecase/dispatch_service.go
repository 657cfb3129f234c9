package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
)

// JobQueue schedules deferred work against the service's internal job
// endpoints.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

// NewNoopJobQueue returns a queue that drops every job. It stands in when
// no queue backend is configured.
func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// DispatchConfig controls how often the recurring maintenance jobs are
// scheduled per club.
type DispatchConfig struct {
	RecalcInterval  time.Duration
	HarvestInterval time.Duration
}

// DispatchInput selects which clubs to schedule jobs for. An empty
// ClubSlug dispatches for every club.
type DispatchInput struct {
	ClubSlug string
	Force    bool
}

// DispatchResult reports what one dispatch run queued.
type DispatchResult struct {
	ClubCount        int      `json:"clubCount"`
	QueuedCount      int      `json:"queuedCount"`
	QueuedOperations []string `json:"queuedOperations"`
}

// DispatchService queues the recurring standings recalculation and
// calendar harvest jobs. Deduplication IDs are derived from the interval
// window, so hitting the dispatch endpoint more often than the interval
// does not multiply the work.
type DispatchService struct {
	clubRepo club.Repository
	queue    JobQueue
	cfg      DispatchConfig
	now      func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewDispatchService(clubRepo club.Repository, queue JobQueue, cfg DispatchConfig, now func() time.Time) *DispatchService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if cfg.RecalcInterval <= 0 {
		cfg.RecalcInterval = time.Hour
	}
	if cfg.HarvestInterval <= 0 {
		cfg.HarvestInterval = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &DispatchService{
		clubRepo: clubRepo,
		queue:    queue,
		cfg:      cfg,
		now:      now,
	}
}

// Dispatch queues a recalculation job for every selected club, and a
// harvest job for those that publish a calendar feed.
func (s *DispatchService) Dispatch(ctx context.Context, in DispatchInput) (DispatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DispatchService.Dispatch")
	defer span.End()

	clubs, err := s.pickClubs(ctx, in.ClubSlug)
	if err != nil {
		return DispatchResult{}, err
	}

	now := s.now().UTC()
	result := DispatchResult{
		ClubCount:        len(clubs),
		QueuedOperations: make([]string, 0, len(clubs)*2),
	}

	for _, c := range clubs {
		payload := map[string]string{"clubSlug": c.Slug}

		dedup := ""
		if !in.Force {
			dedup = dedupID("recalculate", c.Slug, now, s.cfg.RecalcInterval)
		}
		if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/recalculate", payload, 0, dedup); err != nil {
			return DispatchResult{}, fmt.Errorf("queue recalculate for club %s: %w", c.Slug, err)
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "recalculate:"+c.Slug)

		if c.ICalURL == "" {
			continue
		}
		dedup = ""
		if !in.Force {
			dedup = dedupID("harvest", c.Slug, now, s.cfg.HarvestInterval)
		}
		if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/harvest", payload, 0, dedup); err != nil {
			return DispatchResult{}, fmt.Errorf("queue harvest for club %s: %w", c.Slug, err)
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "harvest:"+c.Slug)
	}

	return result, nil
}

func (s *DispatchService) pickClubs(ctx context.Context, slug string) ([]club.Club, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		clubs, err := s.clubRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list clubs for dispatch: %w", err)
		}
		return clubs, nil
	}

	c, found, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get club %s: %w", slug, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: club %s", ErrNotFound, slug)
	}
	return []club.Club{c}, nil
}

func dedupID(job, slug string, now time.Time, window time.Duration) string {
	bucket := now.Truncate(window).Unix()
	raw := fmt.Sprintf("%s-%s-%d", job, slug, bucket)
	return dedupUnsafeCharRegex.ReplaceAllString(raw, "-")
}
