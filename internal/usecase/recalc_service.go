package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/pointscore"
)

const defaultRecalcWorkers = 2

// RecalcInput selects the point scores to rebuild. Either explicit IDs or
// a club slug must be given.
type RecalcInput struct {
	ClubSlug      string
	PointScoreIDs []int64
	MaxWorkers    int
}

// RecalcTaskResult reports the outcome of one point score rebuild.
type RecalcTaskResult struct {
	PointScoreID int64  `json:"pointscoreId"`
	Status       string `json:"status"`
	DurationMs   int64  `json:"durationMs"`
	Message      string `json:"message,omitempty"`
}

// RecalcResult reports the outcome of one recalculation run.
type RecalcResult struct {
	TaskCount    int                `json:"taskCount"`
	SuccessCount int                `json:"successCount"`
	FailedCount  int                `json:"failedCount"`
	WorkerCount  int                `json:"workerCount"`
	Tasks        []RecalcTaskResult `json:"tasks"`
}

// RecalcService rebuilds point score tallies across a worker pool.
type RecalcService struct {
	clubRepo       club.Repository
	pointScoreRepo pointscore.Repository
	tally          *TallyService
	now            func() time.Time
}

func NewRecalcService(clubRepo club.Repository, pointScoreRepo pointscore.Repository, tally *TallyService, now func() time.Time) *RecalcService {
	if now == nil {
		now = time.Now
	}
	return &RecalcService{
		clubRepo:       clubRepo,
		pointScoreRepo: pointScoreRepo,
		tally:          tally,
		now:            now,
	}
}

// Recalculate rebuilds the selected point scores concurrently. Each point
// score is an independent task, so a failure in one does not stop the rest.
func (s *RecalcService) Recalculate(ctx context.Context, in RecalcInput) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Recalculate")
	defer span.End()

	targets, err := s.resolveTargets(ctx, in)
	if err != nil {
		return RecalcResult{}, err
	}
	if len(targets) == 0 {
		return RecalcResult{Tasks: []RecalcTaskResult{}}, nil
	}

	workerCount := normalizeRecalcWorkerCount(in.MaxWorkers, len(targets))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers      sync.WaitGroup
		successCount atomic.Int32
		failedCount  atomic.Int32
	)
	results := make(chan RecalcTaskResult, len(targets))

	for _, id := range targets {
		id := id
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			started := s.now()
			task := RecalcTaskResult{PointScoreID: id, Status: "success"}
			if err := s.tally.Recalculate(ctx, id); err != nil {
				task.Status = "failed"
				task.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			task.DurationMs = s.now().Sub(started).Milliseconds()
			results <- task
		})
		if submitErr != nil {
			workers.Done()
			failedCount.Add(1)
			results <- RecalcTaskResult{
				PointScoreID: id,
				Status:       "failed",
				Message:      fmt.Sprintf("submit task: %v", submitErr),
			}
		}
	}

	workers.Wait()
	close(results)

	tasks := make([]RecalcTaskResult, 0, len(targets))
	for task := range results {
		tasks = append(tasks, task)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].PointScoreID < tasks[j].PointScoreID
	})

	return RecalcResult{
		TaskCount:    len(tasks),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Tasks:        tasks,
	}, nil
}

func (s *RecalcService) resolveTargets(ctx context.Context, in RecalcInput) ([]int64, error) {
	if len(in.PointScoreIDs) > 0 {
		seen := map[int64]struct{}{}
		targets := make([]int64, 0, len(in.PointScoreIDs))
		for _, id := range in.PointScoreIDs {
			if id <= 0 {
				return nil, fmt.Errorf("%w: point score id %d", ErrInvalidInput, id)
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			targets = append(targets, id)
		}
		return targets, nil
	}

	slug := strings.ToLower(strings.TrimSpace(in.ClubSlug))
	if slug == "" {
		return nil, fmt.Errorf("%w: a club slug or point score ids are required", ErrInvalidInput)
	}
	c, found, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get club %s: %w", slug, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: club %s", ErrNotFound, slug)
	}
	pointScores, err := s.pointScoreRepo.ListByClub(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list point scores for club %s: %w", slug, err)
	}
	targets := make([]int64, 0, len(pointScores))
	for _, ps := range pointScores {
		targets = append(targets, ps.ID)
	}
	return targets, nil
}

func normalizeRecalcWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultRecalcWorkers
	}
	if count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
