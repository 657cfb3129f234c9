package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/openvelo/clubraces/internal/usecase"
)

type recalcJobRequest struct {
	ClubSlug      string  `json:"clubSlug"`
	PointScoreIDs []int64 `json:"pointscoreIds"`
	MaxWorkers    int     `json:"maxWorkers" validate:"gte=0,lte=64"`
}

type harvestJobRequest struct {
	ClubSlug   string `json:"clubSlug"`
	MaxWorkers int    `json:"maxWorkers" validate:"gte=0,lte=64"`
}

type dispatchJobRequest struct {
	ClubSlug string `json:"clubSlug"`
	Force    bool   `json:"force"`
}

func (h *Handler) RunRecalculateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateJob")
	defer span.End()

	if h.recalcService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recalc service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req recalcJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recalcService.Recalculate(ctx, usecase.RecalcInput{
		ClubSlug:      req.ClubSlug,
		PointScoreIDs: req.PointScoreIDs,
		MaxWorkers:    req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run recalculate job failed", "club_slug", req.ClubSlug, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recalculate job finished",
		"club_slug", req.ClubSlug,
		"tasks", result.TaskCount,
		"failed", result.FailedCount,
	)

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RecalculatePointScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculatePointScore")
	defer span.End()

	if h.recalcService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recalc service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	pointScoreID, err := parsePathID(r, "pointscoreID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recalcService.Recalculate(ctx, usecase.RecalcInput{
		PointScoreIDs: []int64{pointScoreID},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate point score failed", "pointscore_id", pointScoreID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunHarvestJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunHarvestJob")
	defer span.End()

	if h.scheduleService == nil {
		writeError(ctx, w, fmt.Errorf("%w: schedule service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req harvestJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scheduleService.Harvest(ctx, usecase.HarvestInput{
		ClubSlug:   req.ClubSlug,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run harvest job failed", "club_slug", req.ClubSlug, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "harvest job finished",
		"club_slug", req.ClubSlug,
		"clubs", result.ClubCount,
		"created", result.CreatedCount,
		"failed", result.FailedCount,
	)

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunDispatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDispatchJob")
	defer span.End()

	if h.dispatchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: dispatch service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req dispatchJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.dispatchService.Dispatch(ctx, usecase.DispatchInput{
		ClubSlug: req.ClubSlug,
		Force:    req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run dispatch job failed", "club_slug", req.ClubSlug, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "dispatch job finished",
		"club_slug", req.ClubSlug,
		"clubs", result.ClubCount,
		"queued", result.QueuedCount,
	)

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListRaceStaff(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceStaff")
	defer span.End()

	raceID, err := parsePathID(r, "raceID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	staff, err := h.rosterService.ListStaff(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "list race staff failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]staffDTO, 0, len(staff))
	for _, member := range staff {
		items = append(items, staffToDTO(member))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AllocateRaceStaff(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllocateRaceStaff")
	defer span.End()

	if h.rosterService == nil {
		writeError(ctx, w, fmt.Errorf("%w: roster service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	raceID, err := parsePathID(r, "raceID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	staff, err := h.rosterService.Allocate(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "allocate race staff failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]staffDTO, 0, len(staff))
	for _, member := range staff {
		items = append(items, staffToDTO(member))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func decodeJobRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
