package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/openvelo/clubraces/internal/usecase"
)

type Handler struct {
	clubService     *usecase.ClubService
	gradingService  *usecase.GradingService
	tallyService    *usecase.TallyService
	uploadService   *usecase.UploadService
	recalcService   *usecase.RecalcService
	scheduleService *usecase.ScheduleService
	rosterService   *usecase.RosterService
	dispatchService *usecase.DispatchService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	gradingService *usecase.GradingService,
	tallyService *usecase.TallyService,
	uploadService *usecase.UploadService,
	recalcService *usecase.RecalcService,
	scheduleService *usecase.ScheduleService,
	rosterService *usecase.RosterService,
	dispatchService *usecase.DispatchService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		clubService:     clubService,
		gradingService:  gradingService,
		tallyService:    tallyService,
		uploadService:   uploadService,
		recalcService:   recalcService,
		scheduleService: scheduleService,
		rosterService:   rosterService,
		dispatchService: dispatchService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
