package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/openvelo/clubraces/internal/usecase"
)

type assignGradeRequest struct {
	Grade string `json:"grade" validate:"required,max=12"`
}

func (h *Handler) GetRiderGrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRiderGrade")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	riderID, err := parsePathID(r, "riderID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	grade, err := h.gradingService.Get(ctx, slug, riderID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rider grade failed", "club_slug", slug, "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradeToDTO(grade))
}

func (h *Handler) AssignRiderGrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignRiderGrade")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	riderID, err := parsePathID(r, "riderID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeAssignGradeRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grade, err := h.gradingService.Assign(ctx, slug, riderID, req.Grade)
	if err != nil {
		h.logger.WarnContext(ctx, "assign rider grade failed", "club_slug", slug, "rider_id", riderID, "grade", req.Grade, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gradeToDTO(grade))
}

func (h *Handler) ReplaceRiderGrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceRiderGrade")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	riderID, err := parsePathID(r, "riderID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeAssignGradeRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grade, err := h.gradingService.Replace(ctx, slug, riderID, req.Grade)
	if err != nil {
		h.logger.WarnContext(ctx, "replace rider grade failed", "club_slug", slug, "rider_id", riderID, "grade", req.Grade, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gradeToDTO(grade))
}

func decodeAssignGradeRequest(r *http.Request) (assignGradeRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req assignGradeRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return assignGradeRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return assignGradeRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
