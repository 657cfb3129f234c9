package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/openvelo/clubraces/internal/usecase"
)

// riderRefDTO accepts either a numeric rider ID or a temporary
// identifier string such as "ID123".
type riderRefDTO struct {
	ref usecase.RiderRef
}

func (d *riderRefDTO) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var value string
		if err := sonic.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("%w: invalid rider reference: %v", usecase.ErrInvalidInput, err)
		}
		ref, err := usecase.ParseRiderRef(value)
		if err != nil {
			return err
		}
		d.ref = ref
		return nil
	}

	var id int64
	if err := sonic.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("%w: invalid rider reference: %v", usecase.ErrInvalidInput, err)
	}
	d.ref = usecase.RiderRef{ID: id}
	return nil
}

type uploadRiderRequest struct {
	Ref        riderRefDTO `json:"id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	LicenceNo  string      `json:"licenceNo"`
	Club       string      `json:"club"`
	Grade      string      `json:"grade"`
	MemberDate string      `json:"memberDate"`
	DOB        string      `json:"dob"`
	Gender     string      `json:"gender"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
}

type uploadEntryRequest struct {
	Rider       riderRefDTO `json:"rider"`
	Grade       string      `json:"grade"`
	Number      *int        `json:"number"`
	Place       int         `json:"place"`
	DNF         bool        `json:"dnf"`
	GradeChange bool        `json:"gradeChange"`
}

type uploadRequest struct {
	RaceID  int64                `json:"raceId" validate:"required,gt=0"`
	Riders  []uploadRiderRequest `json:"riders"`
	Entries []uploadEntryRequest `json:"entries" validate:"required,min=1"`
}

type uploadSummaryDTO struct {
	Message  string           `json:"message"`
	Errors   []string         `json:"errors,omitempty"`
	RiderMap map[string]int64 `json:"riderMap,omitempty"`
}

func (h *Handler) UploadRaceResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadRaceResults")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	req, err := decodeUploadRequest(body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.uploadService.Upload(ctx, uploadRequestToInput(req, body))
	if err != nil {
		h.logger.WarnContext(ctx, "upload race results failed", "race_id", req.RaceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "race results uploaded",
		"race_id", req.RaceID,
		"entries", len(req.Entries),
		"warnings", len(summary.Errors),
	)

	writeSuccess(ctx, w, http.StatusOK, uploadSummaryDTO{
		Message:  summary.Message,
		Errors:   summary.Errors,
		RiderMap: summary.RiderMap,
	})
}

func decodeUploadRequest(body []byte) (uploadRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var req uploadRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return uploadRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		if errors.Is(err, usecase.ErrInvalidInput) {
			return uploadRequest{}, err
		}
		return uploadRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func uploadRequestToInput(req uploadRequest, body []byte) usecase.UploadInput {
	riders := make([]usecase.UploadRider, 0, len(req.Riders))
	for _, ur := range req.Riders {
		riders = append(riders, usecase.UploadRider{
			Ref:        ur.Ref.ref,
			FirstName:  ur.FirstName,
			LastName:   ur.LastName,
			LicenceNo:  ur.LicenceNo,
			ClubSlug:   ur.Club,
			Grade:      ur.Grade,
			MemberDate: ur.MemberDate,
			DOB:        ur.DOB,
			Gender:     ur.Gender,
			Phone:      ur.Phone,
			Email:      ur.Email,
		})
	}

	entries := make([]usecase.UploadEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, usecase.UploadEntry{
			Rider:       entry.Rider.ref,
			Grade:       entry.Grade,
			Number:      entry.Number,
			Place:       entry.Place,
			DNF:         entry.DNF,
			GradeChange: entry.GradeChange,
		})
	}

	return usecase.UploadInput{
		RaceID:     req.RaceID,
		Riders:     riders,
		Entries:    entries,
		RawPayload: string(body),
	}
}
