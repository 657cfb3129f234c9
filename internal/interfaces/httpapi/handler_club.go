package httpapi

import (
	"net/http"
	"strings"
	"time"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.clubService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	c, err := h.clubService.GetClub(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "club_slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubToDTO(c))
}

func (h *Handler) GetClubStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubStatistics")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	stats, err := h.clubService.Statistics(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get club statistics failed", "club_slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubStatisticsDTO{
		CurrentMembers:  stats.CurrentMembers,
		RacesRun:        stats.RacesRun,
		ResultsRecorded: stats.ResultsRecorded,
	})
}

func (h *Handler) ListClubRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubRaces")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("clubSlug"))
	races, err := h.clubService.ListRaces(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list club races failed", "club_slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, rc := range races {
		items = append(items, raceToDTO(rc))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRaceResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceResults")
	defer span.End()

	raceID, err := parsePathID(r, "raceID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.clubService.ListResults(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "list race results failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, resultToDTO(res))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRider")
	defer span.End()

	riderID, err := parsePathID(r, "riderID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	v, err := h.clubService.GetRider(ctx, riderID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rider failed", "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riderToDTO(ctx, v, time.Now()))
}
