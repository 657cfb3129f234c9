package httpapi

import (
	"net/http"
)

func (h *Handler) GetPointScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointScore")
	defer span.End()

	pointScoreID, err := parsePathID(r, "pointscoreID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ps, err := h.tallyService.PointScore(ctx, pointScoreID)
	if err != nil {
		h.logger.WarnContext(ctx, "get point score failed", "pointscore_id", pointScoreID, "error", err)
		writeError(ctx, w, err)
		return
	}

	tallies, err := h.tallyService.Tabulate(ctx, pointScoreID)
	if err != nil {
		h.logger.WarnContext(ctx, "tabulate point score failed", "pointscore_id", pointScoreID, "error", err)
		writeError(ctx, w, err)
		return
	}

	standings := make([]tallyDTO, 0, len(tallies))
	for _, t := range tallies {
		standings = append(standings, tallyToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, standingsDTO{
		PointScore: pointScoreToDTO(ps),
		Standings:  standings,
	})
}

func (h *Handler) GetPointScoreAudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointScoreAudit")
	defer span.End()

	pointScoreID, err := parsePathID(r, "pointscoreID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	riderID, err := parsePathID(r, "riderID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.tallyService.Audit(ctx, pointScoreID, riderID)
	if err != nil {
		h.logger.WarnContext(ctx, "audit point score failed", "pointscore_id", pointScoreID, "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, scoreEventDTO{
			Seq:    event.Seq,
			Points: event.Points,
			Reason: event.Reason,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, auditDTO{
		PointScoreID: pointScoreID,
		RiderID:      riderID,
		Events:       items,
	})
}
