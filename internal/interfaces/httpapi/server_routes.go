package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubSlug}", handler.GetClub)
	mux.HandleFunc("GET /v1/clubs/{clubSlug}/statistics", handler.GetClubStatistics)
	mux.HandleFunc("GET /v1/clubs/{clubSlug}/races", handler.ListClubRaces)
	mux.HandleFunc("GET /v1/clubs/{clubSlug}/riders/{riderID}/grade", handler.GetRiderGrade)
	mux.HandleFunc("POST /v1/clubs/{clubSlug}/riders/{riderID}/grade", handler.AssignRiderGrade)
	mux.HandleFunc("PUT /v1/clubs/{clubSlug}/riders/{riderID}/grade", handler.ReplaceRiderGrade)
	mux.HandleFunc("GET /v1/riders/{riderID}", handler.GetRider)
	mux.HandleFunc("GET /v1/races/{raceID}/results", handler.ListRaceResults)
	mux.HandleFunc("GET /v1/races/{raceID}/staff", handler.ListRaceStaff)
	mux.HandleFunc("POST /v1/raceresults", handler.UploadRaceResults)
	mux.HandleFunc("GET /v1/pointscores/{pointscoreID}", handler.GetPointScore)
	mux.HandleFunc("GET /v1/pointscores/{pointscoreID}/audit/{riderID}", handler.GetPointScoreAudit)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/pointscores/{pointscoreID}/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculatePointScore)))
	mux.Handle("POST /v1/internal/jobs/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculateJob)))
	mux.Handle("POST /v1/internal/jobs/harvest", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunHarvestJob)))
	mux.Handle("POST /v1/internal/jobs/races/{raceID}/staff/allocate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.AllocateRaceStaff)))
	mux.Handle("POST /v1/internal/jobs/dispatch", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDispatchJob)))
}
