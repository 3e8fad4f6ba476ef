package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/byName", handler.GetPlayerByName)
	mux.HandleFunc("POST /api/players", handler.CreateRecord)
	mux.HandleFunc("PUT /api/players", handler.UpdateRecord)
	mux.HandleFunc("DELETE /api/players/{id}", handler.DeleteRecord)
	mux.HandleFunc("GET /api/players/stats", handler.GetTeamSeasonStats)
	mux.HandleFunc("GET /api/players/ranks/{unit}", handler.RankPlayers)
	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/seasons", handler.ListSeasons)
}
