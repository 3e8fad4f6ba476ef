package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter := r.URL.Query().Get("filter")
	items, err := h.statsService.ListDistinctPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "filter", filter, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerSummaryDTO{PlayerName: item.PlayerName, Seasons: item.Seasons})
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayerByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerByName")
	defer span.End()

	name := r.URL.Query().Get("name")
	items, err := h.statsService.GetPlayerCareer(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get player by name failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, playerSeasonsToDTO(items))
}

func (h *Handler) GetTeamSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSeasonStats")
	defer span.End()

	query := r.URL.Query()
	teamName := query.Get("team")
	season := query.Get("season")

	items, err := h.statsService.GetTeamSeasonStats(ctx, teamName, season)
	if err != nil {
		h.logger.WarnContext(ctx, "team season stats failed", "team", teamName, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, playerSeasonsToDTO(items))
}

func (h *Handler) RankPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RankPlayers")
	defer span.End()

	unit := stats.Unit(strings.TrimSpace(r.PathValue("unit")))
	query := r.URL.Query()

	filter := usecase.RankFilter{
		TeamName: query.Get("team"),
		Season:   query.Get("season"),
	}
	if raw := strings.TrimSpace(query.Get("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: size must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		filter.Size = size
	}

	ranking, err := h.statsService.RankByUnit(ctx, unit, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "ranking failed", "unit", string(unit), "error", err)
		writeError(ctx, w, err)
		return
	}

	if ranking.Season != "" {
		out := make([]seasonTotalDTO, 0, len(ranking.SeasonTotals))
		for _, item := range ranking.SeasonTotals {
			out = append(out, seasonTotalDTO{
				playerSeasonDTO: playerSeasonToDTO(item.PlayerSeason),
				Total:           item.Total,
			})
		}
		writeJSON(ctx, w, http.StatusOK, out)
		return
	}

	out := make([]careerTotalDTO, 0, len(ranking.CareerTotals))
	for _, item := range ranking.CareerTotals {
		out = append(out, careerTotalDTO{
			PlayerName: item.PlayerName,
			Total:      item.Total,
			Seasons:    item.Seasons,
		})
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

type createRecordRequest struct {
	PlayerName       string   `json:"player_name" validate:"required"`
	TeamAbbreviation string   `json:"team_abbreviation" validate:"required"`
	Age              float64  `json:"age"`
	PlayerHeight     float64  `json:"player_height"`
	PlayerWeight     float64  `json:"player_weight"`
	College          string   `json:"college"`
	Country          string   `json:"country" validate:"required"`
	DraftYear        *float64 `json:"draft_year"`
	DraftRound       *float64 `json:"draft_round"`
	DraftNumber      *float64 `json:"draft_number"`
	GP               float64  `json:"gp"`
	Pts              float64  `json:"pts"`
	Reb              float64  `json:"reb"`
	Ast              float64  `json:"ast"`
	Season           string   `json:"season" validate:"required"`
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRecord")
	defer span.End()

	var payload createRecordRequest
	if err := h.decodeRequest(ctx, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.statsService.CreateRecord(ctx, stats.PlayerSeason{
		PlayerName:       payload.PlayerName,
		TeamAbbreviation: payload.TeamAbbreviation,
		Age:              payload.Age,
		PlayerHeight:     payload.PlayerHeight,
		PlayerWeight:     payload.PlayerWeight,
		College:          payload.College,
		Country:          payload.Country,
		DraftYear:        payload.DraftYear,
		DraftRound:       payload.DraftRound,
		DraftNumber:      payload.DraftNumber,
		GP:               payload.GP,
		Pts:              payload.Pts,
		Reb:              payload.Reb,
		Ast:              payload.Ast,
		Season:           payload.Season,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create record failed", "player", payload.PlayerName, "season", payload.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, playerSeasonToDTO(stored))
}

type updateRecordRequest struct {
	ID               int64    `json:"id" validate:"required,gt=0"`
	PlayerName       *string  `json:"player_name"`
	TeamAbbreviation *string  `json:"team_abbreviation"`
	Age              *float64 `json:"age"`
	PlayerHeight     *float64 `json:"player_height"`
	PlayerWeight     *float64 `json:"player_weight"`
	College          *string  `json:"college"`
	Country          *string  `json:"country"`
	DraftYear        *float64 `json:"draft_year"`
	DraftRound       *float64 `json:"draft_round"`
	DraftNumber      *float64 `json:"draft_number"`
	GP               *float64 `json:"gp"`
	Pts              *float64 `json:"pts"`
	Reb              *float64 `json:"reb"`
	Ast              *float64 `json:"ast"`
	Season           *string  `json:"season"`
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRecord")
	defer span.End()

	var payload updateRecordRequest
	if err := h.decodeRequest(ctx, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.statsService.UpdateRecord(ctx, payload.ID, stats.UpdateFields{
		PlayerName:       payload.PlayerName,
		TeamAbbreviation: payload.TeamAbbreviation,
		Age:              payload.Age,
		PlayerHeight:     payload.PlayerHeight,
		PlayerWeight:     payload.PlayerWeight,
		College:          payload.College,
		Country:          payload.Country,
		DraftYear:        payload.DraftYear,
		DraftRound:       payload.DraftRound,
		DraftNumber:      payload.DraftNumber,
		GP:               payload.GP,
		Pts:              payload.Pts,
		Reb:              payload.Reb,
		Ast:              payload.Ast,
		Season:           payload.Season,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update record failed", "id", payload.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, playerSeasonToDTO(updated))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRecord")
	defer span.End()

	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: record id must be an integer", usecase.ErrInvalidInput))
		return
	}

	if err := h.statsService.DeleteRecord(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete record failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}
