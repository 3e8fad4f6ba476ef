package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/platform/logging"
	"github.com/hooplytics/nba-stats-api/internal/usecase"
)

type Handler struct {
	statsService *usecase.StatsService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(statsService *usecase.StatsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		statsService: statsService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerSeasonDTO struct {
	ID               int64     `json:"id"`
	PlayerName       string    `json:"player_name"`
	TeamAbbreviation string    `json:"team_abbreviation"`
	Age              float64   `json:"age"`
	PlayerHeight     float64   `json:"player_height"`
	PlayerWeight     float64   `json:"player_weight"`
	College          string    `json:"college,omitempty"`
	Country          string    `json:"country"`
	DraftYear        *float64  `json:"draft_year"`
	DraftRound       *float64  `json:"draft_round"`
	DraftNumber      *float64  `json:"draft_number"`
	GP               float64   `json:"gp"`
	Pts              float64   `json:"pts"`
	Reb              float64   `json:"reb"`
	Ast              float64   `json:"ast"`
	Season           string    `json:"season"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type playerSummaryDTO struct {
	PlayerName string   `json:"player_name"`
	Seasons    []string `json:"seasons"`
}

type seasonTotalDTO struct {
	playerSeasonDTO
	Total float64 `json:"total"`
}

type careerTotalDTO struct {
	PlayerName string   `json:"player_name"`
	Total      float64  `json:"total"`
	Seasons    []string `json:"seasons"`
}

func playerSeasonToDTO(item stats.PlayerSeason) playerSeasonDTO {
	return playerSeasonDTO{
		ID:               item.ID,
		PlayerName:       item.PlayerName,
		TeamAbbreviation: item.TeamAbbreviation,
		Age:              item.Age,
		PlayerHeight:     item.PlayerHeight,
		PlayerWeight:     item.PlayerWeight,
		College:          item.College,
		Country:          item.Country,
		DraftYear:        item.DraftYear,
		DraftRound:       item.DraftRound,
		DraftNumber:      item.DraftNumber,
		GP:               item.GP,
		Pts:              item.Pts,
		Reb:              item.Reb,
		Ast:              item.Ast,
		Season:           item.Season,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func playerSeasonsToDTO(items []stats.PlayerSeason) []playerSeasonDTO {
	out := make([]playerSeasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerSeasonToDTO(item))
	}
	return out
}
