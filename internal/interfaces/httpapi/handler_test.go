package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/hooplytics/nba-stats-api/internal/infrastructure/repository/memory"
	"github.com/hooplytics/nba-stats-api/internal/platform/logging"
	"github.com/hooplytics/nba-stats-api/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := memory.NewStatsRepository(memory.SeedPlayerSeasons())
	service := usecase.NewStatsService(repo)
	handler := NewHandler(service, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := sonic.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	msg, ok := body["error"]
	if !ok {
		t.Fatalf("expected error key in body %q", rec.Body.String())
	}
	return msg
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListPlayers(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []playerSummaryDTO
	decodeBody(t, rec, &body)
	if len(body) != 4 {
		t.Fatalf("expected 4 distinct players, got %d", len(body))
	}
}

func TestListPlayersWithFilter(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players?filter=curry", "")

	var body []playerSummaryDTO
	decodeBody(t, rec, &body)
	if len(body) != 1 || body[0].PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetPlayerByNameUnknownIsEmptyList(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/byName?name=Nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []playerSeasonDTO
	decodeBody(t, rec, &body)
	if len(body) != 0 {
		t.Fatalf("expected empty list, got %+v", body)
	}
}

func TestGetPlayerByNameMissingNameIsEmptyList(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/byName", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []playerSeasonDTO
	decodeBody(t, rec, &body)
	if len(body) != 0 {
		t.Fatalf("expected empty list, got %+v", body)
	}
}

func TestTeamStatsValidatesTeamBeforeSeason(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/players/stats?team=Monstars", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "unknown team") {
		t.Fatalf("expected unknown team message, got %q", msg)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/players/stats?team=Detroit%20Pistons", "")
	if msg := errorMessage(t, rec); !strings.Contains(msg, "season is required") {
		t.Fatalf("expected season message, got %q", msg)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/players/stats?season=2015-16", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "team name is required") {
		t.Fatalf("expected missing team message, got %q", msg)
	}
}

func TestTeamStats(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/stats?team=golden+state+warriors&season=2015-16", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body []playerSeasonDTO
	decodeBody(t, rec, &body)
	if len(body) != 1 || body[0].PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRankInvalidUnit(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/ranks/blocks", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRankPerSeason(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/ranks/pts?season=2015-16&size=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body []seasonTotalDTO
	decodeBody(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(body))
	}
	if body[0].PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected leader: %+v", body[0])
	}
	if body[0].Total <= body[1].Total {
		t.Fatalf("expected descending totals: %v, %v", body[0].Total, body[1].Total)
	}
}

func TestRankAllTime(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/ranks/pts?team=Los+Angeles+Lakers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body []careerTotalDTO
	decodeBody(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("expected 2 players, got %d", len(body))
	}
	if body[0].PlayerName != "Kobe Bryant" || len(body[0].Seasons) != 2 {
		t.Fatalf("unexpected leader: %+v", body[0])
	}
}

func TestRankRejectsBadSize(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/players/ranks/pts?size=lots", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListTeams(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/teams", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []map[string]any
	decodeBody(t, rec, &body)
	if len(body) != 30 {
		t.Fatalf("expected 30 teams, got %d", len(body))
	}
	if _, ok := body[0]["abbr"]; !ok {
		t.Fatalf("expected abbr key, got %+v", body[0])
	}
}

func TestListSeasons(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/seasons", "")

	var body []string
	decodeBody(t, rec, &body)
	if len(body) != 4 || body[0] != "2018-19" {
		t.Fatalf("unexpected seasons: %v", body)
	}
}

func TestCreateRecord(t *testing.T) {
	router := newTestRouter(t)
	payload := `{"player_name":"Tim Duncan","team_abbreviation":"SAS","age":39,"player_height":211,"player_weight":113,"college":"Wake Forest","country":"USA","draft_year":1997,"draft_round":1,"draft_number":1,"gp":61,"pts":8.6,"reb":7.3,"ast":2.7,"season":"2015-16"}`

	rec := doRequest(t, router, http.MethodPost, "/api/players", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body playerSeasonDTO
	decodeBody(t, rec, &body)
	if body.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if body.PlayerName != "Tim Duncan" {
		t.Fatalf("unexpected body: %+v", body)
	}

	// Same player and season again is a duplicate.
	rec = doRequest(t, router, http.MethodPost, "/api/players", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "already exists") {
		t.Fatalf("expected duplicate message, got %q", msg)
	}
}

func TestCreateRecordValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/players", `{"team_abbreviation":"SAS"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/players", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/players", `{"id":3,"pts":31.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body playerSeasonDTO
	decodeBody(t, rec, &body)
	if body.Pts != 31.5 {
		t.Fatalf("expected pts 31.5, got %v", body.Pts)
	}
	// Untouched fields keep their stored values.
	if body.PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected player: %+v", body)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/players", `{"pts":31.5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/players", `{"id":9999,"pts":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown id, got %d", rec.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/api/players/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/players/1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing record, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/players/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
