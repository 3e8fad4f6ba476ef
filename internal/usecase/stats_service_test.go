package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/infrastructure/repository/memory"
)

func newStatsService(t *testing.T) (*StatsService, *memory.StatsRepository) {
	t.Helper()
	repo := memory.NewStatsRepository(memory.SeedPlayerSeasons())
	return NewStatsService(repo), repo
}

func TestListDistinctPlayersFiltersByName(t *testing.T) {
	service, _ := newStatsService(t)

	items, err := service.ListDistinctPlayers(context.Background(), "curry")
	if err != nil {
		t.Fatalf("ListDistinctPlayers: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 player, got %d", len(items))
	}
	if items[0].PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected player %q", items[0].PlayerName)
	}
}

func TestListDistinctPlayersGroupsSeasons(t *testing.T) {
	service, _ := newStatsService(t)

	items, err := service.ListDistinctPlayers(context.Background(), "kobe")
	if err != nil {
		t.Fatalf("ListDistinctPlayers: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 player, got %d", len(items))
	}
	if len(items[0].Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %v", items[0].Seasons)
	}
}

func TestGetPlayerCareerBlankNameIsEmptyList(t *testing.T) {
	service, _ := newStatsService(t)

	items, err := service.GetPlayerCareer(context.Background(), "  ")
	if err != nil {
		t.Fatalf("GetPlayerCareer: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(items))
	}
}

func TestGetPlayerCareerOrdersSeasonsDescending(t *testing.T) {
	service, _ := newStatsService(t)

	items, err := service.GetPlayerCareer(context.Background(), "Kobe Bryant")
	if err != nil {
		t.Fatalf("GetPlayerCareer: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(items))
	}
	if items[0].Season != "2015-16" || items[1].Season != "2014-15" {
		t.Fatalf("unexpected order: %s, %s", items[0].Season, items[1].Season)
	}
}

func TestGetTeamSeasonStatsResolvesTeamBeforeSeason(t *testing.T) {
	service, _ := newStatsService(t)

	// Unknown team wins over the missing season.
	_, err := service.GetTeamSeasonStats(context.Background(), "Space Jam Monstars", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "unknown team") {
		t.Fatalf("expected unknown team error, got %q", got)
	}

	_, err = service.GetTeamSeasonStats(context.Background(), "Los Angeles Lakers", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "season is required") {
		t.Fatalf("expected season error, got %q", got)
	}

	// A missing team has its own message, distinct from an unknown one.
	_, err = service.GetTeamSeasonStats(context.Background(), "  ", "2015-16")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "team name is required") {
		t.Fatalf("expected missing team error, got %q", got)
	}
}

func TestGetTeamSeasonStats(t *testing.T) {
	service, _ := newStatsService(t)

	items, err := service.GetTeamSeasonStats(context.Background(), "los angeles lakers", "2015-16")
	if err != nil {
		t.Fatalf("GetTeamSeasonStats: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(items))
	}
	if items[0].PlayerName != "Kobe Bryant" {
		t.Fatalf("unexpected player %q", items[0].PlayerName)
	}
}

func TestRankByUnitRejectsUnknownUnit(t *testing.T) {
	service, _ := newStatsService(t)

	_, err := service.RankByUnit(context.Background(), stats.Unit("blocks"), RankFilter{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRankByUnitPerSeason(t *testing.T) {
	service, _ := newStatsService(t)

	ranking, err := service.RankByUnit(context.Background(), stats.UnitPoints, RankFilter{Season: "2015-16", Size: 2})
	if err != nil {
		t.Fatalf("RankByUnit: %v", err)
	}
	if ranking.CareerTotals != nil {
		t.Fatal("per-season ranking must not carry career totals")
	}
	if len(ranking.SeasonTotals) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ranking.SeasonTotals))
	}
	// Curry 30.1 * 79 beats LeBron 25.3 * 76.
	if ranking.SeasonTotals[0].PlayerName != "Stephen Curry" {
		t.Fatalf("unexpected leader %q", ranking.SeasonTotals[0].PlayerName)
	}
	want := 30.1 * 79
	if got := ranking.SeasonTotals[0].Total; got != want {
		t.Fatalf("expected total %v, got %v", want, got)
	}
}

func TestRankByUnitAllTimeAggregatesCareer(t *testing.T) {
	service, _ := newStatsService(t)

	ranking, err := service.RankByUnit(context.Background(), stats.UnitPoints, RankFilter{TeamName: "Los Angeles Lakers"})
	if err != nil {
		t.Fatalf("RankByUnit: %v", err)
	}
	if ranking.Season != "" {
		t.Fatalf("all-time ranking must not carry a season, got %q", ranking.Season)
	}
	if len(ranking.CareerTotals) != 2 {
		t.Fatalf("expected 2 players, got %d", len(ranking.CareerTotals))
	}
	// Kobe's two LAL seasons combine into one career row.
	if ranking.CareerTotals[0].PlayerName != "Kobe Bryant" {
		t.Fatalf("unexpected leader %q", ranking.CareerTotals[0].PlayerName)
	}
	want := 17.6*66 + 22.3*35
	if got := ranking.CareerTotals[0].Total; got != want {
		t.Fatalf("expected total %v, got %v", want, got)
	}
	if len(ranking.CareerTotals[0].Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %v", ranking.CareerTotals[0].Seasons)
	}
}

func TestRankByUnitDefaultsSize(t *testing.T) {
	repo := memory.NewStatsRepository(nil)
	for i := 0; i < 15; i++ {
		record := memory.SeedPlayerSeasons()[0]
		record.PlayerName = record.PlayerName + string(rune('A'+i))
		if _, err := repo.Insert(context.Background(), record); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	service := NewStatsService(repo)

	ranking, err := service.RankByUnit(context.Background(), stats.UnitPoints, RankFilter{Season: "2015-16"})
	if err != nil {
		t.Fatalf("RankByUnit: %v", err)
	}
	if len(ranking.SeasonTotals) != defaultRankSize {
		t.Fatalf("expected %d rows, got %d", defaultRankSize, len(ranking.SeasonTotals))
	}
}

func TestListTeamsReturnsFullTable(t *testing.T) {
	service, _ := newStatsService(t)

	teams, err := service.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 30 {
		t.Fatalf("expected 30 teams, got %d", len(teams))
	}
}

func TestListSeasonsDescending(t *testing.T) {
	service, _ := newStatsService(t)

	seasons, err := service.ListSeasons(context.Background())
	if err != nil {
		t.Fatalf("ListSeasons: %v", err)
	}
	if len(seasons) != 4 {
		t.Fatalf("expected 4 seasons, got %v", seasons)
	}
	if seasons[0] != "2018-19" || seasons[len(seasons)-1] != "2005-06" {
		t.Fatalf("unexpected order: %v", seasons)
	}
}

func TestCreateRecordRejectsDuplicate(t *testing.T) {
	service, _ := newStatsService(t)

	record := memory.SeedPlayerSeasons()[0]
	_, err := service.CreateRecord(context.Background(), record)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateRecordValidatesInput(t *testing.T) {
	service, _ := newStatsService(t)

	record := memory.SeedPlayerSeasons()[0]
	record.PlayerName = "   "
	if _, err := service.CreateRecord(context.Background(), record); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateRecordStoresNewSeason(t *testing.T) {
	service, repo := newStatsService(t)
	before := repo.Len()

	record := memory.SeedPlayerSeasons()[0]
	record.Season = "2019-20"
	record.TeamAbbreviation = "LAL"
	stored, err := service.CreateRecord(context.Background(), record)
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if repo.Len() != before+1 {
		t.Fatalf("expected %d records, got %d", before+1, repo.Len())
	}
}

func TestUpdateRecord(t *testing.T) {
	service, _ := newStatsService(t)

	pts := 31.5
	updated, err := service.UpdateRecord(context.Background(), 3, stats.UpdateFields{Pts: &pts})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if updated.Pts != pts {
		t.Fatalf("expected pts %v, got %v", pts, updated.Pts)
	}

	if _, err := service.UpdateRecord(context.Background(), 3, stats.UpdateFields{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty update, got %v", err)
	}
	if _, err := service.UpdateRecord(context.Background(), 9999, stats.UpdateFields{Pts: &pts}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	service, repo := newStatsService(t)
	before := repo.Len()

	if err := service.DeleteRecord(context.Background(), 1); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if repo.Len() != before-1 {
		t.Fatalf("expected %d records, got %d", before-1, repo.Len())
	}
	if err := service.DeleteRecord(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := service.DeleteRecord(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// unavailableRepo fails every store call, standing in for a database that
// cannot be reached.
type unavailableRepo struct {
	err error
}

func (r unavailableRepo) ListDistinctPlayers(context.Context, string) ([]stats.PlayerSummary, error) {
	return nil, r.err
}

func (r unavailableRepo) ListByPlayerName(context.Context, string) ([]stats.PlayerSeason, error) {
	return nil, r.err
}

func (r unavailableRepo) ListByTeamAndSeason(context.Context, []string, string) ([]stats.PlayerSeason, error) {
	return nil, r.err
}

func (r unavailableRepo) RankPerSeason(context.Context, stats.Unit, string, []string, int) ([]stats.SeasonTotal, error) {
	return nil, r.err
}

func (r unavailableRepo) RankAllTime(context.Context, stats.Unit, []string, int) ([]stats.CareerTotal, error) {
	return nil, r.err
}

func (r unavailableRepo) ListSeasons(context.Context) ([]string, error) {
	return nil, r.err
}

func (r unavailableRepo) GetByPlayerAndSeason(context.Context, string, string) (stats.PlayerSeason, bool, error) {
	return stats.PlayerSeason{}, false, r.err
}

func (r unavailableRepo) Insert(context.Context, stats.PlayerSeason) (stats.PlayerSeason, error) {
	return stats.PlayerSeason{}, r.err
}

func (r unavailableRepo) Update(context.Context, int64, stats.UpdateFields) (stats.PlayerSeason, bool, error) {
	return stats.PlayerSeason{}, false, r.err
}

func (r unavailableRepo) Delete(context.Context, int64) (bool, error) {
	return false, r.err
}

func (r unavailableRepo) DeleteAll(context.Context) (int64, error) {
	return 0, r.err
}

func (r unavailableRepo) InsertBatch(context.Context, []stats.PlayerSeason) error {
	return r.err
}

func TestStoreFailuresMapToDependencyUnavailable(t *testing.T) {
	service := NewStatsService(unavailableRepo{err: errors.New("connection refused")})
	ctx := context.Background()

	if _, err := service.ListSeasons(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("ListSeasons: expected ErrDependencyUnavailable, got %v", err)
	}
	if _, err := service.GetTeamSeasonStats(ctx, "Golden State Warriors", "2015-16"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("GetTeamSeasonStats: expected ErrDependencyUnavailable, got %v", err)
	}
	if err := service.DeleteRecord(ctx, 1); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("DeleteRecord: expected ErrDependencyUnavailable, got %v", err)
	}
}
