package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/domain/team"
)

const defaultRankSize = 10

// RankFilter narrows a leaderboard query. TeamName and Season are
// optional; Size falls back to defaultRankSize when unset.
type RankFilter struct {
	TeamName string
	Season   string
	Size     int
}

// Ranking carries either per-season rows or career aggregates, never
// both. Season is empty for all-time rankings.
type Ranking struct {
	Unit         stats.Unit
	Season       string
	SeasonTotals []stats.SeasonTotal
	CareerTotals []stats.CareerTotal
}

type StatsService struct {
	statsRepo stats.Repository
}

func NewStatsService(statsRepo stats.Repository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

func (s *StatsService) ListDistinctPlayers(ctx context.Context, nameFilter string) ([]stats.PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListDistinctPlayers")
	defer span.End()

	items, err := s.statsRepo.ListDistinctPlayers(ctx, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, storeError("list distinct players", err)
	}

	return items, nil
}

func (s *StatsService) GetPlayerCareer(ctx context.Context, playerName string) ([]stats.PlayerSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetPlayerCareer")
	defer span.End()

	// A blank name is not an error; no row matches it, so the lookup
	// answers an empty list like any other unmatched name.
	items, err := s.statsRepo.ListByPlayerName(ctx, strings.TrimSpace(playerName))
	if err != nil {
		return nil, storeError("list player seasons", err)
	}

	return items, nil
}

// GetTeamSeasonStats resolves the team name before checking the season,
// so an unknown team is reported even when the season is missing.
func (s *StatsService) GetTeamSeasonStats(ctx context.Context, teamName, season string) ([]stats.PlayerSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeamSeasonStats")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	resolved, ok := team.Resolve(teamName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, teamName)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	items, err := s.statsRepo.ListByTeamAndSeason(ctx, resolved.Abbreviations, season)
	if err != nil {
		return nil, storeError("list team season stats", err)
	}

	return items, nil
}

// RankByUnit builds a leaderboard for the given unit. With a season in
// the filter it ranks individual season lines; without one it ranks
// career totals aggregated per player.
func (s *StatsService) RankByUnit(ctx context.Context, unit stats.Unit, filter RankFilter) (Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RankByUnit")
	defer span.End()

	if _, ok := stats.AllUnits[unit]; !ok {
		return Ranking{}, fmt.Errorf("%w: unknown ranking unit %q", ErrInvalidInput, unit)
	}

	var abbrs []string
	if name := strings.TrimSpace(filter.TeamName); name != "" {
		resolved, ok := team.Resolve(name)
		if !ok {
			return Ranking{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, name)
		}
		abbrs = resolved.Abbreviations
	}

	size := filter.Size
	if size <= 0 {
		size = defaultRankSize
	}

	season := strings.TrimSpace(filter.Season)
	if season != "" {
		items, err := s.statsRepo.RankPerSeason(ctx, unit, season, abbrs, size)
		if err != nil {
			return Ranking{}, storeError("rank per season", err)
		}
		return Ranking{Unit: unit, Season: season, SeasonTotals: items}, nil
	}

	items, err := s.statsRepo.RankAllTime(ctx, unit, abbrs, size)
	if err != nil {
		return Ranking{}, storeError("rank all time", err)
	}

	return Ranking{Unit: unit, CareerTotals: items}, nil
}

func (s *StatsService) ListTeams(ctx context.Context) ([]team.Team, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.ListTeams")
	defer span.End()

	return team.All(), nil
}

func (s *StatsService) ListSeasons(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListSeasons")
	defer span.End()

	items, err := s.statsRepo.ListSeasons(ctx)
	if err != nil {
		return nil, storeError("list seasons", err)
	}

	return items, nil
}

func (s *StatsService) CreateRecord(ctx context.Context, record stats.PlayerSeason) (stats.PlayerSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CreateRecord")
	defer span.End()

	record.PlayerName = strings.TrimSpace(record.PlayerName)
	record.TeamAbbreviation = strings.TrimSpace(record.TeamAbbreviation)
	record.Season = strings.TrimSpace(record.Season)
	if err := record.Validate(); err != nil {
		return stats.PlayerSeason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, found, err := s.statsRepo.GetByPlayerAndSeason(ctx, record.PlayerName, record.Season); err != nil {
		return stats.PlayerSeason{}, storeError("check existing record", err)
	} else if found {
		return stats.PlayerSeason{}, fmt.Errorf(
			"%w: record for %s in %s already exists", ErrDuplicate, record.PlayerName, record.Season,
		)
	}

	stored, err := s.statsRepo.Insert(ctx, record)
	if err != nil {
		// A concurrent create can still hit the unique constraint.
		if errors.Is(err, stats.ErrDuplicateRecord) {
			return stats.PlayerSeason{}, fmt.Errorf(
				"%w: record for %s in %s already exists", ErrDuplicate, record.PlayerName, record.Season,
			)
		}
		return stats.PlayerSeason{}, storeError("insert record", err)
	}

	return stored, nil
}

func (s *StatsService) UpdateRecord(ctx context.Context, id int64, fields stats.UpdateFields) (stats.PlayerSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UpdateRecord")
	defer span.End()

	if id <= 0 {
		return stats.PlayerSeason{}, fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}
	if fields.Empty() {
		return stats.PlayerSeason{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	updated, found, err := s.statsRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, stats.ErrDuplicateRecord) {
			return stats.PlayerSeason{}, fmt.Errorf(
				"%w: record for that player and season already exists", ErrDuplicate,
			)
		}
		return stats.PlayerSeason{}, storeError("update record", err)
	}
	if !found {
		return stats.PlayerSeason{}, fmt.Errorf("%w: record=%d", ErrNotFound, id)
	}

	return updated, nil
}

func (s *StatsService) DeleteRecord(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.DeleteRecord")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}

	found, err := s.statsRepo.Delete(ctx, id)
	if err != nil {
		return storeError("delete record", err)
	}
	if !found {
		return fmt.Errorf("%w: record=%d", ErrNotFound, id)
	}

	return nil
}
