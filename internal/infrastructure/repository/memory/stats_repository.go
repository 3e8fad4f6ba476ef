package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
)

// StatsRepository is the in-memory record store used by unit tests. It
// mirrors the PostgreSQL repository's semantics, including the uniqueness
// of (player_name, season) and the ranking aggregations.
type StatsRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []stats.PlayerSeason
}

func NewStatsRepository(seed []stats.PlayerSeason) *StatsRepository {
	r := &StatsRepository{nextID: 1}
	for _, record := range seed {
		record.ID = r.nextID
		r.nextID++
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
		record.UpdatedAt = record.CreatedAt
		r.rows = append(r.rows, record)
	}
	return r
}

func (r *StatsRepository) ListDistinctPlayers(_ context.Context, nameFilter string) ([]stats.PlayerSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(nameFilter)
	seasonsByPlayer := make(map[string]map[string]struct{})
	order := make([]string, 0)
	for _, row := range r.rows {
		if needle != "" && !strings.Contains(strings.ToLower(row.PlayerName), needle) {
			continue
		}
		if _, ok := seasonsByPlayer[row.PlayerName]; !ok {
			seasonsByPlayer[row.PlayerName] = make(map[string]struct{})
			order = append(order, row.PlayerName)
		}
		seasonsByPlayer[row.PlayerName][row.Season] = struct{}{}
	}

	out := make([]stats.PlayerSummary, 0, len(order))
	for _, name := range order {
		seasons := make([]string, 0, len(seasonsByPlayer[name]))
		for season := range seasonsByPlayer[name] {
			seasons = append(seasons, season)
		}
		sort.Strings(seasons)
		out = append(out, stats.PlayerSummary{PlayerName: name, Seasons: seasons})
	}

	return out, nil
}

func (r *StatsRepository) ListByPlayerName(_ context.Context, playerName string) ([]stats.PlayerSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerSeason, 0)
	for _, row := range r.rows {
		if row.PlayerName == playerName {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Season > out[j].Season })

	return out, nil
}

func (r *StatsRepository) ListByTeamAndSeason(_ context.Context, abbrs []string, season string) ([]stats.PlayerSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	abbrSet := toSet(abbrs)
	out := make([]stats.PlayerSeason, 0)
	for _, row := range r.rows {
		if row.Season != season {
			continue
		}
		if _, ok := abbrSet[row.TeamAbbreviation]; !ok {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pts > out[j].Pts })

	return out, nil
}

func (r *StatsRepository) RankPerSeason(_ context.Context, unit stats.Unit, season string, abbrs []string, limit int) ([]stats.SeasonTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	abbrSet := toSet(abbrs)
	out := make([]stats.SeasonTotal, 0)
	for _, row := range r.rows {
		if row.Season != season {
			continue
		}
		if len(abbrSet) > 0 {
			if _, ok := abbrSet[row.TeamAbbreviation]; !ok {
				continue
			}
		}
		value, err := unitValue(row, unit)
		if err != nil {
			return nil, err
		}
		out = append(out, stats.SeasonTotal{PlayerSeason: row, Total: value * row.GP})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })

	return truncate(out, limit), nil
}

func (r *StatsRepository) RankAllTime(_ context.Context, unit stats.Unit, abbrs []string, limit int) ([]stats.CareerTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	abbrSet := toSet(abbrs)
	totals := make(map[string]float64)
	seasons := make(map[string]map[string]struct{})
	order := make([]string, 0)
	for _, row := range r.rows {
		if len(abbrSet) > 0 {
			if _, ok := abbrSet[row.TeamAbbreviation]; !ok {
				continue
			}
		}
		value, err := unitValue(row, unit)
		if err != nil {
			return nil, err
		}
		if _, ok := totals[row.PlayerName]; !ok {
			order = append(order, row.PlayerName)
			seasons[row.PlayerName] = make(map[string]struct{})
		}
		totals[row.PlayerName] += value * row.GP
		seasons[row.PlayerName][row.Season] = struct{}{}
	}

	out := make([]stats.CareerTotal, 0, len(order))
	for _, name := range order {
		collected := make([]string, 0, len(seasons[name]))
		for season := range seasons[name] {
			collected = append(collected, season)
		}
		sort.Strings(collected)
		out = append(out, stats.CareerTotal{PlayerName: name, Total: totals[name], Seasons: collected})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })

	return truncate(out, limit), nil
}

func (r *StatsRepository) ListSeasons(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range r.rows {
		if _, ok := seen[row.Season]; ok {
			continue
		}
		seen[row.Season] = struct{}{}
		out = append(out, row.Season)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))

	return out, nil
}

func (r *StatsRepository) GetByPlayerAndSeason(_ context.Context, playerName, season string) (stats.PlayerSeason, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.PlayerName == playerName && row.Season == season {
			return row, true, nil
		}
	}

	return stats.PlayerSeason{}, false, nil
}

func (r *StatsRepository) Insert(_ context.Context, record stats.PlayerSeason) (stats.PlayerSeason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasPlayerSeason(record.PlayerName, record.Season) {
		return stats.PlayerSeason{}, fmt.Errorf(
			"insert %s %s: %w", record.PlayerName, record.Season, stats.ErrDuplicateRecord,
		)
	}

	now := time.Now().UTC()
	record.ID = r.nextID
	r.nextID++
	record.CreatedAt = now
	record.UpdatedAt = now
	r.rows = append(r.rows, record)

	return record, nil
}

func (r *StatsRepository) Update(_ context.Context, id int64, fields stats.UpdateFields) (stats.PlayerSeason, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows {
		if row.ID != id {
			continue
		}
		applyFields(&row, fields)
		row.UpdatedAt = time.Now().UTC()
		r.rows[i] = row
		return row, true, nil
	}

	return stats.PlayerSeason{}, false, nil
}

func (r *StatsRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (r *StatsRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := int64(len(r.rows))
	r.rows = nil

	return removed, nil
}

func (r *StatsRepository) InsertBatch(_ context.Context, records []stats.PlayerSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, record := range records {
		if r.hasPlayerSeason(record.PlayerName, record.Season) {
			continue
		}
		record.ID = r.nextID
		r.nextID++
		record.CreatedAt = now
		record.UpdatedAt = now
		r.rows = append(r.rows, record)
	}

	return nil
}

// Len reports the stored row count; used by loader tests.
func (r *StatsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func (r *StatsRepository) hasPlayerSeason(playerName, season string) bool {
	for _, row := range r.rows {
		if row.PlayerName == playerName && row.Season == season {
			return true
		}
	}
	return false
}

func applyFields(row *stats.PlayerSeason, fields stats.UpdateFields) {
	if fields.PlayerName != nil {
		row.PlayerName = *fields.PlayerName
	}
	if fields.TeamAbbreviation != nil {
		row.TeamAbbreviation = *fields.TeamAbbreviation
	}
	if fields.Age != nil {
		row.Age = *fields.Age
	}
	if fields.PlayerHeight != nil {
		row.PlayerHeight = *fields.PlayerHeight
	}
	if fields.PlayerWeight != nil {
		row.PlayerWeight = *fields.PlayerWeight
	}
	if fields.College != nil {
		row.College = *fields.College
	}
	if fields.Country != nil {
		row.Country = *fields.Country
	}
	if fields.DraftYear != nil {
		row.DraftYear = fields.DraftYear
	}
	if fields.DraftRound != nil {
		row.DraftRound = fields.DraftRound
	}
	if fields.DraftNumber != nil {
		row.DraftNumber = fields.DraftNumber
	}
	if fields.GP != nil {
		row.GP = *fields.GP
	}
	if fields.Pts != nil {
		row.Pts = *fields.Pts
	}
	if fields.Reb != nil {
		row.Reb = *fields.Reb
	}
	if fields.Ast != nil {
		row.Ast = *fields.Ast
	}
	if fields.Season != nil {
		row.Season = *fields.Season
	}
}

func unitValue(row stats.PlayerSeason, unit stats.Unit) (float64, error) {
	switch unit {
	case stats.UnitPoints:
		return row.Pts, nil
	case stats.UnitAssists:
		return row.Ast, nil
	case stats.UnitRebounds:
		return row.Reb, nil
	default:
		return 0, fmt.Errorf("unknown ranking unit %q", unit)
	}
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
