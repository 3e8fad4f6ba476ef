package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	qb "github.com/hooplytics/nba-stats-api/internal/platform/querybuilder"
)

const statsTable = "player_season_stats"

// StatsRepository persists player season rows in PostgreSQL. The
// aggregation reads mirror the shapes the API exposes: per-season totals
// are computed per row, all-time totals are grouped per player with the
// seasons collected via array_agg.
type StatsRepository struct {
	db *sqlx.DB
}

var statsSelectColumns = []string{
	"id",
	"player_name",
	"team_abbreviation",
	"age",
	"player_height",
	"player_weight",
	"college",
	"country",
	"draft_year",
	"draft_round",
	"draft_number",
	"gp",
	"pts",
	"reb",
	"ast",
	"season",
	"created_at",
	"updated_at",
}

// unitColumn whitelists the rankable columns; the unit value is never
// interpolated into SQL directly.
var unitColumn = map[stats.Unit]string{
	stats.UnitPoints:   "pts",
	stats.UnitAssists:  "ast",
	stats.UnitRebounds: "reb",
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListDistinctPlayers(ctx context.Context, nameFilter string) ([]stats.PlayerSummary, error) {
	builder := qb.Select("player_name", "array_agg(DISTINCT season) AS seasons").
		From(statsTable).
		GroupBy("player_name")
	if nameFilter != "" {
		builder = builder.Where(qb.ILike("player_name", "%"+escapeLikePattern(nameFilter)+"%"))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build distinct players query: %w", err)
	}

	var rows []playerSummaryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select distinct players: %w", err)
	}

	out := make([]stats.PlayerSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.PlayerSummary{
			PlayerName: row.PlayerName,
			Seasons:    append([]string(nil), row.Seasons...),
		})
	}

	return out, nil
}

func (r *StatsRepository) ListByPlayerName(ctx context.Context, playerName string) ([]stats.PlayerSeason, error) {
	query, args, err := qb.Select(statsSelectColumns...).From(statsTable).
		Where(qb.Eq("player_name", playerName)).
		OrderBy("season DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player career query: %w", err)
	}

	var rows []playerSeasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player career: %w", err)
	}

	return rowsToDomain(rows), nil
}

func (r *StatsRepository) ListByTeamAndSeason(ctx context.Context, abbrs []string, season string) ([]stats.PlayerSeason, error) {
	query, args, err := qb.Select(statsSelectColumns...).From(statsTable).
		Where(
			qb.In("team_abbreviation", stringSliceToAny(abbrs)),
			qb.Eq("season", season),
		).
		OrderBy("pts DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team season stats query: %w", err)
	}

	var rows []playerSeasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team season stats: %w", err)
	}

	return rowsToDomain(rows), nil
}

func (r *StatsRepository) RankPerSeason(ctx context.Context, unit stats.Unit, season string, abbrs []string, limit int) ([]stats.SeasonTotal, error) {
	column, ok := unitColumn[unit]
	if !ok {
		return nil, fmt.Errorf("unknown ranking unit %q", unit)
	}

	columns := append(append([]string(nil), statsSelectColumns...), "("+column+" * gp) AS total")
	builder := qb.Select(columns...).From(statsTable).
		Where(qb.Eq("season", season)).
		OrderBy("total DESC").
		Limit(limit)
	if len(abbrs) > 0 {
		builder = builder.Where(qb.In("team_abbreviation", stringSliceToAny(abbrs)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build season ranking query: %w", err)
	}

	var rows []seasonTotalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season ranking: %w", err)
	}

	out := make([]stats.SeasonTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.SeasonTotal{
			PlayerSeason: row.playerSeasonTableModel.toDomain(),
			Total:        row.Total,
		})
	}

	return out, nil
}

func (r *StatsRepository) RankAllTime(ctx context.Context, unit stats.Unit, abbrs []string, limit int) ([]stats.CareerTotal, error) {
	column, ok := unitColumn[unit]
	if !ok {
		return nil, fmt.Errorf("unknown ranking unit %q", unit)
	}

	builder := qb.Select(
		"player_name",
		"SUM("+column+" * gp) AS total",
		"array_agg(DISTINCT season) AS seasons",
	).
		From(statsTable).
		GroupBy("player_name").
		OrderBy("total DESC").
		Limit(limit)
	if len(abbrs) > 0 {
		builder = builder.Where(qb.In("team_abbreviation", stringSliceToAny(abbrs)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build all-time ranking query: %w", err)
	}

	var rows []careerTotalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all-time ranking: %w", err)
	}

	out := make([]stats.CareerTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.CareerTotal{
			PlayerName: row.PlayerName,
			Total:      row.Total,
			Seasons:    append([]string(nil), row.Seasons...),
		})
	}

	return out, nil
}

func (r *StatsRepository) ListSeasons(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT season").From(statsTable).
		OrderBy("season DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build distinct seasons query: %w", err)
	}

	var seasons []string
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, fmt.Errorf("select distinct seasons: %w", err)
	}

	return seasons, nil
}

func (r *StatsRepository) GetByPlayerAndSeason(ctx context.Context, playerName, season string) (stats.PlayerSeason, bool, error) {
	query, args, err := qb.Select(statsSelectColumns...).From(statsTable).
		Where(
			qb.Eq("player_name", playerName),
			qb.Eq("season", season),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return stats.PlayerSeason{}, false, fmt.Errorf("build get by player and season query: %w", err)
	}

	var row playerSeasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.PlayerSeason{}, false, nil
		}
		return stats.PlayerSeason{}, false, fmt.Errorf("get by player and season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *StatsRepository) Insert(ctx context.Context, record stats.PlayerSeason) (stats.PlayerSeason, error) {
	suffix := "ON CONFLICT (player_name, season) DO NOTHING RETURNING " + strings.Join(statsSelectColumns, ", ")
	query, args, err := qb.InsertModel(statsTable, insertModelFromDomain(record), suffix)
	if err != nil {
		return stats.PlayerSeason{}, fmt.Errorf("build insert query: %w", err)
	}

	var row playerSeasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		// DO NOTHING on a conflicting row yields zero returned rows.
		if isNotFound(err) {
			return stats.PlayerSeason{}, fmt.Errorf(
				"insert %s %s: %w", record.PlayerName, record.Season, stats.ErrDuplicateRecord,
			)
		}
		return stats.PlayerSeason{}, fmt.Errorf("insert player season: %w", err)
	}

	return row.toDomain(), nil
}

func (r *StatsRepository) Update(ctx context.Context, id int64, fields stats.UpdateFields) (stats.PlayerSeason, bool, error) {
	builder := qb.Update(statsTable)
	applyUpdateFields(builder, fields)
	builder = builder.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		Suffix("RETURNING " + strings.Join(statsSelectColumns, ", "))

	query, args, err := builder.ToSQL()
	if err != nil {
		return stats.PlayerSeason{}, false, fmt.Errorf("build update query: %w", err)
	}

	var row playerSeasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.PlayerSeason{}, false, nil
		}
		if isUniqueViolation(err) {
			return stats.PlayerSeason{}, false, fmt.Errorf("update id=%d: %w", id, stats.ErrDuplicateRecord)
		}
		return stats.PlayerSeason{}, false, fmt.Errorf("update player season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *StatsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom(statsTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player season: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *StatsRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := qb.DeleteFrom(statsTable).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete all query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete all player seasons: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all rows affected: %w", err)
	}

	return affected, nil
}

func (r *StatsRepository) InsertBatch(ctx context.Context, records []stats.PlayerSeason) error {
	if len(records) == 0 {
		return nil
	}

	builder := qb.InsertInto(statsTable).Columns(
		"player_name",
		"team_abbreviation",
		"age",
		"player_height",
		"player_weight",
		"college",
		"country",
		"draft_year",
		"draft_round",
		"draft_number",
		"gp",
		"pts",
		"reb",
		"ast",
		"season",
	)
	for _, record := range records {
		m := insertModelFromDomain(record)
		builder = builder.Values(
			m.PlayerName,
			m.TeamAbbreviation,
			m.Age,
			m.PlayerHeight,
			m.PlayerWeight,
			m.College,
			m.Country,
			m.DraftYear,
			m.DraftRound,
			m.DraftNumber,
			m.GP,
			m.Pts,
			m.Reb,
			m.Ast,
			m.Season,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (player_name, season) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build batch insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("batch insert player seasons: %w", err)
	}

	return nil
}

func applyUpdateFields(builder *qb.UpdateBuilder, fields stats.UpdateFields) {
	if fields.PlayerName != nil {
		builder.Set("player_name", *fields.PlayerName)
	}
	if fields.TeamAbbreviation != nil {
		builder.Set("team_abbreviation", *fields.TeamAbbreviation)
	}
	if fields.Age != nil {
		builder.Set("age", *fields.Age)
	}
	if fields.PlayerHeight != nil {
		builder.Set("player_height", *fields.PlayerHeight)
	}
	if fields.PlayerWeight != nil {
		builder.Set("player_weight", *fields.PlayerWeight)
	}
	if fields.College != nil {
		builder.Set("college", stringToNull(*fields.College))
	}
	if fields.Country != nil {
		builder.Set("country", *fields.Country)
	}
	if fields.DraftYear != nil {
		builder.Set("draft_year", *fields.DraftYear)
	}
	if fields.DraftRound != nil {
		builder.Set("draft_round", *fields.DraftRound)
	}
	if fields.DraftNumber != nil {
		builder.Set("draft_number", *fields.DraftNumber)
	}
	if fields.GP != nil {
		builder.Set("gp", *fields.GP)
	}
	if fields.Pts != nil {
		builder.Set("pts", *fields.Pts)
	}
	if fields.Reb != nil {
		builder.Set("reb", *fields.Reb)
	}
	if fields.Season != nil {
		builder.Set("season", *fields.Season)
	}
	if fields.Ast != nil {
		builder.Set("ast", *fields.Ast)
	}
}

func rowsToDomain(rows []playerSeasonTableModel) []stats.PlayerSeason {
	out := make([]stats.PlayerSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

// escapeLikePattern keeps user-supplied filters from acting as wildcards.
func escapeLikePattern(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "%", `\%`)
	v = strings.ReplaceAll(v, "_", `\_`)
	return v
}
