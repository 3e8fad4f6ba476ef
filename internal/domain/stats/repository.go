package stats

import "context"

// Repository describes what use cases need from the record store. The
// aggregation-shaped reads (distinct players, per-season and all-time
// rankings) are pushed down to the store rather than computed in memory.
type Repository interface {
	// ListDistinctPlayers returns one summary per distinct player name.
	// A non-empty nameFilter matches case-insensitively as a substring.
	ListDistinctPlayers(ctx context.Context, nameFilter string) ([]PlayerSummary, error)

	// ListByPlayerName returns every season row for an exact player name,
	// season descending.
	ListByPlayerName(ctx context.Context, playerName string) ([]PlayerSeason, error)

	// ListByTeamAndSeason returns rows whose team abbreviation is in abbrs
	// for the given season, points descending.
	ListByTeamAndSeason(ctx context.Context, abbrs []string, season string) ([]PlayerSeason, error)

	// RankPerSeason ranks individual player-season rows for one season by
	// unit*gp descending, truncated to limit. An empty abbrs slice means no
	// team filter.
	RankPerSeason(ctx context.Context, unit Unit, season string, abbrs []string, limit int) ([]SeasonTotal, error)

	// RankAllTime groups rows by player name, sums unit*gp across seasons,
	// collects the distinct seasons, and ranks by the summed total
	// descending, truncated to limit. An empty abbrs slice means no team
	// filter.
	RankAllTime(ctx context.Context, unit Unit, abbrs []string, limit int) ([]CareerTotal, error)

	// ListSeasons returns every distinct season value, descending.
	ListSeasons(ctx context.Context) ([]string, error)

	GetByPlayerAndSeason(ctx context.Context, playerName, season string) (PlayerSeason, bool, error)

	// Insert stores a new row and returns it with the assigned id and
	// timestamps. A (player_name, season) collision with a concurrently
	// inserted row yields ErrDuplicateRecord.
	Insert(ctx context.Context, record PlayerSeason) (PlayerSeason, error)

	// Update applies the non-nil fields to the row with the given id and
	// returns the updated row; the bool reports whether the row existed.
	Update(ctx context.Context, id int64, fields UpdateFields) (PlayerSeason, bool, error)

	// Delete removes the row with the given id; the bool reports whether a
	// row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// DeleteAll clears the store and reports how many rows were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// InsertBatch stores rows without duplicate pre-checks; used by the
	// bulk loader after DeleteAll.
	InsertBatch(ctx context.Context, records []PlayerSeason) error
}
