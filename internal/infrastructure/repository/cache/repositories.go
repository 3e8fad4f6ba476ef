package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	basecache "github.com/hooplytics/nba-stats-api/internal/platform/cache"
)

const statsKeyPrefix = "stats:"

// StatsRepository is a read-through TTL cache over the record store. The
// leaderboard and distinct-value reads dominate traffic and tolerate
// slightly stale results; every write invalidates the whole prefix.
type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) ListDistinctPlayers(ctx context.Context, nameFilter string) ([]stats.PlayerSummary, error) {
	key := statsKeyPrefix + "players:" + strings.ToLower(nameFilter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListDistinctPlayers(ctx, nameFilter)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerSummary(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerSummary)
	return append([]stats.PlayerSummary(nil), items...), nil
}

func (r *StatsRepository) ListByPlayerName(ctx context.Context, playerName string) ([]stats.PlayerSeason, error) {
	key := statsKeyPrefix + "career:" + playerName
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPlayerName(ctx, playerName)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerSeason(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerSeason)
	return append([]stats.PlayerSeason(nil), items...), nil
}

func (r *StatsRepository) ListByTeamAndSeason(ctx context.Context, abbrs []string, season string) ([]stats.PlayerSeason, error) {
	key := statsKeyPrefix + "teamseason:" + strings.Join(abbrs, ",") + ":" + season
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeamAndSeason(ctx, abbrs, season)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerSeason(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerSeason)
	return append([]stats.PlayerSeason(nil), items...), nil
}

func (r *StatsRepository) RankPerSeason(ctx context.Context, unit stats.Unit, season string, abbrs []string, limit int) ([]stats.SeasonTotal, error) {
	key := statsKeyPrefix + "rank:season:" + string(unit) + ":" + season + ":" +
		strings.Join(abbrs, ",") + ":" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.RankPerSeason(ctx, unit, season, abbrs, limit)
		if err != nil {
			return nil, err
		}
		return append([]stats.SeasonTotal(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.SeasonTotal)
	return append([]stats.SeasonTotal(nil), items...), nil
}

func (r *StatsRepository) RankAllTime(ctx context.Context, unit stats.Unit, abbrs []string, limit int) ([]stats.CareerTotal, error) {
	key := statsKeyPrefix + "rank:alltime:" + string(unit) + ":" +
		strings.Join(abbrs, ",") + ":" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.RankAllTime(ctx, unit, abbrs, limit)
		if err != nil {
			return nil, err
		}
		return append([]stats.CareerTotal(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.CareerTotal)
	return append([]stats.CareerTotal(nil), items...), nil
}

func (r *StatsRepository) ListSeasons(ctx context.Context) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, statsKeyPrefix+"seasons", func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasons(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

// GetByPlayerAndSeason backs the create-time duplicate check and must not
// serve stale rows, so it always goes to the store.
func (r *StatsRepository) GetByPlayerAndSeason(ctx context.Context, playerName, season string) (stats.PlayerSeason, bool, error) {
	return r.next.GetByPlayerAndSeason(ctx, playerName, season)
}

func (r *StatsRepository) Insert(ctx context.Context, record stats.PlayerSeason) (stats.PlayerSeason, error) {
	created, err := r.next.Insert(ctx, record)
	if err != nil {
		return stats.PlayerSeason{}, err
	}
	r.cache.DeletePrefix(ctx, statsKeyPrefix)
	return created, nil
}

func (r *StatsRepository) Update(ctx context.Context, id int64, fields stats.UpdateFields) (stats.PlayerSeason, bool, error) {
	updated, found, err := r.next.Update(ctx, id, fields)
	if err != nil || !found {
		return updated, found, err
	}
	r.cache.DeletePrefix(ctx, statsKeyPrefix)
	return updated, true, nil
}

func (r *StatsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := r.next.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	r.cache.DeletePrefix(ctx, statsKeyPrefix)
	return true, nil
}

func (r *StatsRepository) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := r.next.DeleteAll(ctx)
	if err != nil {
		return removed, err
	}
	r.cache.DeletePrefix(ctx, statsKeyPrefix)
	return removed, nil
}

func (r *StatsRepository) InsertBatch(ctx context.Context, records []stats.PlayerSeason) error {
	if err := r.next.InsertBatch(ctx, records); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, statsKeyPrefix)
	return nil
}
