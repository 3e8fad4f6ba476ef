package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/infrastructure/repository/memory"
	basecache "github.com/hooplytics/nba-stats-api/internal/platform/cache"
)

func newCachedRepo(t *testing.T) (*StatsRepository, *memory.StatsRepository) {
	t.Helper()
	next := memory.NewStatsRepository(memory.SeedPlayerSeasons())
	return NewStatsRepository(next, basecache.NewStore(time.Minute)), next
}

func TestCachedReadsServeStaleUntilWrite(t *testing.T) {
	repo, next := newCachedRepo(t)
	ctx := context.Background()

	first, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// A write bypassing the decorator is invisible until invalidation.
	season := "1999-00"
	record := memory.SeedPlayerSeasons()[0]
	record.PlayerName = "Vince Carter"
	record.Season = season
	_, err = next.Insert(ctx, record)
	require.NoError(t, err)

	cached, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	require.Equal(t, first, cached)
}

func TestWritesInvalidateCachedReads(t *testing.T) {
	repo, _ := newCachedRepo(t)
	ctx := context.Background()

	before, err := repo.ListSeasons(ctx)
	require.NoError(t, err)

	record := memory.SeedPlayerSeasons()[0]
	record.PlayerName = "Vince Carter"
	record.Season = "1999-00"
	_, err = repo.Insert(ctx, record)
	require.NoError(t, err)

	after, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	require.Equal(t, "2018-19", after[0])
}

func TestCachedListsReturnCopies(t *testing.T) {
	repo, _ := newCachedRepo(t)
	ctx := context.Background()

	items, err := repo.ListDistinctPlayers(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, items)

	items[0].PlayerName = "mutated"

	again, err := repo.ListDistinctPlayers(ctx, "")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", again[0].PlayerName)
}

func TestDuplicateCheckBypassesCache(t *testing.T) {
	repo, next := newCachedRepo(t)
	ctx := context.Background()

	record := memory.SeedPlayerSeasons()[0]
	record.PlayerName = "Vince Carter"
	record.Season = "1999-00"
	_, err := next.Insert(ctx, record)
	require.NoError(t, err)

	_, found, err := repo.GetByPlayerAndSeason(ctx, "Vince Carter", "1999-00")
	require.NoError(t, err)
	require.True(t, found)
}

func TestDeleteAllInvalidates(t *testing.T) {
	repo, _ := newCachedRepo(t)
	ctx := context.Background()

	_, err := repo.ListSeasons(ctx)
	require.NoError(t, err)

	removed, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Positive(t, removed)

	seasons, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	require.Empty(t, seasons)
}

var _ stats.Repository = (*StatsRepository)(nil)
