package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/hooplytics/nba-stats-api/internal/platform/logging"
)

const (
	loaderDefaultWorkers = 4
	loaderBatchSize      = 500
)

// LoadResult summarises one bulk load. Skipped counts duplicate
// (player, season) lines within the file, Failed counts lines that
// either failed to parse or belonged to a batch whose insert failed.
type LoadResult struct {
	Rows     int           `json:"rows"`
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// LoaderService replaces the stored dataset with the contents of a CSV
// export. Batches are written concurrently through a bounded worker pool.
type LoaderService struct {
	statsRepo stats.Repository
	logger    *logging.Logger
	csvPath   string
	workers   int
}

func NewLoaderService(statsRepo stats.Repository, logger *logging.Logger, csvPath string, workers int) *LoaderService {
	if workers <= 0 {
		workers = loaderDefaultWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LoaderService{
		statsRepo: statsRepo,
		logger:    logger,
		csvPath:   csvPath,
		workers:   workers,
	}
}

// Load clears the record table and repopulates it from the CSV file.
// Existing data is only dropped after the file opens successfully.
func (s *LoaderService) Load(ctx context.Context) (LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoaderService.Load")
	defer span.End()

	started := time.Now()

	file, err := os.Open(s.csvPath)
	if err != nil {
		return LoadResult{}, errors.Wrapf(err, "open dataset %s", s.csvPath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return LoadResult{}, errors.Wrap(err, "read dataset header")
	}
	columns, err := mapLoaderColumns(header)
	if err != nil {
		return LoadResult{}, err
	}

	if _, err := s.statsRepo.DeleteAll(ctx); err != nil {
		return LoadResult{}, fmt.Errorf("clear records: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return LoadResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var inserted atomic.Int64
	var failed atomic.Int64
	var workers sync.WaitGroup

	submit := func(batch []stats.PlayerSeason) error {
		workers.Add(1)
		return pool.Submit(func() {
			defer workers.Done()
			if err := s.statsRepo.InsertBatch(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				s.logger.ErrorContext(ctx, "dataset batch insert failed", "error", err, "rows", len(batch))
				return
			}
			inserted.Add(int64(len(batch)))
		})
	}

	seen := make(map[string]struct{})
	batch := make([]stats.PlayerSeason, 0, loaderBatchSize)
	result := LoadResult{}

	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return LoadResult{}, errors.Wrap(err, "read dataset row")
		}
		result.Rows++

		record, ok, err := parseLoaderRow(line, columns)
		if !ok {
			result.Skipped++
			continue
		}
		if err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "skipping malformed dataset row", "row", result.Rows, "error", err)
			continue
		}

		key := record.PlayerName + "\x00" + record.Season
		if _, ok := seen[key]; ok {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}

		batch = append(batch, record)
		if len(batch) == loaderBatchSize {
			toInsert := batch
			batch = make([]stats.PlayerSeason, 0, loaderBatchSize)
			if err := submit(toInsert); err != nil {
				return LoadResult{}, fmt.Errorf("submit batch: %w", err)
			}
		}
	}
	if len(batch) > 0 {
		if err := submit(batch); err != nil {
			return LoadResult{}, fmt.Errorf("submit batch: %w", err)
		}
	}

	workers.Wait()

	result.Inserted = int(inserted.Load())
	result.Failed += int(failed.Load())
	result.Duration = time.Since(started)

	return result, nil
}

type loaderColumns struct {
	playerName       int
	teamAbbreviation int
	age              int
	playerHeight     int
	playerWeight     int
	college          int
	country          int
	draftYear        int
	draftRound       int
	draftNumber      int
	gp               int
	pts              int
	reb              int
	ast              int
	season           int
}

func mapLoaderColumns(header []string) (loaderColumns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := loaderColumns{}
	required := map[string]*int{
		"player_name":       &columns.playerName,
		"team_abbreviation": &columns.teamAbbreviation,
		"age":               &columns.age,
		"player_height":     &columns.playerHeight,
		"player_weight":     &columns.playerWeight,
		"college":           &columns.college,
		"country":           &columns.country,
		"draft_year":        &columns.draftYear,
		"draft_round":       &columns.draftRound,
		"draft_number":      &columns.draftNumber,
		"gp":                &columns.gp,
		"pts":               &columns.pts,
		"reb":               &columns.reb,
		"ast":               &columns.ast,
		"season":            &columns.season,
	}
	for name, target := range required {
		position, ok := index[name]
		if !ok {
			return loaderColumns{}, fmt.Errorf("dataset header is missing column %q", name)
		}
		*target = position
	}

	return columns, nil
}

// parseLoaderRow returns ok=false for lines without a player name or
// season; those are skipped rather than failed.
func parseLoaderRow(line []string, columns loaderColumns) (stats.PlayerSeason, bool, error) {
	field := func(i int) string {
		if i >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[i])
	}

	record := stats.PlayerSeason{
		PlayerName:       field(columns.playerName),
		TeamAbbreviation: field(columns.teamAbbreviation),
		College:          field(columns.college),
		Country:          field(columns.country),
		Season:           field(columns.season),
	}
	if record.PlayerName == "" || record.Season == "" {
		return stats.PlayerSeason{}, false, nil
	}

	numeric := map[string]*float64{
		"age":           &record.Age,
		"player_height": &record.PlayerHeight,
		"player_weight": &record.PlayerWeight,
		"gp":            &record.GP,
		"pts":           &record.Pts,
		"reb":           &record.Reb,
		"ast":           &record.Ast,
	}
	values := map[string]string{
		"age":           field(columns.age),
		"player_height": field(columns.playerHeight),
		"player_weight": field(columns.playerWeight),
		"gp":            field(columns.gp),
		"pts":           field(columns.pts),
		"reb":           field(columns.reb),
		"ast":           field(columns.ast),
	}
	for name, target := range numeric {
		value, err := strconv.ParseFloat(values[name], 64)
		if err != nil {
			return stats.PlayerSeason{}, true, fmt.Errorf("parse %s %q: %w", name, values[name], err)
		}
		*target = value
	}

	var err error
	if record.DraftYear, err = parseDraftValue(field(columns.draftYear)); err != nil {
		return stats.PlayerSeason{}, true, fmt.Errorf("parse draft_year: %w", err)
	}
	if record.DraftRound, err = parseDraftValue(field(columns.draftRound)); err != nil {
		return stats.PlayerSeason{}, true, fmt.Errorf("parse draft_round: %w", err)
	}
	if record.DraftNumber, err = parseDraftValue(field(columns.draftNumber)); err != nil {
		return stats.PlayerSeason{}, true, fmt.Errorf("parse draft_number: %w", err)
	}

	return record, true, nil
}

// parseDraftValue maps "Undrafted" and blank cells to a missing value.
func parseDraftValue(raw string) (*float64, error) {
	if raw == "" || strings.EqualFold(raw, "undrafted") {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
