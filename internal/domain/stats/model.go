package stats

import (
	"errors"
	"fmt"
	"time"
)

// Unit is the statistic a leaderboard is ranked by.
type Unit string

const (
	UnitPoints   Unit = "pts"
	UnitAssists  Unit = "ast"
	UnitRebounds Unit = "reb"
)

var AllUnits = map[Unit]struct{}{
	UnitPoints:   {},
	UnitAssists:  {},
	UnitRebounds: {},
}

// ErrDuplicateRecord reports a second record for the same (player, season).
var ErrDuplicateRecord = errors.New("player season record already exists")

// PlayerSeason is one player's statline for a single season. The numeric
// stat columns (gp, pts, reb, ast) are per-game averages except gp.
type PlayerSeason struct {
	ID               int64
	PlayerName       string
	TeamAbbreviation string
	Age              float64
	PlayerHeight     float64
	PlayerWeight     float64
	College          string
	Country          string
	DraftYear        *float64
	DraftRound       *float64
	DraftNumber      *float64
	GP               float64
	Pts              float64
	Reb              float64
	Ast              float64
	Season           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p PlayerSeason) Validate() error {
	if p.PlayerName == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamAbbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}
	if p.Country == "" {
		return fmt.Errorf("country is required")
	}
	if p.Season == "" {
		return fmt.Errorf("season is required")
	}

	return nil
}

// PlayerSummary is one distinct player with every season they appear in.
// Seasons carry no guaranteed order.
type PlayerSummary struct {
	PlayerName string
	Seasons    []string
}

// SeasonTotal is a single player-season row with the ranking total
// (unit average multiplied by games played) attached.
type SeasonTotal struct {
	PlayerSeason
	Total float64
}

// CareerTotal is a per-player aggregate: the ranking total summed across
// every season matching the rank filter, with the seasons collected.
type CareerTotal struct {
	PlayerName string
	Total      float64
	Seasons    []string
}

// UpdateFields carries a partial update; nil fields keep their stored value.
// The record id itself is never updatable.
type UpdateFields struct {
	PlayerName       *string
	TeamAbbreviation *string
	Age              *float64
	PlayerHeight     *float64
	PlayerWeight     *float64
	College          *string
	Country          *string
	DraftYear        *float64
	DraftRound       *float64
	DraftNumber      *float64
	GP               *float64
	Pts              *float64
	Reb              *float64
	Ast              *float64
	Season           *string
}

func (f UpdateFields) Empty() bool {
	return f == (UpdateFields{})
}
