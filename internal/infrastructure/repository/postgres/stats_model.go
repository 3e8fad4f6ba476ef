package postgres

import (
	"database/sql"
	"time"

	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	"github.com/lib/pq"
)

type playerSeasonTableModel struct {
	ID               int64           `db:"id"`
	PlayerName       string          `db:"player_name"`
	TeamAbbreviation string          `db:"team_abbreviation"`
	Age              float64         `db:"age"`
	PlayerHeight     float64         `db:"player_height"`
	PlayerWeight     float64         `db:"player_weight"`
	College          sql.NullString  `db:"college"`
	Country          string          `db:"country"`
	DraftYear        sql.NullFloat64 `db:"draft_year"`
	DraftRound       sql.NullFloat64 `db:"draft_round"`
	DraftNumber      sql.NullFloat64 `db:"draft_number"`
	GP               float64         `db:"gp"`
	Pts              float64         `db:"pts"`
	Reb              float64         `db:"reb"`
	Ast              float64         `db:"ast"`
	Season           string          `db:"season"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type playerSeasonInsertTableModel struct {
	PlayerName       string          `db:"player_name"`
	TeamAbbreviation string          `db:"team_abbreviation"`
	Age              float64         `db:"age"`
	PlayerHeight     float64         `db:"player_height"`
	PlayerWeight     float64         `db:"player_weight"`
	College          sql.NullString  `db:"college"`
	Country          string          `db:"country"`
	DraftYear        sql.NullFloat64 `db:"draft_year"`
	DraftRound       sql.NullFloat64 `db:"draft_round"`
	DraftNumber      sql.NullFloat64 `db:"draft_number"`
	GP               float64         `db:"gp"`
	Pts              float64         `db:"pts"`
	Reb              float64         `db:"reb"`
	Ast              float64         `db:"ast"`
	Season           string          `db:"season"`
}

type playerSummaryTableModel struct {
	PlayerName string         `db:"player_name"`
	Seasons    pq.StringArray `db:"seasons"`
}

type seasonTotalTableModel struct {
	playerSeasonTableModel
	Total float64 `db:"total"`
}

type careerTotalTableModel struct {
	PlayerName string         `db:"player_name"`
	Total      float64        `db:"total"`
	Seasons    pq.StringArray `db:"seasons"`
}

func (m playerSeasonTableModel) toDomain() stats.PlayerSeason {
	return stats.PlayerSeason{
		ID:               m.ID,
		PlayerName:       m.PlayerName,
		TeamAbbreviation: m.TeamAbbreviation,
		Age:              m.Age,
		PlayerHeight:     m.PlayerHeight,
		PlayerWeight:     m.PlayerWeight,
		College:          m.College.String,
		Country:          m.Country,
		DraftYear:        nullFloatToPtr(m.DraftYear),
		DraftRound:       nullFloatToPtr(m.DraftRound),
		DraftNumber:      nullFloatToPtr(m.DraftNumber),
		GP:               m.GP,
		Pts:              m.Pts,
		Reb:              m.Reb,
		Ast:              m.Ast,
		Season:           m.Season,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func insertModelFromDomain(record stats.PlayerSeason) playerSeasonInsertTableModel {
	return playerSeasonInsertTableModel{
		PlayerName:       record.PlayerName,
		TeamAbbreviation: record.TeamAbbreviation,
		Age:              record.Age,
		PlayerHeight:     record.PlayerHeight,
		PlayerWeight:     record.PlayerWeight,
		College:          stringToNull(record.College),
		Country:          record.Country,
		DraftYear:        ptrToNullFloat(record.DraftYear),
		DraftRound:       ptrToNullFloat(record.DraftRound),
		DraftNumber:      ptrToNullFloat(record.DraftNumber),
		GP:               record.GP,
		Pts:              record.Pts,
		Reb:              record.Reb,
		Ast:              record.Ast,
		Season:           record.Season,
	}
}
