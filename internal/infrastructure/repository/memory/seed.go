package memory

import "github.com/hooplytics/nba-stats-api/internal/domain/stats"

// SeedPlayerSeasons returns a small fixture set spanning multiple players,
// teams and seasons, including a historical team code and an undrafted
// player with no draft data.
func SeedPlayerSeasons() []stats.PlayerSeason {
	return []stats.PlayerSeason{
		{
			PlayerName:       "LeBron James",
			TeamAbbreviation: "CLE",
			Age:              31,
			PlayerHeight:     203.2,
			PlayerWeight:     113.4,
			College:          "",
			Country:          "USA",
			DraftYear:        floatPtr(2003),
			DraftRound:       floatPtr(1),
			DraftNumber:      floatPtr(1),
			GP:               76,
			Pts:              25.3,
			Reb:              7.4,
			Ast:              6.8,
			Season:           "2015-16",
		},
		{
			PlayerName:       "LeBron James",
			TeamAbbreviation: "LAL",
			Age:              34,
			PlayerHeight:     203.2,
			PlayerWeight:     113.4,
			College:          "",
			Country:          "USA",
			DraftYear:        floatPtr(2003),
			DraftRound:       floatPtr(1),
			DraftNumber:      floatPtr(1),
			GP:               55,
			Pts:              27.4,
			Reb:              8.5,
			Ast:              8.3,
			Season:           "2018-19",
		},
		{
			PlayerName:       "Stephen Curry",
			TeamAbbreviation: "GSW",
			Age:              28,
			PlayerHeight:     190.5,
			PlayerWeight:     86.2,
			College:          "Davidson",
			Country:          "USA",
			DraftYear:        floatPtr(2009),
			DraftRound:       floatPtr(1),
			DraftNumber:      floatPtr(7),
			GP:               79,
			Pts:              30.1,
			Reb:              5.4,
			Ast:              6.7,
			Season:           "2015-16",
		},
		{
			PlayerName:       "Kobe Bryant",
			TeamAbbreviation: "LAL",
			Age:              37,
			PlayerHeight:     198.1,
			PlayerWeight:     96.2,
			College:          "",
			Country:          "USA",
			DraftYear:        floatPtr(1996),
			DraftRound:       floatPtr(1),
			DraftNumber:      floatPtr(13),
			GP:               66,
			Pts:              17.6,
			Reb:              3.7,
			Ast:              2.8,
			Season:           "2015-16",
		},
		{
			PlayerName:       "Kobe Bryant",
			TeamAbbreviation: "LAL",
			Age:              36,
			PlayerHeight:     198.1,
			PlayerWeight:     96.2,
			College:          "",
			Country:          "USA",
			DraftYear:        floatPtr(1996),
			DraftRound:       floatPtr(1),
			DraftNumber:      floatPtr(13),
			GP:               35,
			Pts:              22.3,
			Reb:              5.7,
			Ast:              5.6,
			Season:           "2014-15",
		},
		{
			PlayerName:       "Ben Wallace",
			TeamAbbreviation: "DET",
			Age:              31,
			PlayerHeight:     205.7,
			PlayerWeight:     108.9,
			College:          "Virginia Union",
			Country:          "USA",
			GP:               64,
			Pts:              7.3,
			Reb:              11.3,
			Ast:              1.9,
			Season:           "2005-06",
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
