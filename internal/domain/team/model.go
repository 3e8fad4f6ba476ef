package team

import "strings"

// Team is one NBA franchise: its display name and every abbreviation code
// it has carried. Relocations and renames mean one franchise can own
// several codes, and a code inherited from a moved franchise can appear
// under more than one team.
type Team struct {
	Name          string   `json:"name"`
	Abbreviations []string `json:"abbr"`
}

// Reference is the static franchise table. It is built once at package
// init and never mutated.
var reference = []Team{
	{Name: "Atlanta Hawks", Abbreviations: []string{"ATL"}},
	{Name: "Brooklyn Nets", Abbreviations: []string{"BKN", "NJN"}},
	{Name: "Boston Celtics", Abbreviations: []string{"BOS"}},
	{Name: "Charlotte Hornets", Abbreviations: []string{"CHA", "CHH"}},
	{Name: "Chicago Bulls", Abbreviations: []string{"CHI"}},
	{Name: "Cleveland Cavaliers", Abbreviations: []string{"CLE"}},
	{Name: "Dallas Mavericks", Abbreviations: []string{"DAL"}},
	{Name: "Denver Nuggets", Abbreviations: []string{"DEN"}},
	{Name: "Detroit Pistons", Abbreviations: []string{"DET"}},
	{Name: "Golden State Warriors", Abbreviations: []string{"GSW"}},
	{Name: "Houston Rockets", Abbreviations: []string{"HOU"}},
	{Name: "Indiana Pacers", Abbreviations: []string{"IND"}},
	{Name: "LA Clippers", Abbreviations: []string{"LAC"}},
	{Name: "Los Angeles Lakers", Abbreviations: []string{"LAL"}},
	{Name: "Memphis Grizzlies", Abbreviations: []string{"MEM", "VAN"}},
	{Name: "Miami Heat", Abbreviations: []string{"MIA"}},
	{Name: "Milwaukee Bucks", Abbreviations: []string{"MIL"}},
	{Name: "Minnesota Timberwolves", Abbreviations: []string{"MIN"}},
	{Name: "New Orleans Pelicans", Abbreviations: []string{"NOP", "NOK", "SEA"}},
	{Name: "New York Knicks", Abbreviations: []string{"NYK"}},
	{Name: "Oklahoma City Thunder", Abbreviations: []string{"OKC", "NOK", "SEA"}},
	{Name: "Orlando Magic", Abbreviations: []string{"ORL"}},
	{Name: "Philadelphia 76ers", Abbreviations: []string{"PHI"}},
	{Name: "Phoenix Suns", Abbreviations: []string{"PHX"}},
	{Name: "Portland Trail Blazers", Abbreviations: []string{"POR"}},
	{Name: "Sacramento Kings", Abbreviations: []string{"SAC"}},
	{Name: "San Antonio Spurs", Abbreviations: []string{"SAS"}},
	{Name: "Toronto Raptors", Abbreviations: []string{"TOR"}},
	{Name: "Utah Jazz", Abbreviations: []string{"UTA"}},
	{Name: "Washington Wizards", Abbreviations: []string{"WAS"}},
}

// All returns the full franchise table. Callers get a fresh slice so the
// table stays immutable.
func All() []Team {
	out := make([]Team, len(reference))
	copy(out, reference)
	return out
}

// Resolve matches a display name case-insensitively against the table.
func Resolve(name string) (Team, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Team{}, false
	}
	for _, t := range reference {
		if strings.EqualFold(t.Name, trimmed) {
			return t, true
		}
	}
	return Team{}, false
}
