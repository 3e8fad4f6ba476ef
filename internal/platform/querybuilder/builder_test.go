package querybuilder

import "testing"

func TestSelect_GroupByOrderByLimit(t *testing.T) {
	query, args, err := Select("player_name", "SUM(pts * gp) AS total").
		From("player_season_stats").
		Where(In("team_abbreviation", []any{"LAL"})).
		GroupBy("player_name").
		OrderBy("total DESC").
		Limit(3).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT player_name, SUM(pts * gp) AS total FROM player_season_stats" +
		" WHERE team_abbreviation IN ($1) GROUP BY player_name ORDER BY total DESC LIMIT 3"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 1 || args[0] != "LAL" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_ILike(t *testing.T) {
	query, args, err := Select("player_name").
		From("player_season_stats").
		Where(ILike("player_name", "%james%")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT player_name FROM player_season_stats WHERE player_name ILIKE $1"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "%james%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInNeverMatches(t *testing.T) {
	query, args, err := Select("id").
		From("player_season_stats").
		Where(In("team_abbreviation", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if query != "SELECT id FROM player_season_stats WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_SuffixPlaceholderRewrite(t *testing.T) {
	query, args, err := InsertInto("player_season_stats").
		Columns("player_name", "season").
		Values("A", "2020-21").
		Values("B", "2020-21").
		Suffix("ON CONFLICT (player_name, season) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO player_season_stats (player_name, season) VALUES ($1, $2), ($3, $4)" +
		" ON CONFLICT (player_name, season) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdate_SetExprAndSuffix(t *testing.T) {
	query, args, err := Update("player_season_stats").
		Set("pts", 31.5).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(7))).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE player_season_stats SET pts = $1, updated_at = NOW() WHERE id = $2 RETURNING id"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete(t *testing.T) {
	query, args, err := DeleteFrom("player_season_stats").
		Where(Eq("id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	if query != "DELETE FROM player_season_stats WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %v", args)
	}

	query, args, err = DeleteFrom("player_season_stats").ToSQL()
	if err != nil {
		t.Fatalf("build delete all: %v", err)
	}
	if query != "DELETE FROM player_season_stats" || len(args) != 0 {
		t.Fatalf("unexpected delete all: %s %v", query, args)
	}
}
