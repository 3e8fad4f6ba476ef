package team

import "testing"

func TestResolve_CaseInsensitive(t *testing.T) {
	got, ok := Resolve("los angeles LAKERS")
	if !ok {
		t.Fatal("expected Lakers to resolve")
	}
	if got.Name != "Los Angeles Lakers" {
		t.Fatalf("unexpected name: %s", got.Name)
	}
	if len(got.Abbreviations) != 1 || got.Abbreviations[0] != "LAL" {
		t.Fatalf("unexpected abbreviations: %v", got.Abbreviations)
	}
}

func TestResolve_Unknown(t *testing.T) {
	if _, ok := Resolve("Seattle SuperSonics"); ok {
		t.Fatal("expected unknown team to not resolve")
	}
	if _, ok := Resolve("   "); ok {
		t.Fatal("expected blank name to not resolve")
	}
}

func TestResolve_HistoricalCodes(t *testing.T) {
	got, ok := Resolve("Memphis Grizzlies")
	if !ok {
		t.Fatal("expected Grizzlies to resolve")
	}
	if len(got.Abbreviations) != 2 {
		t.Fatalf("expected MEM and VAN, got %v", got.Abbreviations)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	first := All()
	first[0].Name = "mutated"

	if All()[0].Name != "Atlanta Hawks" {
		t.Fatal("All must not expose the underlying table")
	}
	if len(first) != 30 {
		t.Fatalf("expected 30 franchises, got %d", len(first))
	}
}
