package postgres

import (
	"strings"
	"testing"

	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

func TestOverwriteOnConflict(t *testing.T) {
	got := overwriteOnConflict([]string{"team_id"}, []string{"team_id", "name", "founded_year", "updated_at"})

	want := "ON CONFLICT (team_id) DO UPDATE SET name = EXCLUDED.name, founded_year = EXCLUDED.founded_year, updated_at = NOW()"
	if got != want {
		t.Fatalf("unexpected clause:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestOverwriteOnConflictCompositeKey(t *testing.T) {
	got := overwriteOnConflict([]string{"provider", "endpoint"}, []string{"provider", "endpoint", "status", "updated_at"})

	want := "ON CONFLICT (provider, endpoint) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()"
	if got != want {
		t.Fatalf("unexpected clause:\nwant: %s\ngot:  %s", want, got)
	}
}

// Every nullable column must take the EXCLUDED value unconditionally. A
// COALESCE here would silently switch the merge to null-preserving, so
// the generated statement is pinned.
func TestTeamUpsertOverwritesNullableColumns(t *testing.T) {
	suffix := overwriteOnConflict([]string{"team_id"}, teamColumns)

	query, args, err := qb.InsertModel("teams", teamUpsertModel{TeamID: 33, Name: "A"}, suffix)
	if err != nil {
		t.Fatalf("build upsert team query: %v", err)
	}

	if strings.Contains(query, "COALESCE") {
		t.Fatalf("upsert must not null-coalesce: %s", query)
	}
	if !strings.Contains(query, "founded_year = EXCLUDED.founded_year") {
		t.Fatalf("founded_year must be overwritten from EXCLUDED: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (team_id) DO UPDATE SET") {
		t.Fatalf("upsert must be keyed on team_id: %s", query)
	}
	if len(args) != len(teamColumns) {
		t.Fatalf("expected %d args, got %d", len(teamColumns), len(args))
	}
}

func TestFixtureUpsertCoversAllColumns(t *testing.T) {
	suffix := overwriteOnConflict([]string{"fixture_id"}, fixtureColumns)

	query, _, err := qb.InsertModel("fixtures", fixtureUpsertModel{FixtureID: 1}, suffix)
	if err != nil {
		t.Fatalf("build upsert fixture query: %v", err)
	}

	for _, col := range fixtureColumns {
		if col == "fixture_id" || col == "updated_at" {
			continue
		}
		if !strings.Contains(query, col+" = EXCLUDED."+col) {
			t.Fatalf("column %s missing from overwrite clause: %s", col, query)
		}
	}
}
