package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildUnits_CrossProductOrder(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "ids", IDs: []int64{39, 140}},
		Seasons:      SeasonSource{Mode: "range", Start: 2023, End: 2024},
		Endpoints: []PlanEndpoint{
			{ID: "teams", Path: "/teams", Params: map[string]string{"league": "{league_id}", "season": "{season}"}},
			{ID: "fixtures", Path: "/fixtures", Params: map[string]string{"league": "{league_id}", "season": "{season}"}},
		},
		Paging: PagingPlan{PageParam: "page", MaxPagesSafety: 25},
	}

	units, err := BuildUnits(context.Background(), plan, &memLeagueRepo{})
	if err != nil {
		t.Fatalf("build units: %v", err)
	}
	if len(units) != 8 {
		t.Fatalf("expected 8 units, got %d", len(units))
	}

	// League is the outermost loop, then season, then endpoint.
	first := units[0]
	if first.Key.LeagueID != 39 || first.Key.Season != 2023 || first.Key.Endpoint != "teams" {
		t.Fatalf("unexpected first unit: %+v", first.Key)
	}
	second := units[1]
	if second.Key.Endpoint != "fixtures" || second.Key.Season != 2023 {
		t.Fatalf("unexpected second unit: %+v", second.Key)
	}
	last := units[7]
	if last.Key.LeagueID != 140 || last.Key.Season != 2024 || last.Key.Endpoint != "fixtures" {
		t.Fatalf("unexpected last unit: %+v", last.Key)
	}

	if first.Params["league"] != "39" || first.Params["season"] != "2023" {
		t.Fatalf("templates not substituted: %+v", first.Params)
	}
	if last.Params["league"] != "140" || last.Params["season"] != "2024" {
		t.Fatalf("templates not substituted: %+v", last.Params)
	}
}

func TestBuildUnits_FromCoreUsesLowestLeagueIDs(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "from_core", MaxLeagues: 2},
		Seasons:      SeasonSource{Mode: "list", Items: []int{2024}},
		Endpoints:    []PlanEndpoint{{ID: "teams", Path: "/teams"}},
		Paging:       PagingPlan{PageParam: "page", MaxPagesSafety: 25},
	}

	leagues := &memLeagueRepo{ids: []int64{39, 61, 78}}
	units, err := BuildUnits(context.Background(), plan, leagues)
	if err != nil {
		t.Fatalf("build units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Key.LeagueID != 39 || units[1].Key.LeagueID != 61 {
		t.Fatalf("unexpected league ids: %+v", units)
	}
}

func TestBuildUnits_IDsModeRespectsMaxLeagues(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "ids", IDs: []int64{39, 140, 135}, MaxLeagues: 2},
		Seasons:      SeasonSource{Mode: "list", Items: []int{2024}},
		Endpoints:    []PlanEndpoint{{ID: "leagues", Path: "/leagues"}},
		Paging:       PagingPlan{MaxPagesSafety: 5},
	}

	units, err := BuildUnits(context.Background(), plan, &memLeagueRepo{})
	if err != nil {
		t.Fatalf("build units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
}

func TestPlanValidate_UnknownEndpointIDFailsLoudly(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "ids", IDs: []int64{39}},
		Seasons:      SeasonSource{Mode: "list", Items: []int{2024}},
		Endpoints:    []PlanEndpoint{{ID: "fixturez", Path: "/fixtures"}},
		Paging:       PagingPlan{PageParam: "page", MaxPagesSafety: 25},
	}

	err := plan.Validate()
	if !errors.Is(err, ErrUnknownEntityKind) {
		t.Fatalf("typo in endpoint id must fail at plan build, got %v", err)
	}
}

func TestPlanValidate_RequiresSafetyBound(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "ids", IDs: []int64{39}},
		Seasons:      SeasonSource{Mode: "list", Items: []int{2024}},
		Endpoints:    []PlanEndpoint{{ID: "fixtures", Path: "/fixtures"}},
	}

	if err := plan.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing max_pages_safety must fail validation, got %v", err)
	}
}

func TestPlanValidate_RejectsBadSeasonRange(t *testing.T) {
	t.Parallel()

	plan := Plan{
		Provider:     "apifootball",
		LeagueSource: LeagueSource{Mode: "ids", IDs: []int64{39}},
		Seasons:      SeasonSource{Mode: "range", Start: 2024, End: 2021},
		Endpoints:    []PlanEndpoint{{ID: "fixtures", Path: "/fixtures"}},
		Paging:       PagingPlan{PageParam: "page", MaxPagesSafety: 25},
	}

	if err := plan.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted season range must fail validation, got %v", err)
	}
}

func TestLoadPlan(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.json")
	content := `{
  "provider": "apifootball",
  "league_source": {"mode": "ids", "ids": [39, 140], "max_leagues": 5},
  "seasons": {"mode": "range", "start": 2022, "end": 2024},
  "endpoints": [
    {"id": "leagues", "path": "/leagues", "params": {"id": "{league_id}"}},
    {"id": "teams", "path": "/teams", "params": {"league": "{league_id}", "season": "{season}"}},
    {"id": "fixtures", "path": "/fixtures", "params": {"league": "{league_id}", "season": "{season}"}}
  ],
  "paging": {"page_param": "page", "max_pages_safety": 25}
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if plan.Provider != "apifootball" || len(plan.Endpoints) != 3 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if plan.Paging.MaxPagesSafety != 25 {
		t.Fatalf("unexpected safety bound: %d", plan.Paging.MaxPagesSafety)
	}

	if _, err := LoadPlan(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing plan file must error")
	}
}
