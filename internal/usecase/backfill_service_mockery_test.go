package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gcamargo/footdata/internal/domain/checkpoint"
	checkpointmock "github.com/gcamargo/footdata/internal/mocks/domain/checkpoint"
	leaguemock "github.com/gcamargo/footdata/internal/mocks/domain/league"
)

func TestBuildUnits_FromCoreUsesRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	plan := fixturesPlan(10)
	plan.LeagueSource = LeagueSource{Mode: "from_core", MaxLeagues: 2}

	leagueRepo.
		On("ListIDs", mock.Anything, 2).
		Return([]int64{39, 140}, nil).
		Once()

	units, err := BuildUnits(ctx, plan, leagueRepo)
	if err != nil {
		t.Fatalf("build units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("unexpected unit count: got=%d want=2", len(units))
	}
	if units[0].Key.LeagueID != 39 || units[1].Key.LeagueID != 140 {
		t.Fatalf("unexpected league order: %d, %d", units[0].Key.LeagueID, units[1].Key.LeagueID)
	}
}

func TestRun_CheckpointReadFailureAbortsRunUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbErr := errors.New("connection refused")

	checkpointRepo := checkpointmock.NewRepository(t)
	checkpointRepo.
		On("Get", mock.Anything, mock.AnythingOfType("checkpoint.Key")).
		Return(checkpoint.Checkpoint{}, dbErr).
		Once()

	fetcher := &stubFetcher{respond: func(int, string, map[string]string) (int, map[string]any, error) {
		t.Fatal("fetcher must not be called when the checkpoint read fails")
		return 0, nil, nil
	}}
	harness := newBackfillHarness(fetcher)
	service := NewBackfillService(fetcher, harness.service.capture, harness.service.reconcile, checkpointRepo, harness.leagues, nil)

	_, err := service.Run(ctx, fixturesPlan(10), BackfillOptions{})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped checkpoint error, got %v", err)
	}
}
