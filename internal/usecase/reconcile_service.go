package usecase

import (
	"context"
	"fmt"

	"github.com/gcamargo/footdata/external/apifootball"
	"github.com/gcamargo/footdata/internal/domain/fixture"
	"github.com/gcamargo/footdata/internal/domain/league"
	"github.com/gcamargo/footdata/internal/domain/team"
	"github.com/gcamargo/footdata/internal/platform/logging"
)

// ReconcileService applies one provider payload to the normalized
// tables. All rows derived from one payload commit in a single
// transaction per kind; malformed items are counted and dropped, never
// raised.
type ReconcileService struct {
	leagues  league.Repository
	teams    team.Repository
	fixtures fixture.Repository
	logger   *logging.Logger
}

func NewReconcileService(
	leagues league.Repository,
	teams team.Repository,
	fixtures fixture.Repository,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		leagues:  leagues,
		teams:    teams,
		fixtures: fixtures,
		logger:   logger,
	}
}

// ApplyPayload maps the payload's response items for the given kind and
// upserts them. Returns how many rows were applied and how many items
// were rejected as malformed.
func (s *ReconcileService) ApplyPayload(ctx context.Context, kind EntityKind, payload map[string]any) (int, int, error) {
	ctx, span := startUsecaseSpan(ctx, "ReconcileService.ApplyPayload")
	defer span.End()

	items := apifootball.ResponseItems(payload)

	switch kind {
	case EntityLeagues:
		rows := make([]league.League, 0, len(items))
		for _, item := range items {
			row, ok := apifootball.ParseLeague(item)
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
		applied, err := s.leagues.UpsertMany(ctx, rows)
		return s.report(ctx, kind, applied, len(items)-len(rows), err)

	case EntityTeams:
		rows := make([]team.Team, 0, len(items))
		for _, item := range items {
			row, ok := apifootball.ParseTeam(item)
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
		applied, err := s.teams.UpsertMany(ctx, rows)
		return s.report(ctx, kind, applied, len(items)-len(rows), err)

	case EntityFixtures:
		rows := make([]fixture.Fixture, 0, len(items))
		for _, item := range items {
			row, ok := apifootball.ParseFixture(item)
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
		applied, err := s.fixtures.UpsertMany(ctx, rows)
		return s.report(ctx, kind, applied, len(items)-len(rows), err)

	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownEntityKind, kind)
	}
}

func (s *ReconcileService) report(ctx context.Context, kind EntityKind, applied, rejected int, err error) (int, int, error) {
	if err != nil {
		return 0, 0, err
	}
	if rejected > 0 {
		s.logger.WarnContext(ctx, "rejected malformed items",
			"kind", string(kind), "rejected", rejected, "applied", applied)
	}
	return applied, rejected, nil
}
