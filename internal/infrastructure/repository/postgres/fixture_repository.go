package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gcamargo/footdata/internal/domain/fixture"
	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) UpsertMany(ctx context.Context, rows []fixture.Fixture) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert fixtures: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	suffix := overwriteOnConflict([]string{"fixture_id"}, fixtureColumns)
	applied := 0
	for _, row := range rows {
		insertModel := fixtureUpsertModel{
			FixtureID:   row.FixtureID,
			LeagueID:    row.LeagueID,
			Season:      row.Season,
			Round:       row.Round,
			KickoffUTC:  row.KickoffUTC,
			Timezone:    row.Timezone,
			VenueName:   row.VenueName,
			VenueCity:   row.VenueCity,
			HomeTeamID:  row.HomeTeamID,
			AwayTeamID:  row.AwayTeamID,
			StatusLong:  row.StatusLong,
			StatusShort: row.StatusShort,
			ElapsedMin:  row.ElapsedMin,
			GoalsHome:   row.GoalsHome,
			GoalsAway:   row.GoalsAway,
			IsFinished:  row.IsFinished,
			IsCancelled: row.IsCancelled,
			UpdatedAt:   time.Now().UTC(),
		}

		query, args, err := qb.InsertModel("fixtures", insertModel, suffix)
		if err != nil {
			return 0, fmt.Errorf("build upsert fixture query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert fixture id=%d: %w", row.FixtureID, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert fixtures tx: %w", err)
	}

	return applied, nil
}
