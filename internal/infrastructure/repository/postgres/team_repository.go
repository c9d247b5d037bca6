package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gcamargo/footdata/internal/domain/team"
	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, rows []team.Team) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	suffix := overwriteOnConflict([]string{"team_id"}, teamColumns)
	applied := 0
	for _, row := range rows {
		insertModel := teamUpsertModel{
			TeamID:        row.TeamID,
			Name:          row.Name,
			Code:          row.Code,
			CountryName:   row.CountryName,
			FoundedYear:   row.FoundedYear,
			IsNational:    row.IsNational,
			LogoURL:       row.LogoURL,
			VenueID:       row.VenueID,
			VenueName:     row.VenueName,
			VenueCity:     row.VenueCity,
			VenueCapacity: row.VenueCapacity,
			UpdatedAt:     time.Now().UTC(),
		}

		query, args, err := qb.InsertModel("teams", insertModel, suffix)
		if err != nil {
			return 0, fmt.Errorf("build upsert team query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert team id=%d: %w", row.TeamID, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert teams tx: %w", err)
	}

	return applied, nil
}
