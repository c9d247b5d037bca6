package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gcamargo/footdata/internal/domain/league"
	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, rows []league.League) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert leagues: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	suffix := overwriteOnConflict([]string{"league_id"}, leagueColumns)
	applied := 0
	for _, row := range rows {
		insertModel := leagueUpsertModel{
			LeagueID:    row.LeagueID,
			Name:        row.Name,
			Type:        row.Type,
			CountryName: row.CountryName,
			CountryCode: row.CountryCode,
			LogoURL:     row.LogoURL,
			FlagURL:     row.FlagURL,
			IsActive:    row.IsActive,
			UpdatedAt:   time.Now().UTC(),
		}

		query, args, err := qb.InsertModel("leagues", insertModel, suffix)
		if err != nil {
			return 0, fmt.Errorf("build upsert league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert league id=%d: %w", row.LeagueID, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert leagues tx: %w", err)
	}

	return applied, nil
}

func (r *LeagueRepository) ListIDs(ctx context.Context, limit int) ([]int64, error) {
	query, args, err := qb.Select("league_id").
		From("leagues").
		OrderBy("league_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select league ids: %w", err)
	}

	return ids, nil
}
