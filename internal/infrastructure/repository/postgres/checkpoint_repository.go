package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/gcamargo/footdata/internal/domain/checkpoint"
	"github.com/gcamargo/footdata/internal/platform/canonjson"
	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

type CheckpointRepository struct {
	db *sqlx.DB
}

func NewCheckpointRepository(db *sqlx.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) Get(ctx context.Context, key checkpoint.Key) (checkpoint.Checkpoint, error) {
	query, args, err := qb.Select("provider", "endpoint", "league_id", "season", "last_page_done", "total_pages", "status", "meta", "updated_at").
		From("backfill_checkpoints").
		Where(
			qb.Eq("provider", key.Provider),
			qb.Eq("endpoint", key.Endpoint),
			qb.Eq("league_id", key.LeagueID),
			qb.Eq("season", key.Season),
		).
		ToSQL()
	if err != nil {
		return checkpoint.Checkpoint{}, fmt.Errorf("build select checkpoint query: %w", err)
	}

	var row checkpointTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return checkpoint.Default(key), nil
		}
		return checkpoint.Checkpoint{}, fmt.Errorf("select checkpoint endpoint=%s league=%d season=%d: %w",
			key.Endpoint, key.LeagueID, key.Season, err)
	}

	meta := map[string]any{}
	if len(row.Meta) > 0 {
		if err := sonic.Unmarshal(row.Meta, &meta); err != nil {
			return checkpoint.Checkpoint{}, fmt.Errorf("decode checkpoint meta: %w", err)
		}
	}

	return checkpoint.Checkpoint{
		Key:          key,
		LastPageDone: row.LastPageDone,
		TotalPages:   row.TotalPages,
		Status:       checkpoint.Status(row.Status),
		Meta:         meta,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (r *CheckpointRepository) Upsert(ctx context.Context, cp checkpoint.Checkpoint) error {
	meta := cp.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := canonjson.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode checkpoint meta: %w", err)
	}

	insertModel := checkpointInsertModel{
		Provider:     cp.Provider,
		Endpoint:     cp.Endpoint,
		LeagueID:     cp.LeagueID,
		Season:       cp.Season,
		LastPageDone: cp.LastPageDone,
		TotalPages:   cp.TotalPages,
		Status:       string(cp.Status),
		Meta:         metaJSON,
		UpdatedAt:    time.Now().UTC(),
	}

	query, args, err := qb.InsertModel("backfill_checkpoints", insertModel,
		`ON CONFLICT (provider, endpoint, league_id, season) DO UPDATE SET
    last_page_done = EXCLUDED.last_page_done,
    total_pages = EXCLUDED.total_pages,
    status = EXCLUDED.status,
    meta = EXCLUDED.meta,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert checkpoint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert checkpoint endpoint=%s league=%d season=%d: %w",
			cp.Endpoint, cp.LeagueID, cp.Season, err)
	}

	return nil
}
