package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gcamargo/footdata/internal/domain/rawcapture"
	"github.com/gcamargo/footdata/internal/platform/canonjson"
	qb "github.com/gcamargo/footdata/internal/platform/querybuilder"
)

type RawResponseRepository struct {
	db *sqlx.DB
}

func NewRawResponseRepository(db *sqlx.DB) *RawResponseRepository {
	return &RawResponseRepository{db: db}
}

func (r *RawResponseRepository) Insert(ctx context.Context, row rawcapture.RawResponse) (bool, error) {
	params, err := canonjson.Marshal(row.RequestParams)
	if err != nil {
		return false, fmt.Errorf("encode request params: %w", err)
	}

	fetchedAt := row.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	insertModel := rawResponseInsertModel{
		Provider:      row.Provider,
		Endpoint:      row.Endpoint,
		RequestParams: params,
		ResponseBody:  row.Body,
		ResponseHash:  row.Hash,
		HTTPStatus:    row.HTTPStatus,
		OK:            row.OK,
		ErrorMessage:  row.ErrorMessage,
		FetchedAt:     fetchedAt,
	}

	query, args, err := qb.InsertModel("raw_api_responses", insertModel,
		"ON CONFLICT (provider, endpoint, response_hash) DO NOTHING RETURNING id")
	if err != nil {
		return false, fmt.Errorf("build insert raw response query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			// Conflict path: DO NOTHING returns no row, the payload was
			// already captured.
			return false, nil
		}
		return false, fmt.Errorf("insert raw response endpoint=%s: %w", row.Endpoint, err)
	}

	return true, nil
}

func (r *RawResponseRepository) ListOK(ctx context.Context, provider, endpoint string, limit int) ([]rawcapture.RawResponse, error) {
	query, args, err := qb.Select("id", "provider", "endpoint", "request_params", "response_body", "response_hash", "http_status", "ok", "error_message", "fetched_at").
		From("raw_api_responses").
		Where(
			qb.Eq("provider", provider),
			qb.Eq("endpoint", endpoint),
			qb.Eq("ok", true),
		).
		OrderBy("id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select raw responses query: %w", err)
	}

	var rows []rawResponseTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select raw responses endpoint=%s: %w", endpoint, err)
	}

	out := make([]rawcapture.RawResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, rawcapture.RawResponse{
			ID:           row.ID,
			Provider:     row.Provider,
			Endpoint:     row.Endpoint,
			Body:         row.ResponseBody,
			Hash:         row.ResponseHash,
			HTTPStatus:   row.HTTPStatus,
			OK:           row.OK,
			ErrorMessage: row.ErrorMessage,
			FetchedAt:    row.FetchedAt,
		})
	}

	return out, nil
}
