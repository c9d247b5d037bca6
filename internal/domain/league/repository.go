package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// UpsertMany applies all rows in one transaction, overwriting every
	// non-key column on conflict.
	UpsertMany(ctx context.Context, rows []League) (int, error)
	// ListIDs returns up to limit league ids in ascending order.
	ListIDs(ctx context.Context, limit int) ([]int64, error)
}
