package checkpoint

import "context"

// Repository describes checkpoint persistence needs from use cases.
type Repository interface {
	// Get returns Default(key) when no row exists.
	Get(ctx context.Context, key Key) (Checkpoint, error)
	// Upsert overwrites the unit's cursor and bumps updated_at. Called
	// after every page attempt, success or failure.
	Upsert(ctx context.Context, cp Checkpoint) error
}
