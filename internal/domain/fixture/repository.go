package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, rows []Fixture) (int, error)
}
