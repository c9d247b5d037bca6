package rawcapture

import "context"

// Repository describes raw-response persistence needs from use cases.
type Repository interface {
	// Insert stores the response once per (provider, endpoint, hash).
	// inserted=false means an identical payload was already on record
	// and the new attempt's params and status were discarded.
	Insert(ctx context.Context, row RawResponse) (bool, error)
	// ListOK returns bodies of successful captures for replay, oldest
	// first, up to limit.
	ListOK(ctx context.Context, provider, endpoint string, limit int) ([]RawResponse, error)
}
