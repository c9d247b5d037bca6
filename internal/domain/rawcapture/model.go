package rawcapture

import "time"

// RawResponse is an immutable fact: one HTTP exchange with a provider,
// successful or not. The canonical body hash dedupes retried fetches of
// byte-identical payloads.
type RawResponse struct {
	ID            int64
	Provider      string
	Endpoint      string
	RequestParams map[string]string
	Body          []byte
	Hash          string
	HTTPStatus    int
	OK            bool
	ErrorMessage  *string
	FetchedAt     time.Time
}
