package usecase

import (
	"context"
	"fmt"

	"github.com/gcamargo/footdata/internal/domain/rawcapture"
	"github.com/gcamargo/footdata/internal/platform/canonjson"
	"github.com/gcamargo/footdata/internal/platform/logging"
)

// CaptureService writes provider responses to the append-only raw
// store. Payloads are canonicalized before hashing so a retried fetch
// of a reordered but semantically identical body still dedupes.
type CaptureService struct {
	raw    rawcapture.Repository
	logger *logging.Logger
}

func NewCaptureService(raw rawcapture.Repository, logger *logging.Logger) *CaptureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CaptureService{raw: raw, logger: logger}
}

// Store persists one fetch attempt, successful or failed. It returns
// inserted=false with the same hash when the payload was already on
// record. Database errors propagate; retry policy lives in the crawler.
func (s *CaptureService) Store(
	ctx context.Context,
	provider, endpoint string,
	requestParams map[string]string,
	payload map[string]any,
	httpStatus int,
	ok bool,
	errorMessage *string,
) (bool, string, error) {
	ctx, span := startUsecaseSpan(ctx, "CaptureService.Store")
	defer span.End()

	canonical, hash, err := canonjson.Hash(payload)
	if err != nil {
		return false, "", fmt.Errorf("canonicalize payload endpoint=%s: %w", endpoint, err)
	}

	inserted, err := s.raw.Insert(ctx, rawcapture.RawResponse{
		Provider:      provider,
		Endpoint:      endpoint,
		RequestParams: requestParams,
		Body:          canonical,
		Hash:          hash,
		HTTPStatus:    httpStatus,
		OK:            ok,
		ErrorMessage:  errorMessage,
	})
	if err != nil {
		return false, "", err
	}

	if !inserted {
		s.logger.DebugContext(ctx, "raw payload already captured",
			"provider", provider, "endpoint", endpoint, "hash", hash)
	}

	return inserted, hash, nil
}
