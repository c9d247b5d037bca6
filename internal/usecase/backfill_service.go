package usecase

import (
	"context"
	"fmt"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/gcamargo/footdata/external/apifootball"
	"github.com/gcamargo/footdata/internal/domain/checkpoint"
	"github.com/gcamargo/footdata/internal/domain/league"
	"github.com/gcamargo/footdata/internal/platform/logging"
)

const syntheticTransportStatus = 599

// Fetcher is the provider boundary. Ordinary HTTP error statuses come
// back as (status, body, nil); only transport failures return an error,
// and those are converted to synthetic failed pages here.
type Fetcher interface {
	Get(ctx context.Context, path string, params map[string]string) (int, map[string]any, error)
}

// BackfillOptions are the operator controls for one run.
type BackfillOptions struct {
	// Resume skips done units and starts the rest at lastPageDone+1.
	Resume bool
	// DryRun skips fetching and raw writes, synthesizing one empty
	// successful page per unit. Checkpoints are still written.
	DryRun bool
	// StopAfterUnits, when positive, ends the run early between units.
	StopAfterUnits int
}

// BackfillCounters aggregates the whole run. Partial failure never
// raises; it only shows up here and in checkpoint state.
type BackfillCounters struct {
	RawInserted  int `json:"raw_inserted"`
	RawDeduped   int `json:"raw_dedup"`
	CoreUpserts  int `json:"core_upserts"`
	CoreRejected int `json:"core_rejected"`
	CallsOK      int `json:"calls_ok"`
	CallsFail    int `json:"calls_fail"`
	PagesOK      int `json:"pages_ok"`
	PagesFail    int `json:"pages_fail"`
	Units        int `json:"units"`
	UnitsSkipped int `json:"units_skipped"`
}

// BackfillService walks the plan's unit cross product strictly
// sequentially. The provider's per-key rate limiting makes concurrency
// counterproductive here.
type BackfillService struct {
	fetcher     Fetcher
	capture     *CaptureService
	reconcile   *ReconcileService
	checkpoints checkpoint.Repository
	leagues     league.Repository
	logger      *logging.Logger
}

func NewBackfillService(
	fetcher Fetcher,
	capture *CaptureService,
	reconcile *ReconcileService,
	checkpoints checkpoint.Repository,
	leagues league.Repository,
	logger *logging.Logger,
) *BackfillService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{
		fetcher:     fetcher,
		capture:     capture,
		reconcile:   reconcile,
		checkpoints: checkpoints,
		leagues:     leagues,
		logger:      logger,
	}
}

// Run executes the plan. It returns an error only for infrastructure
// failures (database unreachable); provider failures terminate their
// unit and are reflected in counters and checkpoints.
func (s *BackfillService) Run(ctx context.Context, plan Plan, opts BackfillOptions) (BackfillCounters, error) {
	ctx, span := startUsecaseSpan(ctx, "BackfillService.Run")
	defer span.End()

	counters := BackfillCounters{}

	units, err := BuildUnits(ctx, plan, s.leagues)
	if err != nil {
		return counters, err
	}

	s.logger.InfoContext(ctx, "backfill run starting",
		"provider", plan.Provider, "units", len(units),
		"resume", opts.Resume, "dry_run", opts.DryRun)

	processed := 0
	for _, unit := range units {
		if opts.StopAfterUnits > 0 && processed >= opts.StopAfterUnits {
			s.logger.InfoContext(ctx, "stop-after bound reached", "units", processed)
			break
		}

		skipped, err := s.runUnit(ctx, unit, plan.Paging, opts, &counters)
		if err != nil {
			// Infrastructure failure. The checkpoint already reflects
			// the last committed page, so a resumed run picks up there.
			return counters, fmt.Errorf("unit endpoint=%s league=%d season=%d: %w",
				unit.Key.Endpoint, unit.Key.LeagueID, unit.Key.Season, err)
		}
		if skipped {
			counters.UnitsSkipped++
			continue
		}
		counters.Units++
		processed++
	}

	s.logger.InfoContext(ctx, "backfill run finished",
		"units", counters.Units, "units_skipped", counters.UnitsSkipped,
		"pages_ok", counters.PagesOK, "pages_fail", counters.PagesFail,
		"raw_inserted", counters.RawInserted, "raw_dedup", counters.RawDeduped,
		"core_upserts", counters.CoreUpserts, "core_rejected", counters.CoreRejected)

	return counters, nil
}

func (s *BackfillService) runUnit(
	ctx context.Context,
	unit Unit,
	paging PagingPlan,
	opts BackfillOptions,
	counters *BackfillCounters,
) (bool, error) {
	cp, err := s.checkpoints.Get(ctx, unit.Key)
	if err != nil {
		return false, err
	}

	if opts.Resume && cp.Status == checkpoint.StatusDone {
		return true, nil
	}

	page := 1
	if opts.Resume {
		page = cp.LastPageDone + 1
	}
	totalPages := cp.TotalPages

	for {
		// Untrusted paging metadata: a malformed total must not drive
		// an unbounded loop.
		if page > paging.MaxPagesSafety {
			counters.PagesFail++
			return false, s.checkpoints.Upsert(ctx, checkpoint.Checkpoint{
				Key:          unit.Key,
				LastPageDone: page - 1,
				TotalPages:   totalPages,
				Status:       checkpoint.StatusFailed,
				Meta:         map[string]any{"reason": "max_pages_safety_exceeded"},
			})
		}

		params := cloneParams(unit.Params)
		if paging.PageParam != "" {
			params[paging.PageParam] = strconv.Itoa(page)
		}

		status, payload := s.fetchPage(ctx, unit, params, opts.DryRun, page)
		ok := status >= 200 && status < 300 && !apifootball.HasProviderErrors(payload)
		if ok {
			counters.CallsOK++
		} else {
			counters.CallsFail++
		}

		if !opts.DryRun {
			inserted, _, err := s.capture.Store(ctx,
				unit.Key.Provider, unit.Key.Endpoint, params, payload, status, ok, payloadErrorText(payload))
			if err != nil {
				return false, err
			}
			if inserted {
				counters.RawInserted++
			} else {
				counters.RawDeduped++
			}
		}

		if !ok {
			counters.PagesFail++
			s.logger.WarnContext(ctx, "page failed, terminating unit",
				"endpoint", unit.Key.Endpoint, "league", unit.Key.LeagueID,
				"season", unit.Key.Season, "page", page, "http_status", status)
			return false, s.checkpoints.Upsert(ctx, checkpoint.Checkpoint{
				Key:          unit.Key,
				LastPageDone: page - 1,
				TotalPages:   totalPages,
				Status:       checkpoint.StatusFailed,
				Meta: map[string]any{
					"http_status": status,
					"errors":      payload["errors"],
				},
			})
		}

		applied, rejected, err := s.reconcile.ApplyPayload(ctx, unit.Kind, payload)
		if err != nil {
			return false, err
		}
		counters.CoreUpserts += applied
		counters.CoreRejected += rejected
		counters.PagesOK++

		declaredTotal := apifootball.TotalPages(payload)
		if declaredTotal == nil {
			// No paging metadata at all: the endpoint is unpaginated
			// and one page is the whole unit.
			one := 1
			return false, s.checkpoints.Upsert(ctx, checkpoint.Checkpoint{
				Key:          unit.Key,
				LastPageDone: page,
				TotalPages:   &one,
				Status:       checkpoint.StatusDone,
				Meta:         map[string]any{"note": "no_paging_in_payload"},
			})
		}
		totalPages = declaredTotal

		if page >= *declaredTotal {
			return false, s.checkpoints.Upsert(ctx, checkpoint.Checkpoint{
				Key:          unit.Key,
				LastPageDone: page,
				TotalPages:   totalPages,
				Status:       checkpoint.StatusDone,
				Meta:         map[string]any{"note": "completed"},
			})
		}

		if err := s.checkpoints.Upsert(ctx, checkpoint.Checkpoint{
			Key:          unit.Key,
			LastPageDone: page,
			TotalPages:   totalPages,
			Status:       checkpoint.StatusRunning,
			Meta:         map[string]any{"last_ok_status": status},
		}); err != nil {
			return false, err
		}
		page++
	}
}

// fetchPage wraps the provider call. A transport error becomes a
// synthetic 599 page with a structured error body so it flows through
// the same capture and checkpoint path as a real failure response.
func (s *BackfillService) fetchPage(
	ctx context.Context,
	unit Unit,
	params map[string]string,
	dryRun bool,
	page int,
) (int, map[string]any) {
	if dryRun {
		return 200, map[string]any{
			"response": []any{},
			"paging":   map[string]any{"current": page, "total": page},
		}
	}

	status, payload, err := s.fetcher.Get(ctx, unit.Path, params)
	if err != nil {
		s.logger.WarnContext(ctx, "transport failure, recording synthetic page",
			"endpoint", unit.Key.Endpoint, "page", page,
			"transient", crerr.Is(err, apifootball.ErrTransport), "error", err)
		return syntheticTransportStatus, map[string]any{
			"errors": map[string]any{"transport": err.Error()},
		}
	}
	if payload == nil {
		payload = map[string]any{
			"errors": map[string]any{"body": "empty_payload"},
		}
	}
	return status, payload
}

func payloadErrorText(payload map[string]any) *string {
	errs, present := payload["errors"]
	if !present {
		return nil
	}
	switch typed := errs.(type) {
	case map[string]any:
		if len(typed) == 0 {
			return nil
		}
	case []any:
		if len(typed) == 0 {
			return nil
		}
	case nil:
		return nil
	}
	text := fmt.Sprintf("%v", errs)
	return &text
}

func cloneParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for key, value := range params {
		out[key] = value
	}
	return out
}
