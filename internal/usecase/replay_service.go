package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/gcamargo/footdata/internal/domain/rawcapture"
	"github.com/gcamargo/footdata/internal/platform/logging"
)

const (
	replayStatusSuccess = "success"
	replayStatusFailed  = "failed"

	defaultReplayLimit   = 1000
	defaultReplayWorkers = 3
)

type ReplayInput struct {
	Provider  string
	Endpoints []string
	// Limit caps how many stored bodies are replayed per endpoint.
	Limit   int
	Workers int
	// LeagueIDs, when set, narrows replayed league items to this
	// allowlist. Ignored for other kinds.
	LeagueIDs []int64
}

type ReplayResult struct {
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []ReplayTaskResult `json:"tasks"`
}

type ReplayTaskResult struct {
	Endpoint   string `json:"endpoint"`
	Status     string `json:"status"`
	Payloads   int    `json:"payloads"`
	Applied    int    `json:"applied"`
	Rejected   int    `json:"rejected"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// ReplayService re-derives normalized rows from already captured raw
// bodies, without touching the provider. Endpoints run through a small
// worker pool; that is safe because each kind writes a disjoint table.
type ReplayService struct {
	raw       rawcapture.Repository
	reconcile *ReconcileService
	logger    *logging.Logger
}

func NewReplayService(raw rawcapture.Repository, reconcile *ReconcileService, logger *logging.Logger) *ReplayService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReplayService{raw: raw, reconcile: reconcile, logger: logger}
}

func (s *ReplayService) Run(ctx context.Context, input ReplayInput) (ReplayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ReplayService.Run")
	defer span.End()

	if input.Provider == "" {
		return ReplayResult{}, fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}
	if len(input.Endpoints) == 0 {
		return ReplayResult{}, fmt.Errorf("%w: at least one endpoint is required", ErrInvalidInput)
	}
	// Resolve every endpoint before spawning work.
	kinds := make(map[string]EntityKind, len(input.Endpoints))
	for _, endpoint := range input.Endpoints {
		kind, err := ResolveEntityKind(endpoint)
		if err != nil {
			return ReplayResult{}, err
		}
		kinds[endpoint] = kind
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultReplayLimit
	}
	workerCount := input.Workers
	if workerCount <= 0 {
		workerCount = defaultReplayWorkers
	}
	if workerCount > len(input.Endpoints) {
		workerCount = len(input.Endpoints)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int64
	var failedCount atomic.Int64
	results := make(chan ReplayTaskResult, len(input.Endpoints))

	var workers sync.WaitGroup
	for _, endpoint := range input.Endpoints {
		endpoint := endpoint
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.replayEndpoint(ctx, input, endpoint, kinds[endpoint], limit)
			row.DurationMs = time.Since(start).Milliseconds()

			if row.Status == replayStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			failedCount.Add(1)
			results <- ReplayTaskResult{
				Endpoint: endpoint,
				Status:   replayStatusFailed,
				Message:  fmt.Sprintf("submit task: %v", err),
			}
		}
	}

	workers.Wait()
	close(results)

	tasks := make([]ReplayTaskResult, 0, len(input.Endpoints))
	for row := range results {
		tasks = append(tasks, row)
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Endpoint < tasks[j].Endpoint })

	return ReplayResult{
		TaskCount:    len(tasks),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Tasks:        tasks,
	}, nil
}

func (s *ReplayService) replayEndpoint(
	ctx context.Context,
	input ReplayInput,
	endpoint string,
	kind EntityKind,
	limit int,
) ReplayTaskResult {
	row := ReplayTaskResult{Endpoint: endpoint, Status: replayStatusSuccess}

	stored, err := s.raw.ListOK(ctx, input.Provider, endpoint, limit)
	if err != nil {
		row.Status = replayStatusFailed
		row.Message = fmt.Sprintf("list raw responses: %v", err)
		return row
	}

	for _, capture := range stored {
		var payload map[string]any
		if err := sonic.Unmarshal(capture.Body, &payload); err != nil {
			// Stored bodies are canonical JSON; a decode failure here
			// is data corruption, not a malformed provider item.
			row.Status = replayStatusFailed
			row.Message = fmt.Sprintf("decode stored body id=%d: %v", capture.ID, err)
			return row
		}
		if kind == EntityLeagues && len(input.LeagueIDs) > 0 {
			payload = filterLeaguePayload(payload, input.LeagueIDs)
		}

		applied, rejected, err := s.reconcile.ApplyPayload(ctx, kind, payload)
		if err != nil {
			row.Status = replayStatusFailed
			row.Message = fmt.Sprintf("apply stored body id=%d: %v", capture.ID, err)
			return row
		}
		row.Payloads++
		row.Applied += applied
		row.Rejected += rejected
	}

	s.logger.InfoContext(ctx, "replayed endpoint",
		"endpoint", endpoint, "payloads", row.Payloads,
		"applied", row.Applied, "rejected", row.Rejected)
	return row
}

func filterLeaguePayload(payload map[string]any, allow []int64) map[string]any {
	allowed := make(map[float64]struct{}, len(allow))
	for _, id := range allow {
		allowed[float64(id)] = struct{}{}
	}

	raw, ok := payload["response"].([]any)
	if !ok {
		return payload
	}
	filtered := make([]any, 0, len(raw))
	for _, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		leagueObj, ok := item["league"].(map[string]any)
		if !ok {
			continue
		}
		id, ok := leagueObj["id"].(float64)
		if !ok {
			continue
		}
		if _, keep := allowed[id]; keep {
			filtered = append(filtered, item)
		}
	}

	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	out["response"] = filtered
	return out
}
