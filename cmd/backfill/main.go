package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/gcamargo/footdata/internal/app"
	"github.com/gcamargo/footdata/internal/config"
	"github.com/gcamargo/footdata/internal/observability"
	"github.com/gcamargo/footdata/internal/platform/logging"
	"github.com/gcamargo/footdata/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	var (
		planPath      = flag.String("plan", "", "path to the crawl plan JSON file")
		resume        = flag.Bool("resume", false, "skip done units and continue the rest from their checkpoints")
		dryRun        = flag.Bool("dry-run", false, "walk the plan without calling the provider or writing raw rows")
		stopAfter     = flag.Int("stop-after", 0, "stop after this many units (0 = no bound)")
		replay        = flag.Bool("replay", false, "re-derive normalized rows from captured raw bodies instead of crawling")
		replayLimit   = flag.Int("replay-limit", 0, "max stored bodies replayed per endpoint (0 = default)")
		replayWorkers = flag.Int("replay-workers", 0, "replay worker pool size (0 = default)")
		replayLeagues = flag.String("replay-leagues", "", "comma-separated league ids to keep when replaying league payloads")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownUptrace(ctx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plan, err := usecase.LoadPlan(strings.TrimSpace(*planPath))
	if err != nil {
		logger.Error("load plan", "path", *planPath, "error", err)
		os.Exit(1)
	}

	if *replay {
		leagueIDs, err := parseLeagueIDs(*replayLeagues)
		if err != nil {
			logger.Error("parse replay leagues", "error", err)
			os.Exit(1)
		}

		result, err := application.Replay.Run(ctx, usecase.ReplayInput{
			Provider:  plan.Provider,
			Endpoints: planEndpointIDs(plan),
			Limit:     *replayLimit,
			Workers:   *replayWorkers,
			LeagueIDs: leagueIDs,
		})
		if err != nil {
			logger.Error("replay run failed", "error", err)
			os.Exit(1)
		}
		printJSON(result)
		return
	}

	counters, err := application.Backfill.Run(ctx, plan, usecase.BackfillOptions{
		Resume:         *resume,
		DryRun:         *dryRun,
		StopAfterUnits: *stopAfter,
	})
	printJSON(counters)
	if err != nil {
		logger.Error("backfill run failed", "error", err)
		os.Exit(1)
	}
}

func planEndpointIDs(plan usecase.Plan) []string {
	ids := make([]string, 0, len(plan.Endpoints))
	for _, ep := range plan.Endpoints {
		ids = append(ids, ep.ID)
	}
	return ids
}

func parseLeagueIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid league id %q: %w", item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(v any) {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
