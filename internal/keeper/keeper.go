// Package keeper is the rating daemon's service component: it keeps a cached
// leaderboard snapshot fresh on a fixed cadence and serves rating requests
// over HTTP.
package keeper

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/riftline-labs/riftrank/internal/config"
	"github.com/riftline-labs/riftrank/internal/roster"
	"github.com/riftline-labs/riftrank/internal/statsapi"
	"github.com/riftline-labs/riftrank/internal/utils/logger"
)

// Keeper refreshes the leaderboard from the configured stat source and holds
// the latest snapshot for the HTTP handlers. The snapshot is guarded by a
// mutex; everything else is set once at construction.
type Keeper struct {
	Profile  *config.Profile
	StatsAPI statsapi.StatsAPIInterface

	SourceConfig   *config.SourceEnvConfig
	IntervalConfig *config.IntervalConfig

	Ctx    context.Context
	Cancel context.CancelFunc
	Wg     sync.WaitGroup

	mu             sync.Mutex
	snapshot       *Snapshot
	refreshRunning atomic.Bool
	sugar          *zap.SugaredLogger
}

// NewKeeper constructs a Keeper with the refresh cadence of the configured
// environment. At least one stat source must be available: a file path, a
// sheet URL, or a stats API client.
func NewKeeper(cfg *config.AppConfig, profile *config.Profile, api statsapi.StatsAPIInterface) (*Keeper, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("keeper profile: %w", err)
	}
	if cfg.SourcePath == "" && cfg.SourceURL == "" && api == nil {
		return nil, fmt.Errorf("no stat source configured: set SOURCE_PATH, SOURCE_URL or STATS_API_URL")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Keeper{
		Profile:  profile,
		StatsAPI: api,

		SourceConfig:   &cfg.SourceEnvConfig,
		IntervalConfig: config.NewIntervalConfig(cfg.Environment),

		Ctx:    ctx,
		Cancel: cancel,

		sugar: logger.Sugar(),
	}, nil
}

// runTicker runs a function periodically until the provided context is
// canceled. fn is executed in its own goroutine to ensure the ticker loop can
// exit quickly when the context is canceled.
func (k *Keeper) runTicker(ctx context.Context, d time.Duration, fn func()) {
	defer k.Wg.Done()
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go fn()
		}
	}
}

// Start performs an initial refresh and kicks off the periodic one. A failed
// initial refresh is logged, not fatal; the leaderboard stays empty until a
// refresh succeeds.
func (k *Keeper) Start() {
	k.Refresh()

	k.Wg.Add(1)
	go k.runTicker(k.Ctx, k.IntervalConfig.RefreshInterval, func() {
		k.Refresh()
	})
}

// Stop cancels the refresh loop and waits for it to wind down.
func (k *Keeper) Stop() {
	k.Cancel()
	k.Wg.Wait()
	k.sugar.Infow("keeper stopped")
}

// loadTable resolves the stat source in fixed order: file path, sheet URL,
// stats API.
func (k *Keeper) loadTable(ctx context.Context) (*roster.Table, string, error) {
	switch {
	case k.SourceConfig.SourcePath != "":
		t, err := roster.Open(k.SourceConfig.SourcePath)
		return t, k.SourceConfig.SourcePath, err
	case k.SourceConfig.SourceURL != "":
		t, err := roster.Fetch(ctx, k.SourceConfig.SourceURL)
		return t, k.SourceConfig.SourceURL, err
	case k.StatsAPI != nil:
		t, err := k.StatsAPI.GetStatsTable()
		return t, "stats-api", err
	}
	return nil, "", fmt.Errorf("no stat source configured")
}

// Refresh recomputes the leaderboard from scratch and swaps in the new
// snapshot. Overlapping refreshes are skipped rather than queued.
func (k *Keeper) Refresh() {
	if !k.refreshRunning.CompareAndSwap(false, true) {
		return
	}
	defer k.refreshRunning.Store(false)

	start := time.Now()

	table, source, err := k.loadTable(k.Ctx)
	if err != nil {
		k.sugar.Errorw("refresh failed to load stat table", "source", source, "error", err)
		return
	}

	ranking, err := Rank(table, k.Profile)
	if err != nil {
		k.sugar.Errorw("refresh failed to rank players", "source", source, "error", err)
		return
	}

	snap := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Players:     ranking.Players,
		Dropped:     ranking.Dropped,
		Entries:     ranking.Entries,
	}

	k.mu.Lock()
	k.snapshot = snap
	k.mu.Unlock()

	k.sugar.Infow("leaderboard refreshed",
		"source", source,
		"players", ranking.Players,
		"dropped", ranking.Dropped,
		"missing_stats", ranking.Missing,
		"took", time.Since(start).String(),
	)
}

// Snapshot returns the latest leaderboard, or nil when no refresh has
// succeeded yet. Snapshots are immutable once stored.
func (k *Keeper) Snapshot() *Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.snapshot
}
