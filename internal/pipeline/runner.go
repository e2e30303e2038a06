package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"skillpulse/internal/analytics"
	"skillpulse/internal/cache"
	"skillpulse/internal/config"
	"skillpulse/internal/errors"
	"skillpulse/internal/models"
	"skillpulse/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("skillpulse/pipeline")

// SnapshotCacheKey is where the latest serialized snapshot lives in redis
// for the serving layer to pick up.
const SnapshotCacheKey = "analytics:snapshot:latest"

// PostingSource supplies the immutable posting list for one analytics run.
type PostingSource interface {
	LoadAll(ctx context.Context) ([]models.Posting, error)
}

// SnapshotSink receives the finished snapshot.
type SnapshotSink interface {
	Insert(ctx context.Context, snapshot *analytics.Snapshot) error
}

// Runner recomputes the analytics snapshot on a fixed interval: load all
// postings, run the engine once over that frozen slice, persist the
// snapshot row, and cache the serialized form. Runs never overlap.
type Runner struct {
	logger   *zap.Logger
	source   PostingSource
	sink     SnapshotSink
	cache    cache.Cache
	engine   *analytics.Engine
	config   *config.Config
	mutex    sync.Mutex
	isActive bool
}

func NewRunner(logger *zap.Logger, source PostingSource, sink SnapshotSink, snapshotCache cache.Cache, engine *analytics.Engine, config *config.Config) *Runner {
	return &Runner{
		logger: logger,
		source: source,
		sink:   sink,
		cache:  snapshotCache,
		engine: engine,
		config: config,
	}
}

func (r *Runner) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Runner.Start")
	defer span.End()

	r.mutex.Lock()
	if r.isActive {
		r.mutex.Unlock()
		return nil
	}
	r.isActive = true
	r.mutex.Unlock()

	ticker := time.NewTicker(r.config.SnapshotInterval)
	defer ticker.Stop()

	if err := r.RunOnce(ctx); err != nil {
		r.logger.Error("initial snapshot run failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logger.Error("periodic snapshot run failed", zap.Error(err))
			}
		}
	}
}

func (r *Runner) Stop() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.isActive = false
}

// RunOnce performs a single analytics pass. Failures are reported to the
// caller; the next tick retries from scratch.
func (r *Runner) RunOnce(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Runner.RunOnce")
	defer span.End()

	postings, err := r.source.LoadAll(ctx)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("loading postings", err)
	}

	snapshot := r.engine.BuildSnapshot(postings)
	span.SetAttributes(
		telemetry.Int("postings.count", len(postings)),
		telemetry.Int("forecasts.count", len(snapshot.Forecasts)),
		telemetry.Int("cities.count", len(snapshot.Heatmap.Cities)),
	)

	if err := r.sink.Insert(ctx, &snapshot); err != nil {
		span.RecordError(err)
		return errors.Internal("storing snapshot", err)
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling snapshot", err)
	}
	if err := r.cache.Set(ctx, SnapshotCacheKey, string(payload), r.config.SnapshotCacheTTL); err != nil {
		// The snapshot row is already durable; a stale cache entry just
		// ages out.
		r.logger.Warn("failed to cache snapshot", zap.Error(err))
	}

	r.logger.Info("analytics snapshot complete",
		zap.Int("postings", len(postings)),
		zap.Int("forecasts", len(snapshot.Forecasts)),
		zap.Int("cities", len(snapshot.Heatmap.Cities)),
		zap.Time("generated_at", snapshot.GeneratedAt))
	return nil
}

// ForecastSkill runs the forecast for a single named skill against the
// current posting set. A skill with no dated postings is a NotFound
// domain error, not an empty result.
func (r *Runner) ForecastSkill(ctx context.Context, skill string) (analytics.TrendResult, error) {
	ctx, span := tracer.Start(ctx, "Runner.ForecastSkill")
	defer span.End()
	span.SetAttributes(telemetry.String("forecast.skill", skill))

	postings, err := r.source.LoadAll(ctx)
	if err != nil {
		span.RecordError(err)
		return analytics.TrendResult{}, errors.Internal("loading postings", err)
	}

	result, ok := r.engine.ForecastOne(skill, postings)
	if !ok {
		return analytics.TrendResult{}, errors.NotFound(fmt.Sprintf("no tracked postings for skill %q", skill), nil)
	}

	span.SetAttributes(
		telemetry.String("forecast.status", result.Status),
		telemetry.Float64("forecast.slope", result.Slope),
		telemetry.Float64("forecast.predicted_change_pct", result.PredictedChangePct),
	)
	return result, nil
}

// TrackedSkills lists the skills a single-skill forecast would accept,
// most frequent first.
func (r *Runner) TrackedSkills(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Runner.TrackedSkills")
	defer span.End()

	postings, err := r.source.LoadAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("loading postings", err)
	}

	skills := r.engine.TrackedSkills(postings)
	span.SetAttributes(telemetry.Int("skills.count", len(skills)))
	return skills, nil
}
