package scheduler

import (
	"context"
	"sync"
	"time"

	"skillpulse/internal/config"
	"skillpulse/internal/errors"
	"skillpulse/internal/ingestion"
	"skillpulse/internal/messaging"
	"skillpulse/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("skillpulse/scheduler")

// IngestScheduler drives the ingestion cycle: every polling interval it
// fans the configured (city, role) pairs out to search workers, dedupes
// the results, and publishes each unique posting to NATS.
type IngestScheduler struct {
	client        ingestion.JobBoardClient
	publisher     messaging.Publisher
	logger        *zap.Logger
	config        *config.Config
	mutex         sync.Mutex
	isActive      bool
	workerManager *workerManager
}

type searchTask struct {
	city string
	role string
}

type ingestStats struct {
	searchesCompleted int32
	postingsPublished int32
	duplicatesSkipped int32
}

func NewIngestScheduler(client ingestion.JobBoardClient, publisher messaging.Publisher, logger *zap.Logger, config *config.Config) *IngestScheduler {
	scheduler := &IngestScheduler{
		client:    client,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
	scheduler.workerManager = newWorkerManager(scheduler, logger)
	return scheduler
}

func (s *IngestScheduler) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "IngestScheduler.Start")
	defer span.End()

	s.mutex.Lock()
	if s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = true
	s.mutex.Unlock()

	ticker := time.NewTicker(s.config.PollingInterval)
	defer ticker.Stop()

	if err := s.runCycle(ctx); err != nil {
		s.logger.Error("initial ingest cycle failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				s.logger.Error("periodic ingest cycle failed", zap.Error(err))
			}
		}
	}
}

func (s *IngestScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isActive = false
}

func (s *IngestScheduler) runCycle(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "IngestScheduler.runCycle")
	defer span.End()

	tasks := make([]searchTask, 0, len(s.config.SearchCities)*len(s.config.SearchRoles))
	for _, city := range s.config.SearchCities {
		for _, role := range s.config.SearchRoles {
			tasks = append(tasks, searchTask{city: city, role: role})
		}
	}

	s.logger.Info("starting ingest cycle",
		zap.Int("cities", len(s.config.SearchCities)),
		zap.Int("roles", len(s.config.SearchRoles)),
		zap.Int("searches", len(tasks)))
	span.SetAttributes(telemetry.Int("searches.count", len(tasks)))

	stats := &ingestStats{}
	taskChan := make(chan searchTask)
	doneChan := make(chan bool)

	wg := s.workerManager.startWorkers(ctx, stats, taskChan)

	go func() {
		for _, task := range tasks {
			taskChan <- task
		}
		close(taskChan)
	}()

	go func() {
		wg.Wait()
		close(doneChan)
	}()

	return s.waitForCompletion(ctx, doneChan, stats)
}

func (s *IngestScheduler) runSearch(ctx context.Context, task searchTask, stats *ingestStats, dedupe *cycleDedupe) error {
	postings, err := s.client.SearchPostings(ctx, task.city, task.role)
	if err != nil {
		return errors.Internal("searching postings", err)
	}

	for i := range postings {
		posting := &postings[i]
		if !dedupe.firstSeen(posting.Title, posting.Company) {
			dedupe.skipped(stats)
			continue
		}
		if err := s.publisher.PublishRawPosting(ctx, posting); err != nil {
			s.logger.Error("failed to publish posting",
				zap.String("title", posting.Title),
				zap.Error(err))
			continue
		}
		dedupe.published(stats)
	}

	return nil
}

func (s *IngestScheduler) waitForCompletion(ctx context.Context, doneChan chan bool, stats *ingestStats) error {
	ctx, span := tracer.Start(ctx, "IngestScheduler.waitForCompletion")
	defer span.End()

	select {
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return ctx.Err()
	case <-doneChan:
		span.SetAttributes(
			telemetry.Int("searches_completed", int(stats.searchesCompleted)),
			telemetry.Int("postings_published", int(stats.postingsPublished)),
			telemetry.Int("duplicates_skipped", int(stats.duplicatesSkipped)),
		)
		s.logger.Info("completed ingest cycle",
			zap.Int("searches_completed", int(stats.searchesCompleted)),
			zap.Int("postings_published", int(stats.postingsPublished)),
			zap.Int("duplicates_skipped", int(stats.duplicatesSkipped)))
		return nil
	}
}
