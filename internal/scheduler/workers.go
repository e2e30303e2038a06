package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type workerManager struct {
	scheduler *IngestScheduler
	logger    *zap.Logger
}

func newWorkerManager(scheduler *IngestScheduler, logger *zap.Logger) *workerManager {
	return &workerManager{
		scheduler: scheduler,
		logger:    logger,
	}
}

func (w *workerManager) startWorkers(ctx context.Context, stats *ingestStats, taskChan chan searchTask) *sync.WaitGroup {
	var wg sync.WaitGroup
	dedupe := newCycleDedupe()

	const searchWorkers = 5
	for i := 0; i < searchWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				if err := w.scheduler.runSearch(ctx, task, stats, dedupe); err != nil {
					w.logger.Error("failed to run search",
						zap.String("city", task.city),
						zap.String("role", task.role),
						zap.Error(err))
					continue
				}
				atomic.AddInt32(&stats.searchesCompleted, 1)
			}
		}()
	}

	return &wg
}

// cycleDedupe drops repeat (title, company) listings within one cycle;
// the same role searched across cities returns overlapping results.
type cycleDedupe struct {
	mutex sync.Mutex
	seen  map[string]bool
}

func newCycleDedupe() *cycleDedupe {
	return &cycleDedupe{seen: make(map[string]bool)}
}

func (d *cycleDedupe) firstSeen(title, company string) bool {
	key := title + "|" + company
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func (d *cycleDedupe) skipped(stats *ingestStats) {
	atomic.AddInt32(&stats.duplicatesSkipped, 1)
}

func (d *cycleDedupe) published(stats *ingestStats) {
	atomic.AddInt32(&stats.postingsPublished, 1)
}
