package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job names dispatched on every tick.
const (
	JobCatalog = "catalog"
	JobOrders  = "orders"
	JobDrafts  = "drafts"
)

// SyncFacade exposes the maintenance operations the syncer drives.
type SyncFacade interface {
	RefreshCatalog(ctx context.Context) error
	SyncOrders(ctx context.Context) error
	ExpireDrafts(ctx context.Context) error
}

// Syncer periodically refreshes cached reference data and the order book,
// and drops abandoned drafts.
type Syncer struct {
	facade   SyncFacade
	interval time.Duration
	workers  int
	logger   *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSyncer constructs a syncer with the given number of workers.
func NewSyncer(facade SyncFacade, interval time.Duration, workers int, logger *slog.Logger) *Syncer {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Syncer{
		facade:   facade,
		interval: interval,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan string, 3*workers),
	}
}

// Start launches the workers and dispatches a first round immediately.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop cancels pending work and waits for workers to finish.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Syncer) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.enqueue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueue(ctx)
		}
	}
}

func (s *Syncer) enqueue(ctx context.Context) {
	for _, job := range []string{JobCatalog, JobOrders, JobDrafts} {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- job:
		}
	}
}

func (s *Syncer) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handle(ctx, job)
		}
	}
}

func (s *Syncer) handle(ctx context.Context, job string) {
	var err error
	switch job {
	case JobCatalog:
		err = s.facade.RefreshCatalog(ctx)
	case JobOrders:
		err = s.facade.SyncOrders(ctx)
	case JobDrafts:
		err = s.facade.ExpireDrafts(ctx)
	}
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("sync failed", slog.String("job", job), slog.String("error", err.Error()))
	}
}
