package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// RequestFacade exposes the subset of application functionality required by the sweeper.
type RequestFacade interface {
	StaleUpdateRequests(ctx context.Context, maxAge time.Duration, limit int) ([]model.UpdateRequest, error)
	RejectStaleUpdateRequest(ctx context.Context, requestID int64) error
}

// RequestSweeper periodically rejects update requests left pending past the
// configured age, using the same transition the interactive reject uses.
type RequestSweeper struct {
	facade    RequestFacade
	interval  time.Duration
	maxAge    time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan model.UpdateRequest
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRequestSweeper constructs the sweep worker pool.
func NewRequestSweeper(facade RequestFacade, interval, maxAge time.Duration, batchSize, workers int, logger *slog.Logger) *RequestSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &RequestSweeper{
		facade:    facade,
		interval:  interval,
		maxAge:    maxAge,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.UpdateRequest, batchSize*workers),
	}
}

// Start launches background processing.
func (s *RequestSweeper) Start(ctx context.Context) {
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

// Stop waits for all workers to finish.
func (s *RequestSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *RequestSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *RequestSweeper) fetchAndDispatch(ctx context.Context) {
	requests, err := s.facade.StaleUpdateRequests(ctx, s.maxAge, s.batchSize)
	if err != nil {
		s.logger.Error("fetch stale update requests failed", slog.String("error", err.Error()))
		return
	}
	for _, req := range requests {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- req:
		}
	}
}

func (s *RequestSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleRequest(ctx, req)
		}
	}
}

func (s *RequestSweeper) handleRequest(ctx context.Context, req model.UpdateRequest) {
	if err := s.facade.RejectStaleUpdateRequest(ctx, req.ID); err != nil {
		s.logger.Error("reject stale update request failed",
			slog.Int64("request_id", req.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("stale update request rejected",
		slog.Int64("request_id", req.ID),
		slog.Int64("order_id", req.OrderID),
	)
}
