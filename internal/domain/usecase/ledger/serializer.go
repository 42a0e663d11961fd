package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

const (
	// DefaultQueueSize is the per-user queue capacity when none is configured
	DefaultQueueSize = 100
	// DefaultIdleTimeout is how long a user's worker waits for work before retiring
	DefaultIdleTimeout = 5 * time.Minute
)

// ErrSerializerClosed is returned for work submitted after Shutdown
var ErrSerializerClosed = errors.New("ledger serializer is shut down")

// Serializer runs money-moving work for one user at a time, in arrival order.
// Each user gets a buffered queue drained by its own worker goroutine,
// which retires after sitting idle for idleTimeout.
type Serializer struct {
	logger      coreport.Logger
	queueSize   int
	idleTimeout time.Duration

	// User-based queues for strict ordering
	userQueues     sync.Map // map[uint64]chan *job
	queueWaitGroup sync.WaitGroup

	// guards closed and sends against Shutdown closing the queues
	mu     sync.RWMutex
	closed bool
}

// job represents a queued unit of work
type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// NewSerializer creates a new per-user serializer
func NewSerializer(logger coreport.Logger, queueSize int) *Serializer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Serializer{
		logger:      logger,
		queueSize:   queueSize,
		idleTimeout: DefaultIdleTimeout,
	}
}

// WithIdleTimeout overrides how long an idle worker is kept. Call it before
// the first Run.
func (s *Serializer) WithIdleTimeout(d time.Duration) *Serializer {
	if d > 0 {
		s.idleTimeout = d
	}
	return s
}

// Run enqueues fn on the queue of userID and waits for its result.
// fn must not call Run for the same user or it will wait on itself.
func (s *Serializer) Run(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrSerializerClosed
	}

	queue, err := s.queueFor(userID)
	if err != nil {
		s.mu.RUnlock()
		return err
	}

	j := &job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case queue <- j:
		s.mu.RUnlock()
	case <-ctx.Done():
		s.mu.RUnlock()
		s.logger.Warn("Context canceled while enqueueing ledger operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		s.logger.Warn("Context canceled while waiting for ledger operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// queueFor returns the queue of a user, starting its worker on first use
func (s *Serializer) queueFor(userID uint64) (chan *job, error) {
	queueIface, loaded := s.userQueues.LoadOrStore(userID, make(chan *job, s.queueSize))
	queue, ok := queueIface.(chan *job)
	if !ok {
		s.logger.Error("Failed to type assert queue channel", map[string]any{"user_id": userID})
		return nil, errs.ErrInternalServer
	}

	if !loaded {
		s.logger.Debug("Starting ledger queue worker for user", map[string]any{
			"user_id": userID,
		})
		s.queueWaitGroup.Add(1)
		go s.work(userID, queue)
	}
	return queue, nil
}

// work drains one user's queue sequentially until the queue is closed or
// the worker retires
func (s *Serializer) work(userID uint64, queue chan *job) {
	defer s.queueWaitGroup.Done()

	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case j, ok := <-queue:
			if !ok {
				s.logger.Debug("Ledger queue worker stopped", map[string]any{
					"user_id": userID,
				})
				return
			}
			// caller already gave up
			if err := j.ctx.Err(); err != nil {
				j.done <- err
			} else {
				j.done <- j.fn(j.ctx)
			}
			idle.Reset(s.idleTimeout)

		case <-idle.C:
			if s.retire(userID, queue) {
				s.logger.Debug("Ledger queue worker retired after idling", map[string]any{
					"user_id": userID,
				})
				return
			}
			idle.Reset(s.idleTimeout)
		}
	}
}

// retire forgets an empty queue so the next Run for the user starts a fresh
// worker. Senders hold the read lock from lookup to send, so holding the
// write lock means nobody can still be about to use this queue. TryLock keeps
// a worker from waiting on a sender that is itself blocked on a full queue.
func (s *Serializer) retire(userID uint64, queue chan *job) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()

	if s.closed || len(queue) > 0 {
		return false
	}
	s.userQueues.Delete(userID)
	return true
}

// Shutdown stops accepting work, lets queued work finish and waits for all workers
func (s *Serializer) Shutdown() {
	s.logger.Info("Shutting down ledger serializer", nil)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.userQueues.Range(func(_, queueIface any) bool {
		if queue, ok := queueIface.(chan *job); ok {
			close(queue)
		}
		return true
	})
	s.mu.Unlock()

	s.queueWaitGroup.Wait()
	s.logger.Info("Ledger serializer shut down successfully", nil)
}
