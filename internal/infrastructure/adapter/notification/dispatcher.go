package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

// defaultDeliveryTimeout bounds one background delivery
const defaultDeliveryTimeout = 10 * time.Second

// FanOut delivers each notification to every channel
type FanOut []coreport.Notifier

var _ coreport.Notifier = FanOut(nil)

// Notify tries every channel and joins their errors
func (f FanOut) Notify(ctx context.Context, notification coreport.Notification) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AsyncNotifier makes delivery fire-and-forget. Failures are logged.
type AsyncNotifier struct {
	next    coreport.Notifier
	logger  coreport.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ coreport.Notifier = (*AsyncNotifier)(nil)

// NewAsyncNotifier wraps next so callers never wait on delivery
func NewAsyncNotifier(next coreport.Notifier, logger coreport.Logger, timeout time.Duration) *AsyncNotifier {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &AsyncNotifier{next: next, logger: logger, timeout: timeout}
}

// Notify schedules delivery and returns immediately. Delivery outlives the
// request, so cancellation of ctx is not propagated.
func (a *AsyncNotifier) Notify(ctx context.Context, notification coreport.Notification) error {
	deliveryCtx := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(deliveryCtx, a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, notification); err != nil {
			a.logger.Warn("Notification delivery failed", map[string]any{
				"kind":         notification.Kind,
				"recipient_id": notification.RecipientID,
				"error":        err.Error(),
				"request_id":   coreport.RequestIDFromContext(ctx),
			})
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish
func (a *AsyncNotifier) Wait() {
	a.wg.Wait()
}
