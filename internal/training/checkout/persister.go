package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainingcoach/internal/telemetry/metrics"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// ErrPersistence means the record could not be stored after all retries.
// The caller keeps the session so the checkout can be retried.
var ErrPersistence = errors.New("failed to persist session")

const (
	DefaultMaxAttempts    = 3
	DefaultPersistTimeout = 10 * time.Second

	initialRetryInterval = 200 * time.Millisecond
	maxRetryInterval     = 2 * time.Second
)

type RecordSaver interface {
	Save(ctx context.Context, rec Record) error
}

type Persister struct {
	saver          RecordSaver
	metricsManager *metrics.Manager
	maxAttempts    int
	timeout        time.Duration

	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewPersister(
	saver RecordSaver,
	metricsManager *metrics.Manager,
	maxAttempts int,
	timeout time.Duration,
) *Persister {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return &Persister{
		saver:           saver,
		metricsManager:  metricsManager,
		maxAttempts:     maxAttempts,
		timeout:         timeout,
		initialInterval: initialRetryInterval,
		maxInterval:     maxRetryInterval,
	}
}

// Persist stores rec, retrying with exponential backoff. The write is
// idempotent on the session id, so a retry after an unknown outcome is safe.
func (p *Persister) Persist(ctx context.Context, rec Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.checkout.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", rec.Session.ID))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.initialInterval
	expBackoff.MaxInterval = p.maxInterval
	expBackoff.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(p.maxAttempts-1)), ctx)

	attempts := 0
	var lastErr error
	retryErr := backoff.RetryNotify(
		func() error {
			attempts++
			lastErr = p.saver.Save(ctx, rec)
			return lastErr
		},
		policy,
		func(err error, next time.Duration) {
			if p.metricsManager != nil {
				p.metricsManager.CounterPersistRetries.Inc()
			}
			log.Warnf("persist session %s failed, retrying in %s: %s", rec.Session.ID, next, err)
		},
	)
	span.SetAttributes(attribute.Int("attempts", attempts))
	if retryErr == nil {
		return nil
	}

	if lastErr == nil {
		lastErr = retryErr
	}
	log.Errorf("persist session %s gave up after %d attempts: %s", rec.Session.ID, attempts, lastErr)
	return fmt.Errorf("%w: %w", ErrPersistence, lastErr)
}
