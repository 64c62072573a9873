// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package delivery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/veiltrics/veiltrics/internal/logging"
	"github.com/veiltrics/veiltrics/internal/metrics"
	"github.com/veiltrics/veiltrics/internal/models"
	"github.com/veiltrics/veiltrics/internal/warehouse"
)

// Appender is the warehouse write surface the pipeline drives.
type Appender interface {
	AppendEvents(ctx context.Context, events []*models.NormalizedEvent) error
}

// Options tune the pipeline. Zero values take defaults.
type Options struct {
	// QueueSize bounds the in-memory event queue. A full queue drops
	// new events rather than blocking the HTTP handler.
	QueueSize int

	// Workers is the number of concurrent delivery goroutines.
	Workers int

	// RateLimit caps outbound append calls per second. Zero disables
	// limiting.
	RateLimit float64

	// AttemptTimeout bounds a single append call.
	AttemptTimeout time.Duration

	// sleep is swapped in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.QueueSize <= 0 {
		out.QueueSize = 1024
	}
	if out.Workers <= 0 {
		out.Workers = 4
	}
	if out.AttemptTimeout <= 0 {
		out.AttemptTimeout = warehouse.DefaultAppendTimeout
	}
	if out.sleep == nil {
		out.sleep = time.Sleep
	}
	return out
}

// Pipeline is the fire-and-forget delivery queue.
type Pipeline struct {
	appender Appender
	opts     Options
	queue    chan *models.NormalizedEvent
	breaker  *gobreaker.CircuitBreaker[struct{}]
	limiter  *rate.Limiter

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	closed  bool
}

// NewPipeline creates a stopped pipeline; call Serve (or Start) to run
// its workers.
func NewPipeline(appender Appender, opts Options) *Pipeline {
	opts = opts.withDefaults()

	p := &Pipeline{
		appender: appender,
		opts:     opts,
		queue:    make(chan *models.NormalizedEvent, opts.QueueSize),
	}

	if opts.RateLimit > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), int(opts.RateLimit)+1)
	}

	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "warehouse-append",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateName(from)).
				Str("to", stateName(to)).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateName(from), stateName(to)).Inc()
		},
	})

	return p
}

// Start launches the delivery workers.
func (p *Pipeline) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	logging.Info().
		Int("workers", p.opts.Workers).
		Int("queue_size", p.opts.QueueSize).
		Msg("delivery pipeline started")
}

// Enqueue hands an event to the pipeline without blocking. Returns
// false when the queue is full or the pipeline is stopping; the event
// is logged verbatim in that case so it is recoverable by hand.
func (p *Pipeline) Enqueue(ev *models.NormalizedEvent) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logLostEvent(ev, "pipeline stopped")
		return false
	}
	p.mu.Unlock()

	select {
	case p.queue <- ev:
		metrics.DeliveryQueueDepth.Set(float64(len(p.queue)))
		return true
	default:
		metrics.DeliveryQueueFull.Inc()
		p.logLostEvent(ev, "delivery queue full")
		return false
	}
}

// Stop closes the queue and waits for in-flight deliveries to drain,
// up to the context deadline. Hitting the deadline with events still
// queued is logged as a warning with the remaining count.
func (p *Pipeline) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info().Msg("delivery pipeline drained")
		return nil
	case <-ctx.Done():
		logging.Warn().
			Int("queued", len(p.queue)).
			Msg("delivery pipeline stopped before draining")
		return ctx.Err()
	}
}

// Serve runs the pipeline under a supervision tree: workers start,
// the call blocks until ctx is canceled, then the queue drains with a
// shutdown grace period.
func (p *Pipeline) Serve(ctx context.Context) error {
	p.Start()
	<-ctx.Done()

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := p.Stop(drainCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (p *Pipeline) worker() {
	defer p.wg.Done()
	for ev := range p.queue {
		metrics.DeliveryQueueDepth.Set(float64(len(p.queue)))
		p.deliver(ev)
	}
}

// deliver runs one event through the retry state machine. It uses a
// background context on purpose: delivery is decoupled from the
// request lifecycle and runs to completion or budget exhaustion.
func (p *Pipeline) deliver(ev *models.NormalizedEvent) {
	start := time.Now()
	bo := newBackoff()

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if p.limiter != nil {
			p.limiter.Wait(context.Background())
		}

		err := p.attempt(ev)
		if err == nil {
			metrics.DeliveryAttempts.WithLabelValues("success").Inc()
			metrics.DeliveryDuration.Observe(time.Since(start).Seconds())
			return
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.DeliveryAttempts.WithLabelValues("rejected").Inc()
		} else if !warehouse.IsRetryable(err) {
			metrics.DeliveryAttempts.WithLabelValues("permanent").Inc()
			logging.Warn().
				Err(err).
				Int("attempt", attempt).
				Msg("non-retryable delivery failure")
			break
		} else {
			metrics.DeliveryAttempts.WithLabelValues("retryable").Inc()
		}

		if attempt == MaxAttempts {
			break
		}

		wait := nextWait(bo, warehouse.RetryAfter(err))
		logging.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("delivery attempt failed, backing off")
		p.opts.sleep(wait)
	}

	metrics.DeliveryExhausted.Inc()
	metrics.DeliveryDuration.Observe(time.Since(start).Seconds())
	p.logFailedEvent(ev, lastErr)
}

func (p *Pipeline) attempt(ev *models.NormalizedEvent) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), p.opts.AttemptTimeout)
		defer cancel()
		return struct{}{}, p.appender.AppendEvents(ctx, []*models.NormalizedEvent{ev})
	})
	return err
}

// logFailedEvent writes the complete event after retry exhaustion so
// nothing is silently lost: the log line is replayable by hand.
func (p *Pipeline) logFailedEvent(ev *models.NormalizedEvent, err error) {
	payload, marshalErr := json.Marshal(ev)
	if marshalErr != nil {
		logging.Error().
			Err(err).
			AnErr("marshal_error", marshalErr).
			Msg("event delivery failed permanently and event could not be serialized")
		return
	}
	logging.Error().
		Err(err).
		RawJSON("event", payload).
		Msg("event delivery failed permanently")
}

func (p *Pipeline) logLostEvent(ev *models.NormalizedEvent, reason string) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logging.Error().Str("reason", reason).Msg("event dropped before delivery")
		return
	}
	logging.Error().
		Str("reason", reason).
		RawJSON("event", payload).
		Msg("event dropped before delivery")
}

func stateName(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
