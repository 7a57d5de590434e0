// Package sender runs outbound Bot API calls on a small worker pool with
// bounded retries, so handlers return before Telegram answers.
package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	"github.com/m3rciful/summerday/core/telegram/netutil"
)

var (
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull is returned when the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the dispatcher. Zero values select defaults.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent on one job including retries.
	MaxDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

// Dispatcher executes queued calls on a fixed pool of workers.
type Dispatcher struct {
	opts Options
	jobs chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	sent   atomic.Uint64
	failed atomic.Uint64
}

// NewDispatcher starts opts.Workers workers.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{opts: opts, jobs: make(chan job, opts.QueueSize)}
	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.worker()
	}
	return d
}

// Enqueue schedules run. It never blocks: a full queue yields ErrQueueFull.
// run may be called more than once when retries are enabled.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- job{ctx: ctx, action: action, endpoint: endpoint, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Sent returns the number of jobs that eventually succeeded.
func (d *Dispatcher) Sent() uint64 { return d.sent.Load() }

// ErrorCount returns the number of jobs that failed for good.
func (d *Dispatcher) ErrorCount() uint64 { return d.failed.Load() }

// Close drains the queue and waits for the workers. It is idempotent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := d.process(j); err != nil {
			d.failed.Add(1)
			continue
		}
		d.sent.Add(1)
	}
}

func (d *Dispatcher) process(j job) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(j.ctx), d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := d.opts.MaxRetries + 1
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = j.run(); err == nil {
			attrs := append(jobAttrs(j), slog.Duration("elapsed", time.Since(start)))
			if attempt > 1 {
				attrs = append(attrs, slog.Int("attempt", attempt))
				logger.Info(j.ctx, "tg.sender", "send.retry.success", attrs...)
			} else {
				logger.Debug(j.ctx, "tg.sender", "send.success", attrs...)
			}
			return nil
		}
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}
		delay := d.opts.RetryBackoff * time.Duration(attempt)
		logger.Debug(j.ctx, "tg.sender", "send.retry.backoff",
			append(jobAttrs(j), slog.Int("attempt", attempt), slog.Duration("backoff", delay))...,
		)
		if serr := netutil.Sleep(ctx, delay); serr != nil {
			err = serr
			break
		}
	}

	logger.Error(j.ctx, "tg.sender", "send.fail",
		append(jobAttrs(j),
			slog.String("status", "fail"),
			slog.String("err", redact(err)),
			slog.String("error_kind", classifyError(err)),
			slog.Int("attempts", attempts),
			slog.Duration("elapsed", time.Since(start)),
		)...,
	)
	return err
}

func jobAttrs(j job) []slog.Attr {
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

// redact hides bot tokens that net/http includes in request URLs.
func redact(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "dial"
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return "tls"
	}

	switch status := httpStatus(err); {
	case status == http.StatusTooManyRequests:
		return "flood"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}
	return "unknown"
}

func httpStatus(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}
	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}
	return 0
}
