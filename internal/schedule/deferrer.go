// Package schedule defers recomputation onto a background worker so the
// caller can keep handling input while a combination set is rebuilt.
package schedule

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// ErrClosed is returned when submitting to a closed Deferrer.
var ErrClosed = errors.New("deferrer is closed")

// Result is the outcome of one submission.
type Result[T any] struct {
	// Generation is the submission number, starting at 1.
	Generation uint64
	Value      T
}

type job[T any] struct {
	gen uint64
	ctx context.Context
	fn  func(context.Context) T
}

// Deferrer runs submitted work one at a time, in submission order, on a
// single worker goroutine and delivers each result on Results.
//
// Without superseding every submission runs and is delivered, so the last
// result received is the freshest. With superseding, work that has been
// overtaken by a newer submission is skipped and its result dropped.
type Deferrer[T any] struct {
	supersede bool
	logger    hclog.Logger

	mu      sync.Mutex
	pending []job[T]
	gen     uint64
	closed  bool

	wake    chan struct{}
	results chan Result[T]
	done    chan struct{}
}

// Option configures a Deferrer.
type Option func(*config)

type config struct {
	supersede bool
	buffer    int
	logger    hclog.Logger
}

// WithSupersede drops stale work when a newer submission arrives.
func WithSupersede(enabled bool) Option {
	return func(c *config) { c.supersede = enabled }
}

// WithBuffer sets the capacity of the results channel.
func WithBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.buffer = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New starts a Deferrer. Callers must drain Results and call Close.
func New[T any](opts ...Option) *Deferrer[T] {
	cfg := config{buffer: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = hclog.NewNullLogger()
	}

	d := &Deferrer[T]{
		supersede: cfg.supersede,
		logger:    cfg.logger,
		wake:      make(chan struct{}, 1),
		results:   make(chan Result[T], cfg.buffer),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit queues fn and returns its generation without waiting for it to
// run. fn receives ctx; work whose context is already cancelled when it
// reaches the front of the queue is skipped.
func (d *Deferrer[T]) Submit(ctx context.Context, fn func(context.Context) T) (uint64, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, ErrClosed
	}
	d.gen++
	gen := d.gen
	d.pending = append(d.pending, job[T]{gen: gen, ctx: ctx, fn: fn})
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return gen, nil
}

// Latest returns the generation of the most recent submission.
func (d *Deferrer[T]) Latest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Results returns the channel results are delivered on. It is closed once
// Close has drained the queue.
func (d *Deferrer[T]) Results() <-chan Result[T] {
	return d.results
}

// Close stops accepting work, waits for queued work to finish and closes
// Results.
func (d *Deferrer[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	<-d.done
}

func (d *Deferrer[T]) run() {
	defer close(d.done)
	defer close(d.results)

	for range d.wake {
		for {
			j, ok, closed := d.next()
			if !ok {
				if closed {
					return
				}
				break
			}
			d.execute(j)
		}
	}
}

// next pops the oldest pending job.
func (d *Deferrer[T]) next() (job[T], bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) == 0 {
		return job[T]{}, false, d.closed
	}
	j := d.pending[0]
	d.pending[0] = job[T]{}
	d.pending = d.pending[1:]
	return j, true, d.closed
}

func (d *Deferrer[T]) stale(gen uint64) bool {
	return d.supersede && gen < d.Latest()
}

func (d *Deferrer[T]) execute(j job[T]) {
	if d.stale(j.gen) {
		d.logger.Debug("skipping superseded work", "generation", j.gen)
		return
	}
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		d.logger.Debug("skipping cancelled work", "generation", j.gen, "error", err)
		return
	}

	v := j.fn(ctx)

	if d.stale(j.gen) {
		d.logger.Debug("dropping superseded result", "generation", j.gen)
		return
	}
	d.results <- Result[T]{Generation: j.gen, Value: v}
}
