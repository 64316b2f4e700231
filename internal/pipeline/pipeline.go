// Package pipeline turns one HTTP fetch into a published tri-state result.
//
// A Pipeline owns the current State and replaces it wholesale: Fetch
// publishes Loading at once, runs the request on its own goroutine and
// publishes Success or Failure when it completes. Every Fetch starts a new
// numbered cycle; a result belonging to an older cycle is dropped, so the
// latest call always wins. In-flight requests are not cancelled by a newer
// Fetch.
//
// Observers either poll State or Subscribe. A subscription is a one-slot
// mailbox that always holds the newest undelivered state, so slow readers
// may skip intermediate values but never see them out of order.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/metrics"
	"github.com/dmitrijs2005/userfeed/internal/randomuser"
	"github.com/dmitrijs2005/userfeed/internal/users"
)

// Getter fetches one raw page of users.
type Getter interface {
	FetchUsers(ctx context.Context) (*randomuser.RawResponse, error)
}

// Recorder receives cycle instrumentation. *metrics.FetchMetrics satisfies it.
type Recorder interface {
	CycleStarted()
	CycleFinished(outcome string, took time.Duration, users int)
	Stale()
}

type Pipeline struct {
	client  Getter
	decode  func(string) (users.UserList, error)
	logger  logging.Logger
	metrics Recorder

	life context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu     sync.Mutex
	seq    uint64
	state  State
	subs   map[*Subscription]struct{}
	closed bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// WithDecoder replaces users.Decode.
func WithDecoder(d func(string) (users.UserList, error)) Option {
	return func(p *Pipeline) { p.decode = d }
}

// New creates an idle pipeline around client.
func New(client Getter, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:  client,
		decode:  users.Decode,
		logger:  logging.Discard(),
		metrics: noopRecorder{},
		state:   Idle{},
		subs:    make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("module", "pipeline")
	p.life, p.stop = context.WithCancel(context.Background())
	return p
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Fetch starts a new cycle and returns its number. Loading is already
// published when Fetch returns. ctx supplies values for the request; its
// cancellation does not abort the cycle. After Close, Fetch does nothing
// and returns the last cycle number.
func (p *Pipeline) Fetch(ctx context.Context) uint64 {
	p.mu.Lock()
	if p.closed {
		n := p.seq
		p.mu.Unlock()
		return n
	}
	p.seq++
	n := p.seq
	p.publishLocked(Loading{cycle{n}})
	p.wg.Add(1)
	p.mu.Unlock()

	p.metrics.CycleStarted()
	p.logger.Debug(ctx, "fetch started", "cycle", n)

	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	unhook := context.AfterFunc(p.life, cancel)

	go func() {
		defer p.wg.Done()
		defer cancel()
		defer unhook()
		p.run(reqCtx, n, time.Now())
	}()
	return n
}

func (p *Pipeline) run(ctx context.Context, n uint64, started time.Time) {
	next, outcome, count := p.execute(ctx, n)

	p.mu.Lock()
	defer p.mu.Unlock()

	if n != p.seq || p.closed {
		p.metrics.Stale()
		p.logger.Info(ctx, "discarding stale result", "cycle", n, "current", p.seq, "outcome", outcome)
		return
	}

	took := time.Since(started)
	p.metrics.CycleFinished(outcome, took, count)
	if f, ok := next.(Failure); ok {
		p.logger.Warn(ctx, "fetch failed", "cycle", n, "outcome", outcome, "error", f.Message, "took", took)
	} else {
		p.logger.Info(ctx, "fetch succeeded", "cycle", n, "users", count, "took", took)
	}
	p.publishLocked(next)
}

func (p *Pipeline) execute(ctx context.Context, n uint64) (State, string, int) {
	resp, err := p.client.FetchUsers(ctx)
	if err != nil {
		return Failure{cycle: cycle{n}, Message: "Exception: " + err.Error(), Err: err}, metrics.OutcomeNetworkError, 0
	}

	if !resp.OK() || resp.Body == "" {
		sf := &StatusFailure{StatusCode: resp.StatusCode, Status: resp.Status}
		return Failure{cycle: cycle{n}, Message: sf.Error(), Err: sf}, metrics.OutcomeStatusError, 0
	}

	list, err := p.decode(resp.Body)
	if err != nil {
		return Failure{cycle: cycle{n}, Message: err.Error(), Err: err}, metrics.OutcomeDecodeError, 0
	}
	return Success{cycle: cycle{n}, Users: list}, metrics.OutcomeSuccess, list.Len()
}

// Await blocks until cycle n, or a newer cycle, reaches a terminal state.
func (p *Pipeline) Await(ctx context.Context, n uint64) (State, error) {
	sub := p.Subscribe()
	defer sub.Close()

	for {
		select {
		case st, ok := <-sub.C():
			if !ok {
				return nil, ErrClosed
			}
			if st.Terminal() && st.Cycle() >= n {
				return st, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Refresh runs a cycle and waits for its outcome.
func (p *Pipeline) Refresh(ctx context.Context) (State, error) {
	return p.Await(ctx, p.Fetch(ctx))
}

// Close cancels in-flight requests, waits for their goroutines and closes
// every subscription. It is safe to call more than once.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for s := range p.subs {
		delete(p.subs, s)
		close(s.ch)
	}
	p.mu.Unlock()

	p.stop()
	p.wg.Wait()
}

func (p *Pipeline) publishLocked(s State) {
	p.state = s
	for sub := range p.subs {
		sub.offer(s)
	}
}

type noopRecorder struct{}

func (noopRecorder) CycleStarted()                            {}
func (noopRecorder) CycleFinished(string, time.Duration, int) {}
func (noopRecorder) Stale()                                   {}
