package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/metrics"
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/randomuser"
	"github.com/dmitrijs2005/userfeed/internal/users"
	"github.com/dmitrijs2005/userfeed/internal/users/userstest"
)

type reply struct {
	resp *randomuser.RawResponse
	err  error
}

// gatedGetter blocks call i until release(i) is called.
type gatedGetter struct {
	calls   atomic.Int32
	started chan int
	gates   []chan reply
}

func newGatedGetter(n int) *gatedGetter {
	g := &gatedGetter{started: make(chan int, n), gates: make([]chan reply, n)}
	for i := range g.gates {
		g.gates[i] = make(chan reply, 1)
	}
	return g
}

func (g *gatedGetter) FetchUsers(ctx context.Context) (*randomuser.RawResponse, error) {
	i := int(g.calls.Add(1)) - 1
	g.started <- i
	select {
	case r := <-g.gates[i]:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedGetter) release(i int, r reply) {
	g.gates[i] <- r
}

func (g *gatedGetter) waitStarted(t *testing.T) int {
	t.Helper()
	select {
	case i := <-g.started:
		return i
	case <-time.After(2 * time.Second):
		t.Fatal("request was not started")
		return -1
	}
}

func okReply(n int) reply {
	return reply{resp: &randomuser.RawResponse{StatusCode: http.StatusOK, Status: "OK", Body: userstest.Body(n)}}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newHTTPPipeline(t *testing.T, h http.HandlerFunc, mutate ...func(*randomuser.Config)) *pipeline.Pipeline {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	cfg := randomuser.Config{BaseURL: server.URL + "/"}
	for _, m := range mutate {
		m(&cfg)
	}
	client, err := randomuser.NewClient(cfg, logging.Discard())
	require.NoError(t, err)

	p := pipeline.New(client)
	t.Cleanup(p.Close)
	return p
}

func TestPipeline_StartsIdle(t *testing.T) {
	p := pipeline.New(newGatedGetter(0))
	defer p.Close()

	st := p.State()
	assert.Equal(t, pipeline.KindIdle, st.Kind())
	assert.Equal(t, uint64(0), st.Cycle())
	assert.False(t, st.Terminal())
}

func TestPipeline_Refresh_Success(t *testing.T) {
	p := newHTTPPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userstest.Body(10)))
	})

	st, err := p.Refresh(testContext(t))
	require.NoError(t, err)

	success, ok := st.(pipeline.Success)
	require.True(t, ok, "got %T", st)
	assert.Equal(t, uint64(1), success.Cycle())
	require.Equal(t, 10, success.Users.Len())
	assert.Equal(t, userstest.UUID(0), success.Users.Results[0].UUID())
	assert.Equal(t, st, p.State())
}

func TestPipeline_Refresh_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, f pipeline.Failure)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, f pipeline.Failure) {
				assert.Equal(t, "Error: Internal Server Error", f.Message)
				var sf *pipeline.StatusFailure
				require.True(t, errors.As(f.Err, &sf))
				assert.Equal(t, http.StatusInternalServerError, sf.StatusCode)
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			check: func(t *testing.T, f pipeline.Failure) {
				assert.Equal(t, "Error: OK", f.Message)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results": [`))
			},
			check: func(t *testing.T, f pipeline.Failure) {
				assert.Contains(t, f.Message, "JSON parsing error")
				var df *users.DecodeFailure
				assert.True(t, errors.As(f.Err, &df))
			},
		},
		{
			name: "missing required field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"info": {"seed": "x", "version": "1.4"}}`))
			},
			check: func(t *testing.T, f pipeline.Failure) {
				assert.Contains(t, f.Message, "JSON parsing error")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newHTTPPipeline(t, tt.handler)

			st, err := p.Refresh(testContext(t))
			require.NoError(t, err)

			f, ok := st.(pipeline.Failure)
			require.True(t, ok, "got %T", st)
			assert.Equal(t, pipeline.KindError, f.Kind())
			tt.check(t, f)
		})
	}
}

func TestPipeline_Refresh_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := randomuser.NewClient(randomuser.Config{BaseURL: url + "/"}, logging.Discard())
	require.NoError(t, err)
	p := pipeline.New(client)
	defer p.Close()

	st, err := p.Refresh(testContext(t))
	require.NoError(t, err)

	f, ok := st.(pipeline.Failure)
	require.True(t, ok, "got %T", st)
	assert.True(t, len(f.Message) > len("Exception: "))
	assert.Equal(t, "Exception: ", f.Message[:len("Exception: ")])

	var nf *randomuser.NetworkFailure
	assert.True(t, errors.As(f.Err, &nf))
}

func TestPipeline_Refresh_Timeout(t *testing.T) {
	p := newHTTPPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}, func(cfg *randomuser.Config) { cfg.ReadTimeout = 50 * time.Millisecond })

	st, err := p.Refresh(testContext(t))
	require.NoError(t, err)

	f, ok := st.(pipeline.Failure)
	require.True(t, ok, "got %T", st)
	assert.Contains(t, f.Message, "timeout")
}

func TestPipeline_Fetch_PublishesLoadingSynchronously(t *testing.T) {
	g := newGatedGetter(1)
	p := pipeline.New(g)
	defer p.Close()

	n := p.Fetch(context.Background())
	assert.Equal(t, uint64(1), n)

	st := p.State()
	assert.Equal(t, pipeline.KindLoading, st.Kind())
	assert.Equal(t, n, st.Cycle())

	g.waitStarted(t)
	g.release(0, okReply(2))

	final, err := p.Await(testContext(t), n)
	require.NoError(t, err)
	assert.Equal(t, pipeline.KindSuccess, final.Kind())
}

func TestPipeline_StaleResultIsDiscarded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewFetchMetrics(reg)

	g := newGatedGetter(2)
	p := pipeline.New(g, pipeline.WithRecorder(m), pipeline.WithLogger(logging.Discard()))
	defer p.Close()

	first := p.Fetch(context.Background())
	g.waitStarted(t)
	second := p.Fetch(context.Background())
	g.waitStarted(t)
	require.Greater(t, second, first)

	g.release(1, okReply(3))
	st, err := p.Await(testContext(t), second)
	require.NoError(t, err)
	require.Equal(t, pipeline.KindSuccess, st.Kind())
	assert.Equal(t, second, st.Cycle())

	g.release(0, reply{resp: &randomuser.RawResponse{StatusCode: http.StatusInternalServerError, Status: "Internal Server Error"}})

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.StaleDiscarded) == 1
	}, 2*time.Second, 10*time.Millisecond)

	st = p.State()
	assert.Equal(t, pipeline.KindSuccess, st.Kind())
	assert.Equal(t, second, st.Cycle())
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.UsersLoaded))
}

func TestPipeline_AwaitOlderCycleReturnsNewerOutcome(t *testing.T) {
	g := newGatedGetter(2)
	p := pipeline.New(g)
	defer p.Close()

	first := p.Fetch(context.Background())
	g.waitStarted(t)
	second := p.Fetch(context.Background())
	g.waitStarted(t)
	g.release(1, okReply(1))

	st, err := p.Await(testContext(t), first)
	require.NoError(t, err)
	assert.Equal(t, second, st.Cycle())

	g.release(0, okReply(1))
}

func TestPipeline_Subscribe(t *testing.T) {
	g := newGatedGetter(1)
	p := pipeline.New(g)
	defer p.Close()

	sub := p.Subscribe()
	defer sub.Close()

	first := <-sub.C()
	assert.Equal(t, pipeline.KindIdle, first.Kind())

	n := p.Fetch(context.Background())
	loading := <-sub.C()
	assert.Equal(t, pipeline.KindLoading, loading.Kind())
	assert.Equal(t, n, loading.Cycle())

	g.waitStarted(t)
	g.release(0, okReply(4))

	select {
	case st := <-sub.C():
		assert.Equal(t, pipeline.KindSuccess, st.Kind())
		assert.Equal(t, 4, st.(pipeline.Success).Users.Len())
	case <-time.After(2 * time.Second):
		t.Fatal("no terminal state delivered")
	}
}

func TestPipeline_SubscriptionKeepsLatestOnly(t *testing.T) {
	g := newGatedGetter(3)
	p := pipeline.New(g)
	defer p.Close()

	sub := p.Subscribe()
	defer sub.Close()

	for i := 0; i < 3; i++ {
		p.Fetch(context.Background())
		g.waitStarted(t)
	}

	st := <-sub.C()
	assert.Equal(t, pipeline.KindLoading, st.Kind())
	assert.Equal(t, uint64(3), st.Cycle())

	select {
	case extra := <-sub.C():
		t.Fatalf("unexpected buffered state %v", extra.Kind())
	default:
	}

	for i := 0; i < 3; i++ {
		g.release(i, okReply(1))
	}
}

func TestPipeline_AwaitHonoursContext(t *testing.T) {
	g := newGatedGetter(1)
	p := pipeline.New(g)
	defer p.Close()

	n := p.Fetch(context.Background())
	g.waitStarted(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx, n)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, pipeline.KindLoading, p.State().Kind())

	g.release(0, okReply(1))
}

func TestPipeline_FetchOutlivesCallerContext(t *testing.T) {
	g := newGatedGetter(1)
	p := pipeline.New(g)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	n := p.Fetch(ctx)
	g.waitStarted(t)
	cancel()

	g.release(0, okReply(2))
	st, err := p.Await(testContext(t), n)
	require.NoError(t, err)
	assert.Equal(t, pipeline.KindSuccess, st.Kind())
}

func TestPipeline_Close(t *testing.T) {
	g := newGatedGetter(1)
	p := pipeline.New(g)

	sub := p.Subscribe()
	<-sub.C()

	n := p.Fetch(context.Background())
	g.waitStarted(t)

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight request")
	}

	_, open := <-sub.C()
	for open {
		_, open = <-sub.C()
	}

	_, err := p.Await(testContext(t), n)
	assert.ErrorIs(t, err, pipeline.ErrClosed)
	assert.Equal(t, n, p.Fetch(context.Background()))
	assert.Equal(t, pipeline.KindLoading, p.State().Kind())

	p.Close()
}
