package randomuser

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userfeed/internal/logging"
)

const (
	DefaultBaseURL = "https://randomuser.me/"
	UsersPath      = "/api/"
	DefaultResults = 10
	DefaultTimeout = 15 * time.Second

	maxBodySize = 10 << 20
)

// Config contains configuration for Client.
type Config struct {
	// BaseURL is the API root, e.g. https://randomuser.me/.
	BaseURL string

	// Results is the page size sent as the results query parameter.
	Results int

	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration

	// ReadTimeout bounds header wait and idle time between body reads.
	ReadTimeout time.Duration

	// HTTPClient is an optional custom HTTP client. When set, ConnectTimeout
	// is not applied to it.
	HTTPClient *http.Client

	// Hooks run for every completed response.
	Hooks []ResponseHook
}

// RawResponse is a completed HTTP exchange.
type RawResponse struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Internal Server Error".
	Status string
	Body   string
}

// OK reports a 2xx status.
func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ResponseHook inspects a completed response. Hooks must not modify it.
type ResponseHook func(ctx context.Context, resp *RawResponse)

// Client issues GET requests against the random user API.
type Client struct {
	baseURL     *url.URL
	results     int
	readTimeout time.Duration
	httpClient  *http.Client
	hooks       []ResponseHook
	logger      logging.Logger
}

// NewClient creates a client; zero values in cfg fall back to the defaults.
func NewClient(cfg Config, logger logging.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, cfg.BaseURL)
	}
	if cfg.Results <= 0 {
		cfg.Results = DefaultResults
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: newTransport(cfg.ConnectTimeout, cfg.ReadTimeout)}
	}

	return &Client{
		baseURL:     base,
		results:     cfg.Results,
		readTimeout: cfg.ReadTimeout,
		httpClient:  httpClient,
		hooks:       cfg.Hooks,
		logger:      logger.With("module", "randomuser"),
	}, nil
}

func newTransport(connectTimeout, readTimeout time.Duration) *http.Transport {
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = dialer.DialContext
	tr.TLSHandshakeTimeout = connectTimeout
	tr.ResponseHeaderTimeout = readTimeout
	return tr
}

// Results returns the configured page size.
func (c *Client) Results() int {
	return c.results
}

// FetchUsers requests one page of users.
func (c *Client) FetchUsers(ctx context.Context) (*RawResponse, error) {
	return c.Get(ctx, UsersPath, url.Values{"results": {strconv.Itoa(c.results)}})
}

// Get performs a GET for path relative to the base URL. Any completed
// response is returned, whatever its status; only transport problems
// produce an error, always a *NetworkFailure.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	target := c.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()}).String()

	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkFailure{Op: http.MethodGet, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "--> GET", "url", target)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "<-- HTTP FAILED", "url", target, "error", err)
		return nil, &NetworkFailure{Op: http.MethodGet, URL: target, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := c.readBody(reqCtx, cancel, resp.Body)
	if err != nil {
		if cause := context.Cause(reqCtx); cause != nil && cause != context.Canceled {
			err = fmt.Errorf("%w: %w", cause, err)
		}
		c.logger.Debug(ctx, "<-- HTTP FAILED", "url", target, "error", err)
		return nil, &NetworkFailure{Op: http.MethodGet, URL: target, Timeout: isTimeout(err), Err: err}
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     reasonPhrase(resp),
		Body:       body,
	}
	c.logger.Debug(ctx, "<-- response",
		"url", target,
		"status", resp.StatusCode,
		"took", time.Since(start),
		"body", raw.Body,
	)

	for _, hook := range c.hooks {
		hook(ctx, raw)
	}
	return raw, nil
}

// readBody reads r to the end, cancelling the request if no data arrives
// for readTimeout.
func (c *Client) readBody(ctx context.Context, cancel context.CancelCauseFunc, r io.Reader) (string, error) {
	watchdog := time.AfterFunc(c.readTimeout, func() { cancel(ErrReadTimeout) })
	defer watchdog.Stop()

	var sb strings.Builder
	buf := make([]byte, 32<<10)
	lr := io.LimitReader(r, maxBodySize)
	for {
		n, err := lr.Read(buf)
		if n > 0 {
			watchdog.Reset(c.readTimeout)
			sb.Write(buf[:n])
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
}

func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}
