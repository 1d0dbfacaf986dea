package transport

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/careerconnect/client/domain"
	appLogger "github.com/careerconnect/client/pkg/logger"
)

// TokenSource yields the currently persisted bearer credential, if any.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// Options configures the outbound client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	MaxConns  int
}

// Client is the single dispatch point for every backend call. It attaches
// the bearer credential to each outbound request and intercepts
// authorization failures globally: any 401 fires the registered
// OnUnauthorized callback before the error is returned to the call site.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	hc        *fasthttp.Client
	tokens    TokenSource
	logger    *zap.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// New builds a Client. tokens may be nil for a purely anonymous client.
func New(opts Options, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = 8
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		tokens:    tokens,
		logger:    logger,
		hc: &fasthttp.Client{
			Name:                opts.UserAgent,
			MaxConnsPerHost:     opts.MaxConns,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// OnUnauthorized registers the callback invoked whenever the backend
// reports an authorization failure. The session owner hooks its forced
// logout here; the transport itself never touches session state.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, fasthttp.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, fasthttp.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, fasthttp.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, fasthttp.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.userAgent != "" {
		req.Header.SetUserAgent(c.userAgent)
	}

	reqID := appLogger.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			c.logger.Debug("token lookup failed", zap.Error(err))
		} else if token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
		}
		req.SetBody(payload)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.hc.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return domain.WrapError(domain.ErrCodeUnavailable, "backend unreachable", err)
	}

	status := resp.StatusCode()
	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("request_id", reqID))

	if status == fasthttp.StatusUnauthorized {
		c.notifyUnauthorized()
		return decodeError(status, resp.Body())
	}
	if status >= fasthttp.StatusBadRequest {
		return decodeError(status, resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "decode response body", err)
		}
	}
	return nil
}

func (c *Client) notifyUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
