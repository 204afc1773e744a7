package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/dsandstrom/linkedin/pkg/errors"
	"golang.org/x/time/rate"
)

// apiPathPrefix scopes every relative request path to the versioned REST
// namespace. Requests made with unscoped URLs (pre-signed upload URLs) skip
// it entirely.
const apiPathPrefix = "v2/"

// Default headers applied to every scoped request. Callers may override any
// of them per request; the binary upload overrides Content-Type.
const (
	HeaderContentType     = "Content-Type"
	HeaderFormat          = "x-li-format"
	HeaderRestliProtocol  = "X-Restli-Protocol-Version"
	ContentTypeJSON       = "application/json"
	ContentTypeOctet      = "application/octet-stream"
	FormatJSON            = "json"
	RestliProtocolVersion = "2.0.0"
)

// TokenProvider supplies the bearer credential for each request. Token
// acquisition and refresh are owned by the caller.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// RateLimitConfig controls how requests are throttled before reaching LinkedIn.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 60 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

const (
	DefaultRequestsPerMinute = 60
	DefaultRateLimitBurst    = 10
	secondsPerMinute         = 60.0
)

// Client issues authenticated requests against the LinkedIn REST API.
// It applies default headers, scopes relative paths to the /v2 namespace and
// classifies non-2xx responses before any body reaches the caller.
type Client struct {
	client    *http.Client
	BaseURL   *url.URL
	UserAgent string
	auth      TokenProvider
	logger    *slog.Logger

	limiter *rate.Limiter
}

// NewClient returns a new API client. If a nil httpClient is provided,
// http.DefaultClient will be used.
func NewClient(httpClient *http.Client, auth TokenProvider, baseURL string, userAgent string, rateCfg *RateLimitConfig, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if auth == nil {
		return nil, &pkgerrs.ClientError{Operation: "NewClient", Message: "token provider is required"}
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "NewClient", Err: err}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	if rateCfg == nil {
		rateCfg = &RateLimitConfig{}
	}

	return &Client{
		client:    httpClient,
		BaseURL:   parsedURL,
		UserAgent: userAgent,
		auth:      auth,
		logger:    logger,
		limiter:   buildLimiter(*rateCfg),
	}, nil
}

// Get issues a GET for a path relative to the /v2 namespace and returns the
// response body. Non-2xx statuses covered by the error taxonomy are returned
// as *pkgerrs.APIError and the body is never handed back.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, headers, false)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Post issues a POST and returns the response body. When unscoped is true
// the path is treated as a complete absolute URL and no /v2 prefix is
// applied; this is used exactly once, for pre-signed upload URLs.
func (c *Client) Post(ctx context.Context, path string, body []byte, headers map[string]string, unscoped bool) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body), headers, unscoped)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// newRequest creates an API request. A relative path is resolved against the
// BaseURL plus the API path prefix unless unscoped is set.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, headers map[string]string, unscoped bool) (*http.Request, error) {
	var u *url.URL
	var err error
	if unscoped {
		u, err = url.Parse(path)
	} else {
		u, err = c.BaseURL.Parse(apiPathPrefix + strings.TrimPrefix(path, "/"))
	}
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "newRequest", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "newRequest", Err: err}
	}

	token, err := c.auth.GetToken(ctx)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "newRequest", Message: "failed to get token", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderFormat, FormatJSON)
	req.Header.Set(HeaderRestliProtocol, RestliProtocolVersion)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// do sends the request, reads the body and routes the response through the
// status classifier. Exactly one network call per invocation; no retries.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &pkgerrs.ClientError{Operation: "rate limit", Err: err}
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "read response", Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("linkedin API response",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
		)
	}

	if err := classifyResponse(resp, body); err != nil {
		return nil, err
	}

	return body, nil
}

// apiErrorBody is the error envelope LinkedIn returns on 400/401/403.
type apiErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// classifyResponse maps a non-2xx response to the error taxonomy. Statuses
// outside the mapped set are passed through unexamined; callers may depend
// on seeing those bodies.
func classifyResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	kind, ok := pkgerrs.KindForStatus(resp.StatusCode)
	if !ok {
		return nil
	}

	apiErr := &pkgerrs.APIError{
		StatusCode: resp.StatusCode,
		Kind:       kind,
		Body:       string(body),
	}

	switch kind {
	case pkgerrs.KindGeneral, pkgerrs.KindUnauthorized, pkgerrs.KindAccessDenied:
		var parsed apiErrorBody
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = string(body)
		}
	case pkgerrs.KindServer:
		apiErr.Message = "internal server error"
	default:
		apiErr.Message = reasonPhrase(resp.Status)
	}

	return apiErr
}

// reasonPhrase strips the leading status code from an HTTP status line,
// e.g. "404 Not Found" -> "Not Found".
func reasonPhrase(status string) string {
	if i := strings.IndexByte(status, ' '); i >= 0 {
		return status[i+1:]
	}
	return status
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	requestsPerMinute := cfg.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	limitPerSecond := rate.Limit(requestsPerMinute / secondsPerMinute)
	if limitPerSecond <= 0 {
		limitPerSecond = rate.Limit(1)
	}

	return rate.NewLimiter(limitPerSecond, burst)
}
