// Package instagram resolves Instagram post and reel URLs to media metadata
// through the web API, either anonymously or with a logged-in session.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	baseURL        = "https://www.instagram.com"
	graphQLPath    = "/graphql/query/"
	loginPath      = "/accounts/login/ajax/"
	mediaQueryHash = "b3055c01b4b222b8a47dc12b090e4e64"

	limiterBurst     = 2
	maxBodySize      = 8 * 1024 * 1024
	defaultTimeout   = 30 * time.Second
	retryBaseDelay   = time.Second
	appIDHeader      = "936619743392459"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

// Client is an HTTP client against the Instagram web API. It applies browser
// headers, a global rate limit and bounded retries to every request.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    *rate.Limiter
	maxRetries int
	logger     *zerolog.Logger
}

// NewClient creates a client with the given request timeout, rate limit and
// retry budget.
func NewClient(timeout time.Duration, rps float64, maxRetries int, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	jar, _ := cookiejar.New(nil)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		headers: map[string]string{
			"User-Agent":       defaultUserAgent,
			"Accept":           "*/*",
			"Accept-Language":  "en-US,en;q=0.9",
			"X-IG-App-ID":      appIDHeader,
			"X-Requested-With": "XMLHttpRequest",
			"Referer":          baseURL + "/",
		},
		limiter:    rate.NewLimiter(rate.Limit(rps), limiterBurst),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// SetHeader overrides or adds a request header for all subsequent requests.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: ErrorKindNetwork, Message: fmt.Sprintf("rate limiter wait: %v", err)}
	}

	for key, value := range c.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL.String()).Dur("duration", time.Since(start)).Msg("request failed")

		return nil, &Error{Kind: ErrorKindNetwork, Message: fmt.Sprintf("network error: %v", err)}
	}

	c.logger.Debug().Str("url", req.URL.String()).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("request completed")

	return resp, nil
}

func (c *Client) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("retrying request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			}
		}

		req, err := newReq()
		if err != nil {
			return nil, &Error{Kind: ErrorKindUnknown, Message: fmt.Sprintf("build request: %v", err)}
		}

		resp, err := c.do(ctx, req.WithContext(ctx))
		if err != nil {
			lastErr = err

			var igErr *Error
			if errors.As(err, &igErr) && igErr.Retryable() {
				continue
			}

			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = statusError(resp.StatusCode)

			_ = resp.Body.Close()

			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// GetJSON performs a GET against url and decodes the JSON response body into
// target.
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}

	return decodeJSON(resp, target)
}

func decodeJSON(resp *http.Response, target interface{}) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Kind: ErrorKindNetwork, Message: fmt.Sprintf("read response body: %v", err), Code: resp.StatusCode}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &Error{Kind: ErrorKindParsing, Message: fmt.Sprintf("parse JSON: %v", err), Code: resp.StatusCode}
	}

	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &Error{Kind: ErrorKindAuth, Message: "authentication required", Code: code}
	case code == http.StatusNotFound:
		return &Error{Kind: ErrorKindNotFound, Message: "media not found", Code: code}
	case code == http.StatusTooManyRequests:
		return &Error{Kind: ErrorKindRateLimit, Message: "rate limit exceeded", Code: code}
	case code >= http.StatusInternalServerError:
		return &Error{Kind: ErrorKindServerError, Message: "server error", Code: code}
	case code >= http.StatusBadRequest:
		return &Error{Kind: ErrorKindUnknown, Message: fmt.Sprintf("unexpected status code: %d", code), Code: code}
	default:
		return nil
	}
}

func statusError(code int) *Error {
	if code == http.StatusTooManyRequests {
		return &Error{Kind: ErrorKindRateLimit, Message: "rate limit exceeded", Code: code}
	}

	return &Error{Kind: ErrorKindServerError, Message: fmt.Sprintf("server returned status %d", code), Code: code}
}
