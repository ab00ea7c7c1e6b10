// Package gateway is the single egress point to the price backend. Every
// remote read and mutation goes through a Client, which attaches the stored
// bearer token, classifies failures into the Kind taxonomy and applies the
// session recovery effects exactly once per failing call. No call is ever
// retried here; callers decide whether to try again.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 * 1024

	serverFaultMessage = "The price service hit an internal error. Please try again later."
)

// Notifier surfaces a one-line message to the user. Implementations must not
// block.
type Notifier func(message string)

// Redirect sends the user to the login view. Implementations must be safe to
// invoke repeatedly.
type Redirect func()

// Client talks to the price backend. Construct it with New and inject the
// same instance everywhere a backend call is made.
type Client struct {
	baseURL       string
	store         credentials.Store
	httpClient    *http.Client
	notify        Notifier
	loginRedirect Redirect
}

// Option configures a Client created by New.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, typically with a test
// server client or one carrying a custom transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithNotifier sets the callback used to tell the user about backend faults.
func WithNotifier(notify Notifier) Option {
	return func(c *Client) {
		if notify != nil {
			c.notify = notify
		}
	}
}

// WithLoginRedirect sets the navigation callback invoked when a call comes
// back unauthorized.
func WithLoginRedirect(redirect Redirect) Option {
	return func(c *Client) {
		if redirect != nil {
			c.loginRedirect = redirect
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a Client for the backend at baseURL. Credentials are read from
// store on every call, so a token set after construction is picked up
// without rebuilding the Client.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[gateway.New] credentials store is required")
	}

	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		store:         store,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		notify:        func(string) {},
		loginRedirect: func() {},
	}

	for _, option := range options {
		option(client)
	}

	return client, nil
}

// Message is the backend's plain acknowledgement envelope.
type Message struct {
	Message string `json:"message"`
}

// do performs one backend call: build the request, attach headers and the
// bearer token, send, classify anything that is not a decodable 2xx, and
// decode into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] json.Marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] http.NewRequestWithContext")
	}
	c.decorate(req, body != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(method, path, Classify(0, "", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.fail(method, path, Classify(resp.StatusCode, detailFromBody(data), nil))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(method, path, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode, Err: err})
	}

	return nil
}

// decorate attaches the common headers and, when the store holds one, the
// bearer token.
func (c *Client) decorate(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.store.Get()
	if err != nil {
		if !errors.Is(err, credentials.ErrNoToken) {
			log.Err(err).Msg("reading stored credentials")
		}
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// fail logs a classified failure, applies its recovery effect and returns the
// error the caller sees. Effects run once per failing call: a 401 clears the
// stored token and redirects to login, a 5xx notifies the user. All other
// kinds pass through untouched.
func (c *Client) fail(method, path string, apiErr *APIError) error {
	log.Err(apiErr).
		Str("method", method).
		Str("path", path).
		Str("kind", string(apiErr.Kind)).
		Msg("backend call failed")

	switch apiErr.Kind {
	case KindUnauthorized:
		if err := c.store.Clear(); err != nil {
			log.Err(err).Msg("clearing credentials after unauthorized response")
		}
		c.loginRedirect()
	case KindServerFault:
		c.notify(serverFaultMessage)
	}

	return apiErr
}
