// Package backend lists events, certificates and notifications from the
// event management REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roboco-io/eventdesk/internal/auth"
	"github.com/roboco-io/eventdesk/internal/dataset"
)

const (
	// DefaultBaseURL is the default backend endpoint.
	DefaultBaseURL = "http://localhost:8080"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4 << 10
)

// ErrUnauthenticated is returned when no valid token is available.
var ErrUnauthenticated = errors.New("not authenticated")

// Resource is a listable collection.
type Resource string

const (
	Events        Resource = "events"
	Certificates  Resource = "certificates"
	Notifications Resource = "notifications"
)

// Resources lists every known resource.
var Resources = []Resource{Events, Certificates, Notifications}

// ParseResource validates a resource name.
func ParseResource(name string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Resources {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q (events, certificates, notifications)", name)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d, request %s): %s", e.StatusCode, e.RequestID, e.Body)
}

// Config holds the client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend.
type Client struct {
	baseURL string
	auth    auth.Provider
	client  *http.Client
	log     zerolog.Logger
}

// New creates a backend client. log is used as given; callers tag it with
// a component name.
func New(cfg Config, provider auth.Provider, log zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		auth:    provider,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every record of a resource.
func (c *Client) List(ctx context.Context, resource Resource) (*dataset.Dataset, error) {
	token, ok := c.auth.Token()
	if !ok {
		return nil, ErrUnauthenticated
	}

	url := fmt.Sprintf("%s/api/%s", c.baseURL, resource)
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", requestID).Str("resource", string(resource)).Msg("request failed")
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("resource", string(resource)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("response")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", resource, ErrUnauthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RequestID:  requestID,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	ds, err := dataset.Decode(body, dataset.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	return ds, nil
}
