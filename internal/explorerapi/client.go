package explorerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/metrics"
	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/pkg/logger"
	"github.com/thanhnp/tx-explorer/pkg/semver"
)

// Compatible explorer backend API versions
var compatibleBackendAPIs = []semver.Version{
	semver.New(5, 0, 0),
	semver.New(6, 0, 0),
	semver.New(7, 0, 0),
	semver.New(8, 0, 0),
	semver.New(9, 0, 0),
}

// ErrNotFound is returned when the explorer answers 404
var ErrNotFound = errors.New("resource not found")

// StatusError is returned for any other non-2xx response
type StatusError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("explorer api %s: unexpected status %d: %s", e.Resource, e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the explorer REST API
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewClient creates a new explorer API client
func NewClient(cfg *config.UpstreamConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported upstream url scheme: %q", base.Scheme)
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 8 << 20
	}

	return &Client{
		baseURL:      base,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: maxBody,
	}, nil
}

// URL returns the absolute URL of resource with params
func (c *Client) URL(resource string, params PathParams) (string, error) {
	r, err := LookupResource(resource)
	if err != nil {
		return "", err
	}
	path, err := r.BuildPath(params)
	if err != nil {
		return "", err
	}
	return c.baseURL.String() + path, nil
}

// FetchRaw performs a GET for resource and returns the response body
func (c *Client) FetchRaw(ctx context.Context, resource string, params PathParams) ([]byte, error) {
	target, err := c.URL(resource, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(resource, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to request %s: %w", resource, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", resource, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%s response exceeds %d bytes", resource, c.maxBodyBytes)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", resource, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Resource: resource, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	return body, nil
}

// CheckBackendVersion fetches the backend version and verifies that its
// major version is one this service understands
func (c *Client) CheckBackendVersion(ctx context.Context) (semver.Version, error) {
	body, err := c.FetchRaw(ctx, ResourceConfigBackendVersion, nil)
	if err != nil {
		return semver.Version{}, err
	}

	var reply models.BackendVersion
	if err := json.Unmarshal(body, &reply); err != nil {
		return semver.Version{}, fmt.Errorf("failed to decode backend version: %w", err)
	}

	ver, err := semver.ParseLenient(reply.BackendVersion)
	if err != nil {
		return semver.Version{}, err
	}

	if !semver.AnyCompatible(compatibleBackendAPIs, *ver) {
		return *ver, fmt.Errorf("explorer backend does not have "+
			"a compatible API version. Advertises %v but requires one of: %v",
			ver, compatibleBackendAPIs)
	}

	logger.Info("explorer backend version", "version", ver.String(), "url", c.baseURL.String())
	return *ver, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
