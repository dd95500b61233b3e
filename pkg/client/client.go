// Package client provides the HTTP gateway to the remote directory service.
// It performs one round trip per fetch and decodes the response into records.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for gateway operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_requests_total",
		Help: "Total directory service requests by resource and status",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_request_duration_seconds",
		Help:    "Directory service request duration in seconds by resource",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_errors_total",
		Help: "Total gateway errors by class",
	}, []string{"class"})

	recordsDecoded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "directory_records_decoded",
		Help: "Number of records decoded from the last successful response",
	})
)

const (
	// DefaultBaseURL is the public demo service.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com/"

	// DefaultResource is the collection fetched from the service.
	DefaultResource = "users"
)

// Client is the directory service gateway.
type Client struct {
	httpClient *http.Client
	cache      *cache.Store
	config     Config
	endpoint   string
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the service, e.g. "https://jsonplaceholder.typicode.com/"
	BaseURL string `validate:"required,url"`

	// Resource path joined to BaseURL, e.g. "users"
	Resource string `validate:"required"`

	// UserAgent overrides the default Go User-Agent when set
	UserAgent string

	// Timeout for the whole round trip; 0 means none
	Timeout time.Duration `validate:"gte=0"`

	// Revalidate sends conditional requests using the validators of the
	// last successful response and replays its body on 304 Not Modified.
	Revalidate bool
}

// DefaultConfig returns a configuration that issues one plain GET with
// default headers against the demo service.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Resource:   DefaultResource,
		Timeout:    0,
		Revalidate: false,
	}
}

// New creates a new gateway client.
func New(cfg Config) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	endpoint, err := url.JoinPath(cfg.BaseURL, cfg.Resource)
	if err != nil {
		return nil, fmt.Errorf("build endpoint: %w", err)
	}

	logger := log.With().Str("component", "directory-client").Logger()

	var store *cache.Store
	if cfg.Revalidate {
		store = cache.NewStore()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:    store,
		config:   cfg,
		endpoint: endpoint,
		logger:   logger,
	}, nil
}

// FetchAll performs one GET against the configured resource and decodes the
// body into records. It does not retry. Errors are *ServiceError values that
// match ErrNetwork, ErrDecode or ErrStatus via errors.Is.
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resource := req.URL.Path

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errClass := c.classifyError(resp, nil)
		errorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("resource", resource).
			Int("status_code", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Service answered with error status")

		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		c.logger.Error().Err(err).Str("resource", resource).Msg("Reading response body failed")
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Message:    "read response body",
			Err:        err,
		}
	}

	records, err := DecodeRecords(body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Warn().
			Err(err).
			Str("resource", resource).
			Int("body_bytes", len(body)).
			Str("error_class", string(ErrorClassDecode)).
			Msg("Response does not match record shape")
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassDecode,
			Message:    "malformed records",
			Err:        err,
		}
	}

	recordsDecoded.Set(float64(len(records)))
	c.logger.Info().
		Str("resource", resource).
		Int("record_count", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Fetched records")

	return records, nil
}

// Do executes a request with metrics, logging and optional revalidation.
// Transport failures are returned as *ServiceError with ErrorClassNetwork;
// any HTTP status is returned to the caller untouched.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resource := req.URL.Path

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(resource).Observe(time.Since(startTime).Seconds())
	}()

	key := cache.Key{
		Resource: resource,
		Query:    req.URL.Query(),
	}

	var stored *cache.Entry
	if c.cache != nil {
		entry, err := c.cache.Get(key)
		if err == nil && cache.ShouldMakeConditionalRequest(entry) {
			stored = entry
			cache.AddConditionalHeaders(req, entry)
			cache.ConditionalRequestsSent.Inc()
			c.logger.Debug().
				Str("resource", resource).
				Str("etag", entry.ETag).
				Msg("Making conditional request")
		}
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("resource", resource).
		Str("method", req.Method).
		Msg("Executing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errClass := c.classifyError(nil, err)
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		requestsTotal.WithLabelValues(resource, "network_error").Inc()
		c.logger.Error().Err(err).Str("resource", resource).Msg("HTTP request failed")
		return nil, &ServiceError{
			ErrorClass: errClass,
			Message:    "request failed",
			Err:        err,
		}
	}

	requestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotModified && stored != nil {
		resp.Body.Close()
		cache.NotModifiedResponses.Inc()
		c.logger.Debug().Str("resource", resource).Msg("304 Not Modified - replaying stored body")
		return cache.EntryToResponse(stored), nil
	}

	if c.cache != nil && resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			resp.Body.Close()
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return nil, &ServiceError{
				StatusCode: resp.StatusCode,
				ErrorClass: ErrorClassNetwork,
				Message:    "read response body",
				Err:        err,
			}
		}
		if entry.HasValidators() {
			if err := c.cache.Set(key, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to store response for revalidation")
			}
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		c.logger.Debug().Str("class", string(ErrorClassNetwork)).Msg("Error classified")
		return ErrorClassNetwork
	}

	if resp == nil || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return ""
	}

	c.logger.Debug().Str("class", string(ErrorClassStatus)).Msg("Error classified")
	return ErrorClassStatus
}

// Endpoint returns the absolute URL FetchAll requests.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Cache returns the revalidation store, or nil when revalidation is off.
func (c *Client) Cache() *cache.Store {
	return c.cache
}
