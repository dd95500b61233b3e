package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/pagination"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 3

// ErrFetchInFlight is returned by Reset while a fetch is running.
var ErrFetchInFlight = errors.New("fetch in flight")

// Gateway fetches the full record collection in one call.
// *client.Client implements it.
type Gateway interface {
	FetchAll(ctx context.Context) ([]client.Record, error)
}

// Config holds the controller configuration.
type Config struct {
	// PageSize is the fixed number of records per page (must be > 0)
	PageSize int

	// FetchDelay is waited before the gateway is called; 0 disables it
	FetchDelay time.Duration

	// Observers are notified after every change
	Observers []Observer
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:   DefaultPageSize,
		FetchDelay: 0,
	}
}

// Controller drives the fetch lifecycle and page navigation.
type Controller struct {
	gateway  Gateway
	pageSize int
	delay    time.Duration
	logger   zerolog.Logger

	mu        sync.Mutex
	state     FetchState
	pageIndex int
	fetchID   string
	version   uint64
	observers []Observer
}

// New creates a controller in the Idle state.
func New(gateway Gateway, cfg Config) (*Controller, error) {
	if gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be > 0 (got %d)", cfg.PageSize)
	}
	if cfg.FetchDelay < 0 {
		return nil, fmt.Errorf("fetch delay must be >= 0 (got %s)", cfg.FetchDelay)
	}

	observers := make([]Observer, 0, len(cfg.Observers))
	for _, o := range cfg.Observers {
		if o != nil {
			observers = append(observers, o)
		}
	}

	c := &Controller{
		gateway:   gateway,
		pageSize:  cfg.PageSize,
		delay:     cfg.FetchDelay,
		logger:    log.With().Str("component", "fetch-controller").Logger(),
		state:     Idle{},
		observers: observers,
	}
	recordState(c.state)

	return c, nil
}

// AddObserver registers an observer for subsequent changes.
func (c *Controller) AddObserver(o Observer) {
	if o == nil {
		return
	}
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

// StartFetch begins a fetch from Idle or Failed. The returned channel is
// closed once the state resolved to Loaded or Failed.
//
// From Loading or Loaded it does nothing and returns (nil, false); the
// gateway is not called.
func (c *Controller) StartFetch(ctx context.Context) (<-chan struct{}, bool) {
	c.mu.Lock()
	switch c.state.(type) {
	case Loading, Loaded:
		state := c.state.Name()
		c.mu.Unlock()
		c.logger.Warn().Str("state", state).Msg("StartFetch ignored")
		return nil, false
	}

	fetchID := uuid.NewString()
	c.fetchID = fetchID
	c.pageIndex = 0
	snap, observers := c.transitionLocked(Loading{})
	c.mu.Unlock()

	c.logger.Debug().
		Str("fetch_id", fetchID).
		Uint64("version", snap.Version).
		Msg("Fetch started")
	notify(observers, snap)

	done := make(chan struct{})
	go c.run(ctx, fetchID, done)

	return done, true
}

// run performs the fetch and resolves the Loading state.
func (c *Controller) run(ctx context.Context, fetchID string, done chan<- struct{}) {
	defer close(done)

	start := time.Now()
	records, err := c.fetch(ctx)
	elapsed := time.Since(start)
	fetchDuration.Observe(elapsed.Seconds())

	var next FetchState
	if err != nil {
		next = Failed{Message: failureMessage(err)}
		fetchesTotal.WithLabelValues(StateFailed).Inc()
		c.logger.Error().
			Err(err).
			Str("fetch_id", fetchID).
			Str("error_class", string(client.Class(err))).
			Dur("duration", elapsed).
			Msg("Fetch failed")
	} else {
		records = slices.Clone(records)
		if records == nil {
			records = []client.Record{}
		}
		next = Loaded{Records: records}
		fetchesTotal.WithLabelValues(StateLoaded).Inc()
		c.logger.Info().
			Str("fetch_id", fetchID).
			Int("record_count", len(records)).
			Int("total_pages", pagination.TotalPages(len(records), c.pageSize)).
			Dur("duration", elapsed).
			Msg("Fetch completed")
	}

	c.mu.Lock()
	c.pageIndex = 0
	snap, observers := c.transitionLocked(next)
	c.mu.Unlock()

	notify(observers, snap)
}

// fetch waits the configured delay, then calls the gateway.
func (c *Controller) fetch(ctx context.Context) ([]client.Record, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("fetch cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return c.gateway.FetchAll(ctx)
}

// failureMessage derives a non-empty message from a fetch error.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}

// Reset discards the records and returns to Idle. It is refused with
// ErrFetchInFlight while Loading.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if _, loading := c.state.(Loading); loading {
		c.mu.Unlock()
		c.logger.Warn().Str("state", StateLoading).Msg("Reset refused")
		return ErrFetchInFlight
	}

	from := c.state.Name()
	c.pageIndex = 0
	c.fetchID = ""
	snap, observers := c.transitionLocked(Idle{})
	c.mu.Unlock()

	resetsTotal.Inc()
	c.logger.Debug().
		Str("state", from).
		Uint64("version", snap.Version).
		Msg("Reset to idle")
	notify(observers, snap)

	return nil
}

// NextPage moves to the following page. It returns false, changing
// nothing, outside Loaded or on the last page.
func (c *Controller) NextPage() bool {
	return c.move(+1, "next")
}

// PreviousPage moves to the preceding page. It returns false, changing
// nothing, outside Loaded or on the first page.
func (c *Controller) PreviousPage() bool {
	return c.move(-1, "previous")
}

func (c *Controller) move(delta int, direction string) bool {
	c.mu.Lock()
	loaded, ok := c.state.(Loaded)
	if !ok {
		state := c.state.Name()
		c.mu.Unlock()
		c.logger.Debug().Str("state", state).Str("direction", direction).Msg("Page move ignored")
		return false
	}

	totalPages := pagination.TotalPages(len(loaded.Records), c.pageSize)
	target := c.pageIndex + delta
	if totalPages == 0 || target < 0 || target >= totalPages {
		c.mu.Unlock()
		return false
	}

	c.pageIndex = pagination.Clamp(target, totalPages)
	snap, observers := c.transitionLocked(loaded)
	c.mu.Unlock()

	pageNavigations.WithLabelValues(direction).Inc()
	c.logger.Debug().
		Int("page_index", snap.PageIndex).
		Int("total_pages", totalPages).
		Uint64("version", snap.Version).
		Msg("Page changed")
	notify(observers, snap)

	return true
}

// State returns a copy of the current state.
func (c *Controller) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

// PageIndex returns the current zero-based page index.
func (c *Controller) PageIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageIndex
}

// Snapshot returns a read-only copy of the controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// transitionLocked installs next, bumps the version and returns the new
// snapshot plus the observers to notify. Caller holds c.mu.
func (c *Controller) transitionLocked(next FetchState) (Snapshot, []Observer) {
	if c.state.Name() != next.Name() {
		c.logger.Debug().
			Str("from", c.state.Name()).
			Str("state", next.Name()).
			Msg("State transition")
		recordState(next)
	}

	c.state = next
	c.version++

	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)

	return c.snapshotLocked(), observers
}

func (c *Controller) snapshotLocked() Snapshot {
	state := cloneState(c.state)
	return Snapshot{
		Version:   c.version,
		FetchID:   c.fetchID,
		State:     state,
		PageIndex: c.pageIndex,
		PageSize:  c.pageSize,
		Page:      pagination.Slice(recordsOf(state), c.pageIndex, c.pageSize),
		Status:    Status(state),
		At:        time.Now(),
	}
}

func notify(observers []Observer, snap Snapshot) {
	for _, o := range observers {
		o.Observe(snap)
	}
}
