package controller

import (
	"fmt"

	"github.com/Sternrassler/user-directory-client/pkg/client"
)

// State names used in logs, metrics and views.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateLoaded  = "loaded"
	StateFailed  = "failed"
)

var stateNames = []string{StateIdle, StateLoading, StateLoaded, StateFailed}

// FetchState is the lifecycle state of a controller. It is sealed: the only
// implementations are Idle, Loading, Loaded and Failed.
type FetchState interface {
	// Name returns the lower-case state name.
	Name() string

	fetchState()
}

// Idle means nothing has been fetched yet, or the result was discarded.
type Idle struct{}

// Loading means a fetch is in flight.
type Loading struct{}

// Loaded carries the records of the last successful fetch in service order.
type Loaded struct {
	Records []client.Record
}

// Failed carries a human-readable description of the last failed fetch.
type Failed struct {
	Message string
}

func (Idle) Name() string    { return StateIdle }
func (Loading) Name() string { return StateLoading }
func (Loaded) Name() string  { return StateLoaded }
func (Failed) Name() string  { return StateFailed }

func (Idle) fetchState()    {}
func (Loading) fetchState() {}
func (Loaded) fetchState()  {}
func (Failed) fetchState()  {}

// Status returns the one-line status text for a state.
func Status(state FetchState) string {
	switch s := state.(type) {
	case Loading:
		return "Client: calling service..."
	case Loaded:
		return fmt.Sprintf("Client: received %d records", len(s.Records))
	case Failed:
		return "Error: " + s.Message
	default:
		return "Client ready"
	}
}

// recordsOf returns the records held by a Loaded state, nil otherwise.
func recordsOf(state FetchState) []client.Record {
	if loaded, ok := state.(Loaded); ok {
		return loaded.Records
	}
	return nil
}

// messageOf returns the failure message of a Failed state, "" otherwise.
func messageOf(state FetchState) string {
	if failed, ok := state.(Failed); ok {
		return failed.Message
	}
	return ""
}

// cloneState copies the record slice of a Loaded state so callers cannot
// mutate controller-owned data.
func cloneState(state FetchState) FetchState {
	if loaded, ok := state.(Loaded); ok {
		records := make([]client.Record, len(loaded.Records))
		copy(records, loaded.Records)
		return Loaded{Records: records}
	}
	return state
}
