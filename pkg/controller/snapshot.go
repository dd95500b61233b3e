package controller

import (
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/pagination"
)

// Snapshot is a read-only copy of the controller at one version.
type Snapshot struct {
	// Version increases by one with every change of the controller.
	Version uint64

	// FetchID identifies the fetch that produced State; empty when Idle.
	FetchID string

	State     FetchState
	PageIndex int
	PageSize  int

	// Page is the visible slice of the loaded records.
	Page pagination.Page[client.Record]

	// Status is Status(State).
	Status string

	At time.Time
}

// Records returns all loaded records, or nil when the state is not Loaded.
func (s Snapshot) Records() []client.Record {
	return recordsOf(s.State)
}

// View is the flat JSON form of a Snapshot, used by the ops endpoint and the
// state broadcast.
type View struct {
	Version     uint64          `json:"version"`
	FetchID     string          `json:"fetch_id,omitempty"`
	State       string          `json:"state"`
	Status      string          `json:"status"`
	Message     string          `json:"message,omitempty"`
	PageIndex   int             `json:"page_index"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	RecordCount int             `json:"record_count"`
	HasPrevious bool            `json:"has_previous"`
	HasNext     bool            `json:"has_next"`
	Records     []client.Record `json:"records"`
	At          time.Time       `json:"at"`
}

// View converts the snapshot into its JSON form. Records holds the visible
// page only.
func (s Snapshot) View() View {
	records := s.Page.Items
	if records == nil {
		records = []client.Record{}
	}

	return View{
		Version:     s.Version,
		FetchID:     s.FetchID,
		State:       s.State.Name(),
		Status:      s.Status,
		Message:     messageOf(s.State),
		PageIndex:   s.PageIndex,
		PageSize:    s.PageSize,
		TotalPages:  s.Page.TotalPages,
		RecordCount: len(s.Records()),
		HasPrevious: s.Page.HasPrevious(),
		HasNext:     s.Page.HasNext(),
		Records:     records,
		At:          s.At,
	}
}
