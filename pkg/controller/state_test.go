package controller

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		state    FetchState
		expected string
	}{
		{"idle", Idle{}, "Client ready"},
		{"nil is idle", nil, "Client ready"},
		{"loading", Loading{}, "Client: calling service..."},
		{"loaded", Loaded{Records: makeRecords(10)}, "Client: received 10 records"},
		{"loaded empty", Loaded{}, "Client: received 0 records"},
		{"failed", Failed{Message: "service network error: request failed"}, "Error: service network error: request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.state))
		})
	}
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, StateIdle, Idle{}.Name())
	assert.Equal(t, StateLoading, Loading{}.Name())
	assert.Equal(t, StateLoaded, Loaded{}.Name())
	assert.Equal(t, StateFailed, Failed{}.Name())
}

func TestSnapshotView(t *testing.T) {
	records := makeRecords(7)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Version:   4,
		FetchID:   "f-1",
		State:     Loaded{Records: records},
		PageIndex: 1,
		PageSize:  3,
		Page:      pagination.Slice(records, 1, 3),
		Status:    Status(Loaded{Records: records}),
		At:        at,
	}

	view := snap.View()
	assert.Equal(t, StateLoaded, view.State)
	assert.Equal(t, 7, view.RecordCount)
	assert.Equal(t, 3, view.TotalPages)
	assert.True(t, view.HasPrevious)
	assert.True(t, view.HasNext)
	assert.Equal(t, []int{4, 5, 6}, ids(view.Records))
	assert.Empty(t, view.Message)

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "loaded", decoded["state"])
	assert.Equal(t, "f-1", decoded["fetch_id"])
	assert.Equal(t, float64(1), decoded["page_index"])
}

func TestSnapshotView_Failed(t *testing.T) {
	state := Failed{Message: "boom"}
	snap := Snapshot{
		State:    state,
		PageSize: 3,
		Page:     pagination.Slice[client.Record](nil, 0, 3),
		Status:   Status(state),
	}

	view := snap.View()
	assert.Equal(t, StateFailed, view.State)
	assert.Equal(t, "boom", view.Message)
	assert.Equal(t, "Error: boom", view.Status)
	assert.NotNil(t, view.Records)
	assert.Empty(t, view.Records)
	assert.Zero(t, view.RecordCount)
}
