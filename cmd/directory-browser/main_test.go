package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sternrassler/user-directory-client/internal/testutil"
	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/controller"
	"github.com/Sternrassler/user-directory-client/pkg/pagination"
)

// newBrowser wires a real gateway against mock and a controller without delay.
func newBrowser(t *testing.T, mock *testutil.MockService) *controller.Controller {
	t.Helper()

	cfg := client.DefaultConfig()
	cfg.BaseURL = mock.URL()
	gateway, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	t.Cleanup(func() { gateway.Close() })

	ctrl, err := controller.New(gateway, controller.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}
	return ctrl
}

func runSession(t *testing.T, ctrl *controller.Controller, input string) string {
	t.Helper()

	var out strings.Builder
	if err := runREPL(context.Background(), strings.NewReader(input), &out, ctrl); err != nil {
		t.Fatalf("runREPL() error: %v", err)
	}
	return out.String()
}

func TestHealthEndpoint(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	newOpsRouter(newBrowser(t, mock)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", body)
	}
}

func TestStateEndpoint(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()

	ctrl := newBrowser(t, mock)
	router := newOpsRouter(ctrl)

	get := func() controller.View {
		t.Helper()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/state", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var view controller.View
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		return view
	}

	if view := get(); view.State != controller.StateIdle || view.Status != "Client ready" {
		t.Errorf("initial view = %+v", view)
	}

	done, _ := ctrl.StartFetch(context.Background())
	<-done
	ctrl.NextPage()

	view := get()
	if view.State != controller.StateLoaded {
		t.Fatalf("state = %q, want loaded", view.State)
	}
	if view.RecordCount != 10 || view.TotalPages != 4 || view.PageIndex != 1 {
		t.Errorf("view = %+v", view)
	}
	if len(view.Records) != 3 || view.Records[0].ID != 4 {
		t.Errorf("records = %+v, want page 2", view.Records)
	}
	if view.FetchID == "" {
		t.Error("fetch_id should be set after a fetch")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()

	ctrl := newBrowser(t, mock)
	done, _ := ctrl.StartFetch(context.Background())
	<-done

	w := httptest.NewRecorder()
	newOpsRouter(ctrl).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	for _, name := range []string{"directory_requests_total", "directory_fetches_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}

func TestREPL_BrowseSession(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()
	mock.SetUsersResponse(testutil.NewUsersResponse(7))

	out := runSession(t, newBrowser(t, mock), "show\nfetch\nnext\nnext\nnext\nprev\nfetch\nreset\nquit\n")

	for _, want := range []string{
		"[idle] Client ready",
		"[loading] Client: calling service...",
		"[loaded] Client: received 7 records",
		"Page 1/3",
		"  #1 User 1 <user1@example.com>",
		"  #3 User 3 <user3@example.com>",
		"Page 2/3",
		"< prev | next >",
		"Page 3/3",
		"  #7 User 7 <user7@example.com>",
		"no next page",
		"already loaded; reset first",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if !strings.HasSuffix(strings.TrimRight(out, "> \n"), "[idle] Client ready") {
		t.Errorf("session should end idle after reset:\n%s", out)
	}
	if mock.RequestCount() != 1 {
		t.Errorf("RequestCount = %d, want 1", mock.RequestCount())
	}
}

func TestREPL_FailedFetchThenRetry(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()
	mock.SetUsersResponse(testutil.NewServerErrorResponse())

	ctrl := newBrowser(t, mock)
	out := runSession(t, ctrl, "f\nn\n")

	if !strings.Contains(out, "[failed] Error: service status error (status 500)") {
		t.Errorf("output missing failure line:\n%s", out)
	}
	if !strings.Contains(out, "no next page") {
		t.Errorf("paging should be refused when failed:\n%s", out)
	}

	mock.SetUsersResponse(testutil.NewUsersResponse(2))
	out = runSession(t, ctrl, "fetch\n")
	if !strings.Contains(out, "[loaded] Client: received 2 records") {
		t.Errorf("retry should load:\n%s", out)
	}
}

func TestREPL_EmptyDirectory(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()
	mock.SetUsersResponse(testutil.NewUsersResponse(0))

	out := runSession(t, newBrowser(t, mock), "fetch\nnext\nprev\n")

	for _, want := range []string{"Client: received 0 records", "(no records)", "no next page", "no previous page"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestREPL_UnknownAndHelp(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()

	out := runSession(t, newBrowser(t, mock), "\nhelp\nfrobnicate\n")

	if !strings.Contains(out, "fetch, f") {
		t.Errorf("help text missing:\n%s", out)
	}
	if !strings.Contains(out, `unknown command "frobnicate"`) {
		t.Errorf("unknown command not reported:\n%s", out)
	}
	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0", mock.RequestCount())
	}
}

func TestREPL_CancelledContext(t *testing.T) {
	mock := testutil.NewMockService()
	defer mock.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	if err := runREPL(ctx, strings.NewReader("fetch\n"), &out, newBrowser(t, mock)); err != nil {
		t.Fatalf("runREPL() error: %v", err)
	}
	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0 after cancellation", mock.RequestCount())
	}
}

func TestRender(t *testing.T) {
	records := []client.Record{
		{ID: 1, Name: "a", Email: "a@x"},
		{ID: 2, Name: "b", Email: "b@x"},
		{ID: 3, Name: "c", Email: "c@x"},
		{ID: 4, Name: "d", Email: "d@x"},
	}

	tests := []struct {
		name     string
		snap     controller.Snapshot
		expected string
	}{
		{
			name:     "idle",
			snap:     controller.Snapshot{State: controller.Idle{}, Status: "Client ready"},
			expected: "[idle] Client ready\n",
		},
		{
			name:     "failed",
			snap:     controller.Snapshot{State: controller.Failed{Message: "boom"}, Status: "Error: boom"},
			expected: "[failed] Error: boom\n",
		},
		{
			name: "first page",
			snap: controller.Snapshot{
				State:  controller.Loaded{Records: records},
				Status: "Client: received 4 records",
				Page:   pagination.Slice(records, 0, 3),
			},
			expected: "[loaded] Client: received 4 records\nPage 1/2\n  #1 a <a@x>\n  #2 b <b@x>\n  #3 c <c@x>\n  next >\n",
		},
		{
			name: "last page",
			snap: controller.Snapshot{
				State:     controller.Loaded{Records: records},
				Status:    "Client: received 4 records",
				PageIndex: 1,
				Page:      pagination.Slice(records, 1, 3),
			},
			expected: "[loaded] Client: received 4 records\nPage 2/2\n  #4 d <d@x>\n  < prev\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			render(&out, tt.snap)
			if out.String() != tt.expected {
				t.Errorf("render() = %q, want %q", out.String(), tt.expected)
			}
		})
	}
}
