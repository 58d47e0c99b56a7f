package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estruyf/FrameFit/internal/commands"
	"github.com/estruyf/FrameFit/internal/config"
	"github.com/estruyf/FrameFit/internal/database"
	"github.com/estruyf/FrameFit/internal/models"
	"github.com/estruyf/FrameFit/internal/resizer"
	"github.com/estruyf/FrameFit/pkg/window"
)

type fakeBackend struct {
	windows   []window.Window
	available bool
	applied   []window.ResizePlan
	applyErr  error
}

func (f *fakeBackend) HasWindowAccess() bool { return f.available }
func (f *fakeBackend) Windows() ([]window.Window, error) { return f.windows, nil }
func (f *fakeBackend) MainDisplaySize() (window.Size, bool) {
	return window.Size{Width: 1920, Height: 1080}, true
}
func (f *fakeBackend) IsAvailable() bool { return f.available }
func (f *fakeBackend) GetDisplayServer() string { return "fake" }
func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) Apply(plan window.ResizePlan) error {
	f.applied = append(f.applied, plan)
	return f.applyErr
}

func newTestMux(t *testing.T, b *fakeBackend, withJournal bool, origins ...string) (*http.ServeMux, *database.Repository) {
	t.Helper()

	var repo *database.Repository
	var journal commands.Journal
	if withJournal {
		db, err := database.Connect("file::memory:")
		if err != nil {
			t.Fatalf("Connect() error: %v", err)
		}
		sqlDB, err := db.DB.DB()
		if err != nil {
			t.Fatalf("DB() error: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { db.Close() })
		if err := db.Initialize(); err != nil {
			t.Fatalf("Initialize() error: %v", err)
		}
		repo = database.NewRepository(db)
		journal = repo
	}

	cmds := commands.New(resizer.NewService(config.Default(), b), journal)
	mux := http.NewServeMux()
	NewHandler(cmds, repo, origins).SetupRoutes(mux)
	return mux, repo
}

func serve(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

var testWindows = []window.Window{
	{ID: 10, AppName: "Dock", Bounds: window.Bounds{Width: 1920, Height: 70}},
	{ID: 11, AppName: "Safari", Title: "Apple", Bounds: window.Bounds{Width: 1200, Height: 800}},
	{ID: 12, AppName: "Notes", Title: "List", Bounds: window.Bounds{Width: 600, Height: 500}},
}

func TestPermissions(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{available: true}, false)

	rec := serve(mux, http.MethodGet, "/api/permissions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got["has_window_access"] {
		t.Errorf("body = %v", got)
	}
}

func TestWindowsAndFrontmost(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{available: true, windows: testWindows}, false)

	rec := serve(mux, http.MethodGet, "/api/windows", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/windows status = %d", rec.Code)
	}
	var windows []window.Window
	if err := json.NewDecoder(rec.Body).Decode(&windows); err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 || windows[0].ID != 11 {
		t.Errorf("windows = %+v", windows)
	}

	rec = serve(mux, http.MethodGet, "/api/windows/frontmost", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/windows/frontmost status = %d", rec.Code)
	}
	var front window.Window
	if err := json.NewDecoder(rec.Body).Decode(&front); err != nil {
		t.Fatal(err)
	}
	if front.AppName != "Safari" {
		t.Errorf("frontmost = %+v", front)
	}
}

func TestEmptyWindowListIsArray(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{available: true}, false)

	rec := serve(mux, http.MethodGet, "/api/windows", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}

	rec = serve(mux, http.MethodGet, "/api/windows/frontmost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("frontmost on empty list status = %d, want 404", rec.Code)
	}
}

func TestResizeEndpoints(t *testing.T) {
	b := &fakeBackend{available: true, windows: testWindows}
	mux, repo := newTestMux(t, b, true)

	rec := serve(mux, http.MethodPost, "/api/windows/frontmost/resize", `{"width":1280,"height":720,"center":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("frontmost resize status = %d: %s", rec.Code, rec.Body)
	}
	if len(b.applied) != 1 || b.applied[0].Window.ID != 11 || !b.applied[0].Center {
		t.Errorf("applied = %+v", b.applied)
	}

	rec = serve(mux, http.MethodPost, "/api/windows/resize", `{"window_id":12,"width":800,"height":600}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("specific resize status = %d: %s", rec.Code, rec.Body)
	}
	if len(b.applied) != 2 || b.applied[1].Window.AppName != "Notes" {
		t.Errorf("applied = %+v", b.applied)
	}

	rec = serve(mux, http.MethodPost, "/api/windows/resize", `{"window_id":99,"width":800,"height":600}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown window status = %d, want 404", rec.Code)
	}
	if len(b.applied) != 2 {
		t.Error("unknown window reached the backend")
	}

	latest, err := repo.GetLatest()
	if err != nil || latest == nil {
		t.Fatalf("GetLatest() = %v, %v", latest, err)
	}
	if latest.WindowID != 99 || latest.Success {
		t.Errorf("latest journal entry = %+v", latest)
	}

	rec = serve(mux, http.MethodGet, "/api/history/events?period=day", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("events status = %d: %s", rec.Code, rec.Body)
	}
	var events []models.ResizeEvent
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 || events[0].AppName != "Safari" || events[2].Success {
		t.Errorf("events = %+v", events)
	}

	rec = serve(mux, http.MethodGet, "/api/history/errors?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("errors status = %d: %s", rec.Code, rec.Body)
	}
	var logs []models.ErrorLog
	if err := json.NewDecoder(rec.Body).Decode(&logs); err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Operation != commands.OpResizeSpecific {
		t.Errorf("error logs = %+v", logs)
	}

	if rec := serve(mux, http.MethodGet, "/api/history/errors?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", rec.Code)
	}
	if rec := serve(mux, http.MethodGet, "/api/history/events?period=decade", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid events period status = %d, want 400", rec.Code)
	}
}

func TestResizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		path    string
		body    string
		want    int
	}{
		{"bad json", &fakeBackend{available: true}, "/api/windows/resize", `{"width":`, http.StatusBadRequest},
		{"unknown field", &fakeBackend{available: true}, "/api/windows/resize", `{"w":1}`, http.StatusBadRequest},
		{"unsupported", &fakeBackend{windows: testWindows}, "/api/windows/frontmost/resize", `{"width":800,"height":600}`, http.StatusNotImplemented},
		{
			"script failure",
			&fakeBackend{available: true, windows: testWindows, applyErr: &window.ScriptError{Stderr: "No windows found"}},
			"/api/windows/frontmost/resize", `{"width":800,"height":600}`, http.StatusBadGateway,
		},
		{
			"no eligible window",
			&fakeBackend{available: true, windows: []window.Window{{ID: 1, AppName: "Dock", Bounds: window.Bounds{Width: 100, Height: 100}}}},
			"/api/windows/frontmost/resize", `{"width":800,"height":600}`, http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newTestMux(t, tt.backend, false)
			rec := serve(mux, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("error body = %v, %v", body, err)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{available: true}, false)

	if rec := serve(mux, http.MethodPost, "/api/windows", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/windows status = %d", rec.Code)
	}
	if rec := serve(mux, http.MethodGet, "/api/windows/resize", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/windows/resize status = %d", rec.Code)
	}
	if rec := serve(mux, http.MethodOptions, "/api/windows/resize", ""); rec.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	mux, repo := newTestMux(t, &fakeBackend{available: true}, true)

	rec := serve(mux, http.MethodGet, "/api/history/latest", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("latest on empty journal status = %d, want 404", rec.Code)
	}

	if err := repo.Create(&models.ResizeEvent{AppName: "Safari", Success: true, DisplayServer: "fake"}); err != nil {
		t.Fatal(err)
	}

	rec = serve(mux, http.MethodGet, "/api/history?period=week", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d: %s", rec.Code, rec.Body)
	}
	var report models.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.TotalResizes != 1 || report.Period.Type != "week" {
		t.Errorf("report = %+v", report)
	}

	rec = serve(mux, http.MethodGet, "/api/history?period=decade", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid period status = %d, want 400", rec.Code)
	}

	rec = serve(mux, http.MethodGet, "/api/history/latest", "")
	if rec.Code != http.StatusOK {
		t.Errorf("latest status = %d", rec.Code)
	}
}

func TestHistoryWithoutJournal(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{available: true}, false)

	for _, path := range []string{"/api/history", "/api/history/events", "/api/history/errors"} {
		if rec := serve(mux, http.MethodGet, path, ""); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s without journal status = %d, want 503", path, rec.Code)
		}
	}
}

func serveFrom(mux *http.ServeMux, origin, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	} else if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCrossOriginRefusedByDefault(t *testing.T) {
	b := &fakeBackend{available: true, windows: testWindows}
	mux, _ := newTestMux(t, b, false)

	rec := serveFrom(mux, "https://evil.example", http.MethodOptions, "/api/windows/frontmost/resize", "")
	if rec.Code == http.StatusNoContent || rec.Code == http.StatusOK {
		t.Errorf("preflight status = %d, want refusal", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("preflight Access-Control-Allow-Origin = %q, want none", got)
	}

	rec = serveFrom(mux, "https://evil.example", http.MethodGet, "/api/windows", "")
	if rec.Code != http.StatusForbidden || strings.Contains(rec.Body.String(), "Safari") {
		t.Errorf("cross-origin window list = %d %s", rec.Code, rec.Body)
	}

	// a form-style POST skips the preflight
	req := httptest.NewRequest(http.MethodPost, "/api/windows/resize", strings.NewReader(`{"window_id":11,"width":800,"height":600}`))
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Content-Type", "text/plain")
	post := httptest.NewRecorder()
	mux.ServeHTTP(post, req)
	if post.Code != http.StatusForbidden {
		t.Errorf("cross-origin resize status = %d, want 403", post.Code)
	}
	if len(b.applied) != 0 {
		t.Errorf("cross-origin request resized %d windows", len(b.applied))
	}
}

func TestCrossOriginAllowList(t *testing.T) {
	b := &fakeBackend{available: true, windows: testWindows}
	mux, _ := newTestMux(t, b, false, "http://localhost:3000")

	rec := serveFrom(mux, "http://localhost:3000", http.MethodOptions, "/api/windows/resize", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	rec = serveFrom(mux, "http://localhost:3000", http.MethodPost, "/api/windows/resize", `{"window_id":11,"width":800,"height":600}`)
	if rec.Code != http.StatusOK || len(b.applied) != 1 {
		t.Errorf("allowed origin resize = %d, %d applied", rec.Code, len(b.applied))
	}

	if rec := serveFrom(mux, "http://localhost:4000", http.MethodGet, "/api/windows", ""); rec.Code != http.StatusForbidden {
		t.Errorf("unlisted origin status = %d, want 403", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	mux, _ := newTestMux(t, &fakeBackend{}, false)

	rec := serve(mux, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("health = %d %s", rec.Code, rec.Body)
	}
}

func TestNewServerAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Web.Host = "127.0.0.1"
	cfg.Web.Port = 9100

	cmds := commands.New(resizer.NewService(cfg, &fakeBackend{}), nil)
	if got := NewServer(cfg, cmds, nil, 0).GetAddress(); got != "127.0.0.1:9100" {
		t.Errorf("GetAddress() = %q", got)
	}
	if got := NewServer(cfg, cmds, nil, 9200).GetAddress(); got != "127.0.0.1:9200" {
		t.Errorf("GetAddress() with custom port = %q", got)
	}
}
