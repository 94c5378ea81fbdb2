package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/db/memory"
	"github.com/AI2HU/gdc/internal/services"
	"github.com/AI2HU/gdc/internal/views"
)

type downStore struct{}

func (downStore) Ping(ctx context.Context) error { return errors.New("connection refused") }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, store Pinger, opts Options) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := catalog.Default()
	counter := views.NewCounter(memory.New(), "test")
	s := NewServer(store,
		services.NewDashboardService(analytics.New(c, analytics.Period{})),
		services.NewEpisodeService(c, counter),
		opts,
	)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	rec, env := do(t, newTestServer(t, memory.New(), Options{}), http.MethodGet, "/api/v1/health")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected healthy, got %d %+v", rec.Code, env)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}

	rec, env = do(t, newTestServer(t, downStore{}, Options{}), http.MethodGet, "/api/v1/health")
	if rec.Code != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("expected 503 for a down store, got %d", rec.Code)
	}
}

func TestEpisodeRoutes(t *testing.T) {
	s := newTestServer(t, memory.New(), Options{})

	tests := []struct {
		path   string
		status int
	}{
		{"/api/v1/episodes", http.StatusOK},
		{"/api/v1/episodes?state=coming_soon", http.StatusOK},
		{"/api/v1/episodes?state=someday", http.StatusBadRequest},
		{"/api/v1/episodes/featured", http.StatusOK},
		{"/api/v1/episodes/3", http.StatusOK},
		{"/api/v1/episodes/99", http.StatusNotFound},
		{"/api/v1/episodes/abc", http.StatusBadRequest},
		{"/api/v1/episodes/3/next", http.StatusOK},
		{"/api/v1/episodes/1/previous", http.StatusNotFound},
		{"/api/v1/episodes/3/views", http.StatusOK},
		{"/api/v1/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec, env := do(t, s, http.MethodGet, tt.path)
		if rec.Code != tt.status {
			t.Fatalf("GET %s: expected %d, got %d (%s)", tt.path, tt.status, rec.Code, env.Error)
		}
		if env.Success != (tt.status == http.StatusOK) {
			t.Fatalf("GET %s: unexpected success flag %v", tt.path, env.Success)
		}
	}
}

func TestRecordView(t *testing.T) {
	s := newTestServer(t, memory.New(), Options{})

	var last struct {
		Recorded  bool `json:"recorded"`
		Increment int  `json:"increment"`
		Total     int  `json:"total"`
	}
	for i := 0; i < 2; i++ {
		rec, env := do(t, s, http.MethodPost, "/api/v1/episodes/5/views")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, env.Error)
		}
		if err := json.Unmarshal(env.Data, &last); err != nil {
			t.Fatalf("invalid data: %v", err)
		}
	}
	if !last.Recorded || last.Increment != 2 || last.Total != views.BaseViews(5)+2 {
		t.Fatalf("unexpected counter after two views: %+v", last)
	}

	_, env := do(t, s, http.MethodGet, "/api/v1/episodes/5/views")
	var snap struct {
		Base      int `json:"base"`
		Increment int `json:"increment"`
	}
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if snap.Base != views.BaseViews(5) || snap.Increment != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	if rec, _ := do(t, s, http.MethodPost, "/api/v1/episodes/12/views"); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a coming soon episode, got %d", rec.Code)
	}
}

func TestRecordViewRateLimited(t *testing.T) {
	s := newTestServer(t, memory.New(), Options{RateLimit: 0.001, RateBurst: 2})

	for i := 0; i < 2; i++ {
		if rec, _ := do(t, s, http.MethodPost, "/api/v1/episodes/1/views"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec, env := do(t, s, http.MethodPost, "/api/v1/episodes/1/views")
	if rec.Code != http.StatusTooManyRequests || env.Success {
		t.Fatalf("expected 429 once the burst is spent, got %d", rec.Code)
	}

	// reads are not limited
	if rec, _ := do(t, s, http.MethodGet, "/api/v1/episodes/1/views"); rec.Code != http.StatusOK {
		t.Fatalf("expected reads to pass, got %d", rec.Code)
	}
}

func TestAnalyticsRoutes(t *testing.T) {
	s := newTestServer(t, nil, Options{})

	_, env := do(t, s, http.MethodGet, "/api/v1/analytics/daily")
	var daily []map[string]interface{}
	if err := json.Unmarshal(env.Data, &daily); err != nil || len(daily) != 31 {
		t.Fatalf("expected 31 daily records, got %d (%v)", len(daily), err)
	}

	_, env = do(t, s, http.MethodGet, "/api/v1/analytics/states?limit=5")
	var states []map[string]interface{}
	if err := json.Unmarshal(env.Data, &states); err != nil || len(states) != 5 {
		t.Fatalf("expected 5 states, got %d (%v)", len(states), err)
	}

	if rec, _ := do(t, s, http.MethodGet, "/api/v1/analytics/traffic?limit=0"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit=0, got %d", rec.Code)
	}

	for _, path := range []string{"/api/v1/analytics/episodes", "/api/v1/analytics/overview", "/api/v1/analytics/dashboard"} {
		if rec, env := do(t, s, http.MethodGet, path); rec.Code != http.StatusOK || !env.Success {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, Options{CORSOrigin: "https://gamerdidik.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/episodes", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://gamerdidik.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
