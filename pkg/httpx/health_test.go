package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/autospares/pkg/httpx"
)

// stubChecker stands in for the Postgres pool, the Redis client, and the
// watermill event bus, which all expose Ping(ctx).
type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func requestHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	healthy := func() httpx.HealthChecks {
		return httpx.HealthChecks{
			Database: &stubChecker{},
			Redis:    &stubChecker{},
			EventBus: &stubChecker{},
		}
	}

	t.Run("all dependencies reachable", func(t *testing.T) {
		code, resp := requestHealth(t, healthy())
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if resp["status"] != "ok" {
			t.Errorf("status field = %q, want %q", resp["status"], "ok")
		}
	})

	t.Run("postgres down degrades", func(t *testing.T) {
		checks := healthy()
		checks.Database = &stubChecker{err: errors.New("conn refused")}
		code, resp := requestHealth(t, checks)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", code)
		}
		if resp["status"] != "degraded" || resp["database"] != "unreachable" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("redis down degrades", func(t *testing.T) {
		checks := healthy()
		checks.Redis = &stubChecker{err: errors.New("timeout")}
		code, resp := requestHealth(t, checks)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", code)
		}
		if resp["redis"] != "unreachable" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("event bus down degrades", func(t *testing.T) {
		checks := healthy()
		checks.EventBus = &stubChecker{err: errors.New("timeout")}
		code, resp := requestHealth(t, checks)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", code)
		}
		if resp["event_bus"] != "unreachable" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("every dependency down reports each one", func(t *testing.T) {
		checks := httpx.HealthChecks{
			Database: &stubChecker{err: errors.New("down")},
			Redis:    &stubChecker{err: errors.New("down")},
			EventBus: &stubChecker{err: errors.New("down")},
		}
		code, resp := requestHealth(t, checks)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", code)
		}
		for _, dep := range []string{"database", "redis", "event_bus"} {
			if resp[dep] != "unreachable" {
				t.Errorf("%s = %q, want unreachable", dep, resp[dep])
			}
		}
	})

	t.Run("responds with JSON content type", func(t *testing.T) {
		rr := httptest.NewRecorder()
		httpx.HealthHandler(healthy()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
			t.Errorf("Content-Type = %q, want application/json; charset=utf-8", ct)
		}
	})
}
