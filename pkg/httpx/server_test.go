package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/autospares/pkg/httpx"
)

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter() http.Handler {
	r := httpx.NewRouter(httpx.ServerConfig{
		ServiceName:        "autospares-api",
		IsDevelopment:      true,
		CORSAllowedOrigins: "http://localhost:3000",
	}, passthrough, passthrough, passthrough, passthrough)
	r.Get("/api/spare-parts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// TestNewRouter exercises the assembled middleware stack the API binary runs
// behind, not the pieces in isolation.
func TestNewRouter(t *testing.T) {
	h := newTestRouter()

	t.Run("sets security headers on responses", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/spare-parts", http.NoBody))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		checks := map[string]string{
			"X-Content-Type-Options":  "nosniff",
			"X-Frame-Options":         "DENY",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Content-Security-Policy": "default-src 'self'",
		}
		for header, want := range checks {
			if got := rr.Header().Get(header); got != want {
				t.Errorf("%s = %q, want %q", header, got, want)
			}
		}
	})

	t.Run("advertises the per-IP rate limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/spare-parts", http.NoBody))
		if rr.Header().Get("X-RateLimit-Limit") == "" {
			t.Error("expected an X-RateLimit-Limit header")
		}
	})

	t.Run("answers CORS preflight for an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/spare-parts", http.NoBody)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want the allowed origin", got)
		}
	})
}

func TestRequestBodyLimit(t *testing.T) {
	t.Run("cart body under the cap passes through", func(t *testing.T) {
		const limit = 100

		var gotBody []byte
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, limit+1)
			n, _ := r.Body.Read(buf)
			gotBody = buf[:n]
			w.WriteHeader(http.StatusOK)
		})

		h := httpx.RequestBodyLimit(limit)(inner)
		body := strings.NewReader(`{"items":[{"part":"a","qty":1}]}`)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sales", body))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if len(gotBody) == 0 {
			t.Fatal("expected the body to reach the handler")
		}
	})

	t.Run("oversized body errors on read", func(t *testing.T) {
		const limit int64 = 10

		var readErr error
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, limit+5)
			_, readErr = r.Body.Read(buf)
			if readErr != nil {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		h := httpx.RequestBodyLimit(limit)(inner)
		body := strings.NewReader(strings.Repeat("x", int(limit)+1))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sales", body))

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want 413", rr.Code)
		}
	})
}
