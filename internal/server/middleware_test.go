// ABOUTME: Tests for the server middleware chain
// ABOUTME: Covers request ids, rate limiting scope, recovery, and static serving
package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/efan/sitechat/internal/log"
)

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t, serverOptions{})

	t.Run("assigned when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get(requestIDHeader) == "" {
			t.Error("response must carry a request id")
		}
	})

	t.Run("client id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "client-id-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got != "client-id-1" {
			t.Errorf("request id = %q, want client-id-1", got)
		}
	})
}

func TestRateLimit(t *testing.T) {
	handler := newTestHandler(t, serverOptions{rateRPS: 0.001, rateBurst: 1})

	// First POST consumes the single burst token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question": "q"}`)))
	if rec.Code == http.StatusTooManyRequests {
		t.Fatal("first request must not be limited")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question": "q"}`)))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 once the burst is spent", rec.Code)
	}

	// GET requests and non-API paths stay unthrottled
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200 despite exhausted limiter", rec.Code)
	}
}

func TestRateLimitMiddleware_OnlyPostAPI(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	limiter.Allow() // drain the burst

	var reached bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true })
	handler := rateLimitMiddleware(limiter)(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/proxy", nil))
	if reached || rec.Code != http.StatusTooManyRequests {
		t.Errorf("POST /api must be limited: reached=%v status=%d", reached, rec.Code)
	}

	reached = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio/1", nil))
	if !reached {
		t.Error("GET /api must not be limited")
	}

	reached = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/other", nil))
	if !reached {
		t.Error("non-API paths must not be limited")
	}
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := chain(panicking, recoveryMiddleware(log.NewNop()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORS_SkipsNonAPIPaths(t *testing.T) {
	handler := newTestHandler(t, serverOptions{})

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("static responses must not carry CORS headers")
	}
}

func TestStaticSiteServed(t *testing.T) {
	handler := newTestHandler(t, serverOptions{})

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "home") {
		t.Errorf("body = %q, want fixture page", rec.Body.String())
	}
}
