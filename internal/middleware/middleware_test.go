package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tracklist/internal/logging"
)

func TestRequestLoggingAssignsRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/playlist", nil))

	if seen == "" {
		t.Fatalf("expected request id on context")
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("response header %q does not match context id %q", rec.Header().Get(RequestIDHeader), seen)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status not propagated: %d", rec.Code)
	}
}

func TestRequestLoggingKeepsIncomingID(t *testing.T) {
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "upstream-id" {
		t.Fatalf("expected upstream id to be echoed, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked to client: %s", rec.Body.String())
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/playlist", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/playlist", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for foreign origin: %q", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.HandleFunc("/api/playlist/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/playlist/abc", nil))
	}

	got := testutil.ToFloat64(metrics.requests.WithLabelValues("/api/playlist/{id}", http.MethodGet, "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
	if testutil.ToFloat64(metrics.inFlight) != 0 {
		t.Fatalf("in-flight gauge not released")
	}
}
