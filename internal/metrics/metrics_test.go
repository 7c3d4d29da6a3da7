package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/groups/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/groups/{id}", "418"))

	req := httptest.NewRequest(http.MethodGet, "/groups/7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/groups/{id}", "418"))
	if after != before+1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestWorkflowCounters(t *testing.T) {
	before := testutil.ToFloat64(groupRequests.WithLabelValues("accepted"))
	GroupRequest("accepted")
	if got := testutil.ToFloat64(groupRequests.WithLabelValues("accepted")); got != before+1 {
		t.Fatalf("expected accepted counter %v, got %v", before+1, got)
	}

	beforeSwept := testutil.ToFloat64(sweptTokens)
	TokensSwept(0)
	TokensSwept(3)
	if got := testutil.ToFloat64(sweptTokens); got != beforeSwept+3 {
		t.Fatalf("expected swept counter %v, got %v", beforeSwept+3, got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	PasswordReset("requested")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "roleplay_password_resets_total") {
		t.Fatalf("metrics output missing password reset counter")
	}
}
