package routers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

func denyAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func assertRoutes(t *testing.T, r *chi.Mux, routes ...string) {
	t.Helper()
	expected := map[string]struct{}{}
	for _, route := range routes {
		expected[route] = struct{}{}
	}

	if err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		delete(expected, method+" "+route)
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	if len(expected) != 0 {
		t.Fatalf("missing routes: %v", expected)
	}
}
