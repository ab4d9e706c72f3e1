// v2
// internal/http/router.go
package httpserver

import (
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"

	"pewpewworld/statsboard/internal/metrics"
)

// NewRouter wires every route exposed by the stats board service: the /v1
// status endpoints, orchestration probes, the stateless tool endpoints and
// the Prometheus scrape target.
func NewRouter(logger *slog.Logger, health *HealthState, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/v1/", statusHandler(logger)).Methods(http.MethodGet)
	r.Handle("/v1/health", healthyHandler(logger)).Methods(http.MethodGet)
	r.Handle("/health", healthLiveHandler()).Methods(http.MethodGet)
	r.Handle("/health/live", healthLiveHandler()).Methods(http.MethodGet)
	r.Handle("/health/ready", healthReadyHandler(health)).Methods(http.MethodGet)

	r.Handle("/v1/tools/colors", colorsHandler(logger, m)).Methods(http.MethodGet)
	r.Handle("/v1/tools/time", timeHandler(logger, m)).Methods(http.MethodGet)
	r.Handle("/v1/tools/points", pointsHandler(logger, m)).Methods(http.MethodGet)

	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = plainText(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", http.MethodGet)
		plainText(http.StatusMethodNotAllowed, "method not allowed").ServeHTTP(w, req)
	})
	return r
}

func statusHandler(logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(logger, w, http.StatusOK, map[string]string{"message": "API v1 is running"})
	})
}

func healthyHandler(logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(logger, w, http.StatusOK, map[string]string{"status": "healthy"})
	})
}

func healthLiveHandler() http.Handler {
	return plainText(http.StatusOK, "OK")
}

func healthReadyHandler(health *HealthState) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !health.Ready() {
			plainText(http.StatusServiceUnavailable, "NOT_READY").ServeHTTP(w, r)
			return
		}
		plainText(http.StatusOK, "OK").ServeHTTP(w, r)
	})
}

func plainText(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}
