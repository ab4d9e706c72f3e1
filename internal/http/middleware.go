// v2
// internal/http/middleware.go
package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"pewpewworld/statsboard/internal/metrics"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Wrap applies the full middleware chain around router: panic recovery,
// CORS for the browser dashboard, then access logging with request ids and
// per-route metrics.
func Wrap(logger *slog.Logger, m *metrics.Metrics, allowedOrigins []string, router *mux.Router) http.Handler {
	logged := WrapWithLogging(logger, m, router)
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)(logged)
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)(cors)
}

// WrapWithLogging records structured access logs with latency, method,
// path, route template, status and request id. An incoming X-Request-ID is
// reused; otherwise a fresh uuid is issued and echoed in the response.
func WrapWithLogging(logger *slog.Logger, m *metrics.Metrics, router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		route := routeTemplate(router, r)
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		router.ServeHTTP(rw, r)
		duration := time.Since(start)

		logger.Info("http_request",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("route", route),
			slog.Int("status", rw.status),
			slog.String("duration", duration.String()),
		)
		m.ObserveRequest(route, rw.status, duration)
	})
}

// routeTemplate resolves the matched path template so metric labels stay
// bounded. Unmatched requests yield an empty string.
func routeTemplate(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	if !router.Match(r, &match) || match.Route == nil {
		return ""
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return ""
	}
	return tpl
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader stores the status code so the middleware can log it.
func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("http_handler_panic", slog.String("err", strings.TrimSpace(fmt.Sprintln(v...))))
}
