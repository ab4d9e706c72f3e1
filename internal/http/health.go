// v1
// internal/http/health.go
package httpserver

import "sync/atomic"

// HealthState tracks readiness for the HTTP API. Liveness is implied while
// the process runs; readiness flips on once the listener starts and off
// again when shutdown begins.
type HealthState struct {
	ready atomic.Bool
}

// NewHealthState starts not ready.
func NewHealthState() *HealthState {
	return &HealthState{}
}

func (h *HealthState) SetReady(value bool) {
	h.ready.Store(value)
}

func (h *HealthState) Ready() bool {
	return h.ready.Load()
}
