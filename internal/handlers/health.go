package handlers

import (
	"context"
	"net/http"
)

// pinger validates connectivity to the store
type pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports process and store health
func (h *Handler) Health(p pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.PingContext(r.Context()); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
