package handlers

import (
	"net/http"
)

func (h *Handlers) GetSchema(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.Registry.Snapshot(), http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(); err != nil {
			h.Log.WithError(err).Warn("health check failed")
			WriteSuccess(w, map[string]string{"status": "unavailable", "database": "down"}, http.StatusServiceUnavailable)
			return
		}
	}

	WriteSuccess(w, map[string]string{"status": "ok", "database": "up"}, http.StatusOK)
}
