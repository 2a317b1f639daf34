package server

import "net/http"

// handleHealth is a local liveness check. With ?deep=1 it also verifies the
// model API is reachable with the configured credentials.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("deep") != "1" {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if s.oai == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "model client not configured",
		})
		return
	}

	if _, err := s.oai.Models.List(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
