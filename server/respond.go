package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps service errors to HTTP statuses. Upstream model
// failures are a bad gateway from the widget's point of view.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contractx.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, statex.ErrStateNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, contractx.ErrModelInvoke), errors.Is(err, contractx.ErrSchemaViolation):
		log.Error().Err(err).Msg("model turn failed")
		respondError(w, http.StatusBadGateway, "the concierge could not answer, please try again")
	default:
		log.Error().Err(err).Msg("unexpected handler error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
