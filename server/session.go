package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	transcript := statex.NewTranscript(sessionID, time.Now())

	if err := s.store.Save(r.Context(), transcript); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"sessionId": sessionID,
		"createdAt": transcript.CreatedAt,
	})
}
