package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	message := r.URL.Query().Get("message")
	if message == "" {
		respondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	setupSSEHeaders(w)

	reply, err := s.svc.HandleMessageStream(r.Context(), sessionID, message, func(chunk string) error {
		sendSSEEvent(w, flusher, "chunk", map[string]string{"delta": chunk})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("stream turn failed")
		sendSSEEvent(w, flusher, "error", map[string]string{"error": "the concierge could not answer, please try again"})
		return
	}

	sendSSEEvent(w, flusher, "done", map[string]string{
		"sessionId": sessionID,
		"reply":     reply,
	})
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal sse event data")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}
