package server

import "net/http"

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"contacts":          s.records.Contacts(),
		"unknown_questions": s.records.UnknownQuestions(),
	})
}
