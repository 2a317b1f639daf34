package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	openaisdk "github.com/openai/openai-go"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
	"github.com/tanpawarit/profile-concierge/web"
)

// Concierge is the conversation surface the handlers depend on.
type Concierge interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (string, error)
	HandleMessageStream(ctx context.Context, sessionID string, text string, emit func(chunk string) error) (string, error)
}

// Meta describes the widget page shown at /.
type Meta struct {
	Title       string
	Description string
}

type Server struct {
	svc     Concierge
	store   statex.Store
	records contractx.RecordReader
	oai     *openaisdk.Client
	meta    Meta
}

func New(
	svc Concierge,
	store statex.Store,
	records contractx.RecordReader,
	oai *openaisdk.Client,
	meta Meta,
) *Server {
	return &Server{
		svc:     svc,
		store:   store,
		records: records,
		oai:     oai,
		meta:    meta,
	}
}

// Router wires HTTP routes to the concierge service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(api chi.Router) {
		api.Post("/session", s.handleCreateSession)
		api.Post("/chat", s.handleChat)
		api.Get("/stream/{sessionID}", s.handleStream)
		api.Get("/records", s.handleRecords)
		api.Get("/health", s.handleHealth)
		api.Get("/meta", s.handleMeta)
	})

	r.Handle("/*", web.Handler())

	return r
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"title":       s.meta.Title,
		"description": s.meta.Description,
		"examples": []string{
			"Tell me about your background",
			"What are your skills?",
			"How can I contact you?",
			"What projects have you worked on?",
		},
	})
}
