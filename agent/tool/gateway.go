package tool

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
)

const (
	defaultVisitorName  = "Name not provided"
	defaultVisitorNotes = "not provided"
)

var recordedOK = map[string]string{"recorded": "ok"}

// Gateway executes the two recording tools. Records are kept in memory for
// the life of the process and a push notification is fired for each one.
// Notification failures are logged, never returned to the model: the record
// itself always succeeds.
type Gateway struct {
	notifier contractx.Notifier

	mu        sync.RWMutex
	contacts  []contractx.ContactRequest
	questions []contractx.UnknownQuestion

	now func() time.Time
}

var (
	_ contractx.ToolGateway  = (*Gateway)(nil)
	_ contractx.RecordReader = (*Gateway)(nil)
)

func NewGateway(notifier contractx.Notifier) *Gateway {
	return &Gateway{
		notifier: notifier,
		now:      time.Now,
	}
}

func (g *Gateway) Execute(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		res := g.executeOne(ctx, req)
		res.CallID = req.CallID
		res.Tool = req.Tool
		results = append(results, res)
	}
	return results, nil
}

func (g *Gateway) executeOne(ctx context.Context, req contractx.ToolRequest) contractx.ToolResult {
	switch req.Tool {
	case ToolRecordUserDetails:
		return g.recordUserDetails(ctx, req.Args)
	case ToolRecordUnknownQuestion:
		return g.recordUnknownQuestion(ctx, req.Args)
	default:
		return contractx.ToolResult{
			Error: fmt.Sprintf("tool=%s is not available", req.Tool),
		}
	}
}

func (g *Gateway) recordUserDetails(ctx context.Context, args map[string]any) contractx.ToolResult {
	email := stringArg(args, "email", "")
	if email == "" {
		return contractx.ToolResult{Error: "email is required"}
	}

	contact := contractx.ContactRequest{
		Email:      email,
		Name:       stringArg(args, "name", defaultVisitorName),
		Notes:      stringArg(args, "notes", defaultVisitorNotes),
		RecordedAt: g.now().UTC(),
	}

	g.mu.Lock()
	g.contacts = append(g.contacts, contact)
	g.mu.Unlock()

	message := fmt.Sprintf("New contact request: %s (%s)", contact.Name, contact.Email)
	if contact.Notes != defaultVisitorNotes {
		message += fmt.Sprintf(" - Notes: %s", contact.Notes)
	}
	g.notify(ctx, "Contact Request", message)

	return contractx.ToolResult{Result: recordedOK}
}

func (g *Gateway) recordUnknownQuestion(ctx context.Context, args map[string]any) contractx.ToolResult {
	question := stringArg(args, "question", "")
	if question == "" {
		return contractx.ToolResult{Error: "question is required"}
	}

	g.mu.Lock()
	g.questions = append(g.questions, contractx.UnknownQuestion{
		Question:   question,
		RecordedAt: g.now().UTC(),
	})
	g.mu.Unlock()

	g.notify(ctx, "Unknown Question", fmt.Sprintf("Unknown question recorded: %s", question))

	return contractx.ToolResult{Result: recordedOK}
}

func (g *Gateway) notify(ctx context.Context, title, message string) {
	if g.notifier == nil {
		return
	}
	if err := g.notifier.Notify(ctx, title, message); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("push notification failed")
	}
}

// Contacts returns a copy of the ledger. Never nil, so handlers serialize an
// empty ledger as a JSON array.
func (g *Gateway) Contacts() []contractx.ContactRequest {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]contractx.ContactRequest, len(g.contacts))
	copy(out, g.contacts)
	return out
}

func (g *Gateway) UnknownQuestions() []contractx.UnknownQuestion {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]contractx.UnknownQuestion, len(g.questions))
	copy(out, g.questions)
	return out
}

func stringArg(args map[string]any, key, fallback string) string {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	s, ok := raw.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
