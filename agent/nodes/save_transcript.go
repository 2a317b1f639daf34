package conciergenode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

// SaveTranscript appends the finished user/assistant exchange and persists
// the session. Tool-call intermediates are deliberately not recorded: the
// transcript only carries what the widget shows.
func SaveTranscript(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if err := in.Session.Append(statex.RoleUser, in.In.Text, in.Now); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}
	if err := in.Session.Append(statex.RoleAssistant, in.Reply, in.Now); err != nil {
		return nil, fmt.Errorf("append assistant turn: %w", err)
	}

	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("transcript validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return in, nil
}
