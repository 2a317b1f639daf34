package conciergenode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

func LoadOrCreateSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	session, err := store.Load(ctx, in.In.SessionID)
	switch {
	case err == nil:
		in.Session = session
	case errors.Is(err, statex.ErrStateNotFound):
		in.Session = statex.NewTranscript(in.In.SessionID, in.Now)
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}

	return in, nil
}
