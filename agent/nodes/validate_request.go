package conciergenode

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
)

// maxMessageRunes caps a single user message; everything above it is almost
// certainly a paste accident or abuse.
const maxMessageRunes = 4000

func ValidateRequest(in GraphInput, now func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, ErrInvalidSession)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, ErrInvalidMessage)
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return nil, fmt.Errorf("%w: message exceeds %d characters", contractx.ErrValidation, maxMessageRunes)
	}

	return &GraphState{
		In: GraphInput{
			SessionID: sessionID,
			Text:      text,
		},
		Now: now().UTC(),
	}, nil
}
