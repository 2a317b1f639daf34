package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the in-memory conversation state for one widget session.
// Turn order is append-only and preserved; the whole history is replayed to
// the model on every request.
type Transcript struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidTurn    = errors.New("invalid transcript turn")
)

func NewTranscript(sessionID string, now time.Time) *Transcript {
	return &Transcript{
		SessionID: sessionID,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (t *Transcript) Touch(now time.Time) {
	t.UpdatedAt = now.UTC()
}

// Append adds a turn at the end of the transcript.
func (t *Transcript) Append(role Role, content string, now time.Time) error {
	if t == nil {
		return errors.New("nil transcript")
	}
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: unsupported role %q", ErrInvalidTurn, role)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidTurn)
	}
	t.Turns = append(t.Turns, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: now.UTC(),
	})
	t.Touch(now)
	return nil
}

func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Turns)
}

func (t *Transcript) Validate() error {
	if t == nil {
		return errors.New("nil transcript")
	}
	if strings.TrimSpace(t.SessionID) == "" {
		return ErrInvalidSession
	}
	for i, turn := range t.Turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return fmt.Errorf("%w: turn %d has role %q", ErrInvalidTurn, i, turn.Role)
		}
	}
	return nil
}

// Clone returns a deep copy so store callers never share turn slices.
func (t *Transcript) Clone() *Transcript {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Turns != nil {
		cp.Turns = append([]Turn(nil), t.Turns...)
	}
	return &cp
}
