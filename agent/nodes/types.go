package conciergenode

import (
	"errors"
	"time"

	"github.com/cloudwego/eino/schema"

	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

// GraphInput is one user turn entering the pipeline.
type GraphInput struct {
	SessionID string
	Text      string
}

// GraphOutput is the finished reply.
type GraphOutput struct {
	SessionID string
	Reply     string
}

// GraphState flows through the conversation graph nodes.
type GraphState struct {
	In       GraphInput
	Now      time.Time
	Session  *statex.Transcript
	Messages []*schema.Message
	Reply    string
}
