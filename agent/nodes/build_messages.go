package conciergenode

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

// BuildMessages replays the transcript behind the system prompt and appends
// the incoming user message. Turn order is preserved verbatim.
func BuildMessages(in *GraphState, systemPrompt string) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	msgs := make([]*schema.Message, 0, in.Session.Len()+2)
	msgs = append(msgs, schema.SystemMessage(systemPrompt))

	for _, turn := range in.Session.Turns {
		switch turn.Role {
		case statex.RoleUser:
			msgs = append(msgs, schema.UserMessage(turn.Content))
		case statex.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Content, nil))
		default:
			return nil, fmt.Errorf("%w: transcript has role %q", contractx.ErrValidation, turn.Role)
		}
	}

	msgs = append(msgs, schema.UserMessage(in.In.Text))
	in.Messages = msgs
	return in, nil
}
