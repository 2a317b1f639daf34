package conciergenode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: concierge produced empty reply", contractx.ErrValidation)
	}
	return GraphOutput{
		SessionID: in.In.SessionID,
		Reply:     reply,
	}, nil
}
