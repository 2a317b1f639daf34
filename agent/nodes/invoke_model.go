package conciergenode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
)

// InvokeModel drives the chat-completion loop: generate, execute any
// requested tool calls, feed the results back, repeat until the model
// answers in plain text or the round budget runs out.
func InvokeModel(
	ctx context.Context,
	in *GraphState,
	chatModel einomodel.ToolCallingChatModel,
	tools contractx.ToolGateway,
	maxToolRounds int,
) (*GraphState, error) {
	if in == nil || len(in.Messages) == 0 {
		return nil, fmt.Errorf("%w: graph messages are empty", contractx.ErrValidation)
	}
	if maxToolRounds < 1 {
		maxToolRounds = 1
	}

	msgs := in.Messages
	for round := 0; round <= maxToolRounds; round++ {
		out, err := chatModel.Generate(ctx, msgs)
		if err != nil {
			return nil, fmt.Errorf("%w: generate: %v", contractx.ErrModelInvoke, err)
		}
		if out == nil {
			return nil, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		if len(out.ToolCalls) == 0 {
			reply := strings.TrimSpace(out.Content)
			if reply == "" {
				return nil, fmt.Errorf("%w: model returned empty reply", contractx.ErrSchemaViolation)
			}
			in.Reply = reply
			in.Messages = msgs
			return in, nil
		}

		toolMsgs, err := RunToolCalls(ctx, tools, out.ToolCalls)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, out)
		msgs = append(msgs, toolMsgs...)
	}

	return nil, fmt.Errorf("%w: tool rounds exhausted after %d", contractx.ErrModelInvoke, maxToolRounds)
}

// RunToolCalls maps model tool calls to gateway requests and serializes each
// result as one tool message. Malformed arguments become tool-level errors so
// the model can recover instead of failing the turn.
func RunToolCalls(
	ctx context.Context,
	tools contractx.ToolGateway,
	calls []schema.ToolCall,
) ([]*schema.Message, error) {
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				log.Warn().Str("tool", name).Err(err).Msg("tool arguments are not valid json")
				args = map[string]any{}
			}
		}

		log.Info().Str("tool", name).Msg("tool called")
		reqs = append(reqs, contractx.ToolRequest{
			CallID: call.ID,
			Tool:   name,
			Args:   args,
		})
	}

	results, err := tools.Execute(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("%w: execute tools: %v", contractx.ErrModelInvoke, err)
	}
	if len(results) != len(reqs) {
		return nil, fmt.Errorf("%w: got %d tool results for %d requests", contractx.ErrSchemaViolation, len(results), len(reqs))
	}

	msgs := make([]*schema.Message, 0, len(results))
	for _, res := range results {
		msgs = append(msgs, schema.ToolMessage(marshalToolResult(res), res.CallID))
	}
	return msgs, nil
}

func marshalToolResult(res contractx.ToolResult) string {
	var payload any = res.Result
	if res.Error != "" {
		payload = map[string]string{"error": res.Error}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return `{"error":"unencodable tool result"}`
	}
	return string(raw)
}
