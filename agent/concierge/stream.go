package concierge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	conciergenode "github.com/tanpawarit/profile-concierge/agent/nodes"
)

// HandleMessageStream runs the same turn as HandleMessage but streams reply
// deltas through emit as they arrive from the model. Tool-call rounds carry
// no content deltas, so only the final answer reaches the client. Returns the
// complete reply after the transcript is saved.
func (s *Service) HandleMessageStream(
	ctx context.Context,
	sessionID string,
	text string,
	emit func(chunk string) error,
) (string, error) {
	st, err := conciergenode.ValidateRequest(conciergenode.GraphInput{
		SessionID: sessionID,
		Text:      text,
	}, s.now)
	if err != nil {
		return "", err
	}
	if st, err = conciergenode.LoadOrCreateSession(ctx, st, s.store); err != nil {
		return "", err
	}
	if st, err = conciergenode.BuildMessages(st, s.systemPrompt); err != nil {
		return "", err
	}

	msgs := st.Messages
	for round := 0; round <= s.maxToolRounds; round++ {
		out, err := s.streamOneRound(ctx, msgs, emit)
		if err != nil {
			return "", err
		}

		if len(out.ToolCalls) == 0 {
			reply := strings.TrimSpace(out.Content)
			if reply == "" {
				return "", fmt.Errorf("%w: model returned empty reply", contractx.ErrSchemaViolation)
			}
			st.Reply = reply
			if _, err := conciergenode.SaveTranscript(ctx, st, s.store); err != nil {
				return "", err
			}
			return reply, nil
		}

		toolMsgs, err := conciergenode.RunToolCalls(ctx, s.tools, out.ToolCalls)
		if err != nil {
			return "", err
		}
		msgs = append(msgs, out)
		msgs = append(msgs, toolMsgs...)
	}

	return "", fmt.Errorf("%w: tool rounds exhausted after %d", contractx.ErrModelInvoke, s.maxToolRounds)
}

func (s *Service) streamOneRound(
	ctx context.Context,
	msgs []*schema.Message,
	emit func(chunk string) error,
) (*schema.Message, error) {
	reader, err := s.model.Stream(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("%w: stream: %v", contractx.ErrModelInvoke, err)
	}
	defer reader.Close()

	chunks := make([]*schema.Message, 0, 16)
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: stream recv: %v", contractx.ErrModelInvoke, err)
		}
		chunks = append(chunks, chunk)

		if emit != nil && chunk.Content != "" {
			if err := emit(chunk.Content); err != nil {
				return nil, fmt.Errorf("emit stream chunk: %w", err)
			}
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: empty model stream", contractx.ErrSchemaViolation)
	}

	out, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: concat stream chunks: %v", contractx.ErrSchemaViolation, err)
	}
	return out, nil
}
