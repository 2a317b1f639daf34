package concierge

import (
	"context"
	"errors"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	conciergenode "github.com/tanpawarit/profile-concierge/agent/nodes"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
	toolx "github.com/tanpawarit/profile-concierge/agent/tool"
)

const defaultMaxToolRounds = 5

type Config struct {
	// MaxToolRounds bounds the generate/execute loop for one turn.
	MaxToolRounds int
}

// Service answers one widget message at a time: it replays the session
// transcript behind the profile-grounded system prompt, lets the model call
// the two recording tools, and persists the finished exchange.
type Service struct {
	store        statex.Store
	model        einomodel.ToolCallingChatModel
	tools        contractx.ToolGateway
	systemPrompt string

	graphRunner compose.Runnable[conciergenode.GraphInput, conciergenode.GraphOutput]

	maxToolRounds int
	now           func() time.Time
}

func New(
	store statex.Store,
	chatModel einomodel.ToolCallingChatModel,
	tools contractx.ToolGateway,
	systemPrompt string,
	cfg Config,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if systemPrompt == "" {
		return nil, errors.New("system prompt is required")
	}

	boundModel, err := chatModel.WithTools(toolx.Infos())
	if err != nil {
		return nil, err
	}

	maxToolRounds := cfg.MaxToolRounds
	if maxToolRounds <= 0 {
		maxToolRounds = defaultMaxToolRounds
	}

	s := &Service{
		store:         store,
		model:         boundModel,
		tools:         tools,
		systemPrompt:  systemPrompt,
		maxToolRounds: maxToolRounds,
		now:           time.Now,
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// HandleMessage runs one full request/response turn and returns the reply.
func (s *Service) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := s.graphRunner.Invoke(ctx, conciergenode.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
