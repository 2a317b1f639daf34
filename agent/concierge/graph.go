package concierge

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	conciergenode "github.com/tanpawarit/profile-concierge/agent/nodes"
)

func (s *Service) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[conciergenode.GraphInput, conciergenode.GraphOutput], error) {
	graph := compose.NewGraph[conciergenode.GraphInput, conciergenode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in conciergenode.GraphInput) (*conciergenode.GraphState, error) {
			return conciergenode.ValidateRequest(in, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_session",
		compose.InvokableLambda(func(ctx context.Context, in *conciergenode.GraphState) (*conciergenode.GraphState, error) {
			return conciergenode.LoadOrCreateSession(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_session: %w", err)
	}

	if err := graph.AddLambdaNode("build_messages",
		compose.InvokableLambda(func(ctx context.Context, in *conciergenode.GraphState) (*conciergenode.GraphState, error) {
			return conciergenode.BuildMessages(in, s.systemPrompt)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_messages: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, in *conciergenode.GraphState) (*conciergenode.GraphState, error) {
			return conciergenode.InvokeModel(ctx, in, s.model, s.tools, s.maxToolRounds)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("save_transcript",
		compose.InvokableLambda(func(ctx context.Context, in *conciergenode.GraphState) (*conciergenode.GraphState, error) {
			return conciergenode.SaveTranscript(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_transcript: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *conciergenode.GraphState) (conciergenode.GraphOutput, error) {
			return conciergenode.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_session"},
		{"load_or_create_session", "build_messages"},
		{"build_messages", "invoke_model"},
		{"invoke_model", "save_transcript"},
		{"save_transcript", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("concierge.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile concierge graph: %w", err)
	}
	return runner, nil
}
