package conciergenode

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/profile-concierge/agent/contract"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

type fakeChatModel struct {
	responses []*schema.Message
	err       error
	calls     [][]*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls = append(f.calls, msgs)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := f.Generate(ctx, msgs, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

type fakeGateway struct {
	requests []contractx.ToolRequest
	results  []contractx.ToolResult
	err      error
}

func (f *fakeGateway) Execute(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	f.requests = append(f.requests, reqs...)
	if f.err != nil {
		return nil, f.err
	}
	if f.results != nil {
		return f.results, nil
	}
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, contractx.ToolResult{
			CallID: req.CallID,
			Tool:   req.Tool,
			Result: map[string]string{"recorded": "ok"},
		})
	}
	return results, nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	state, err := ValidateRequest(GraphInput{SessionID: " s1 ", Text: "  hello  "}, fixedNow)
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if state.In.SessionID != "s1" || state.In.Text != "hello" {
		t.Fatalf("input not trimmed: %+v", state.In)
	}
	if !state.Now.Equal(fixedNow()) {
		t.Fatalf("unexpected Now: %v", state.Now)
	}

	if _, err := ValidateRequest(GraphInput{Text: "hello"}, fixedNow); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing session error = %v, want ErrValidation", err)
	}
	if _, err := ValidateRequest(GraphInput{SessionID: "s1", Text: "   "}, fixedNow); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty message error = %v, want ErrValidation", err)
	}
	if _, err := ValidateRequest(GraphInput{SessionID: "s1", Text: strings.Repeat("a", maxMessageRunes+1)}, fixedNow); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("oversized message error = %v, want ErrValidation", err)
	}
}

func TestLoadOrCreateSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewMemoryStore()

	existing := statex.NewTranscript("s1", fixedNow())
	if err := existing.Append(statex.RoleUser, "earlier question", fixedNow()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Save(ctx, existing); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	state := &GraphState{In: GraphInput{SessionID: "s1"}, Now: fixedNow()}
	state, err := LoadOrCreateSession(ctx, state, store)
	if err != nil {
		t.Fatalf("LoadOrCreateSession() error = %v", err)
	}
	if state.Session.Len() != 1 {
		t.Fatalf("expected existing transcript, got %d turns", state.Session.Len())
	}

	state = &GraphState{In: GraphInput{SessionID: "fresh"}, Now: fixedNow()}
	state, err = LoadOrCreateSession(ctx, state, store)
	if err != nil {
		t.Fatalf("LoadOrCreateSession() error = %v", err)
	}
	if state.Session == nil || state.Session.SessionID != "fresh" || state.Session.Len() != 0 {
		t.Fatalf("expected empty transcript for new session, got %+v", state.Session)
	}
}

func TestBuildMessages(t *testing.T) {
	t.Parallel()

	session := statex.NewTranscript("s1", fixedNow())
	if err := session.Append(statex.RoleUser, "who are you?", fixedNow()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := session.Append(statex.RoleAssistant, "I answer for Ada.", fixedNow()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	state := &GraphState{
		In:      GraphInput{SessionID: "s1", Text: "what did she build?"},
		Session: session,
	}
	state, err := BuildMessages(state, "you are Ada's concierge")
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}

	msgs := state.Messages
	if len(msgs) != 4 {
		t.Fatalf("unexpected message count: %d", len(msgs))
	}
	if msgs[0].Role != schema.System || msgs[0].Content != "you are Ada's concierge" {
		t.Fatalf("unexpected system message: %+v", msgs[0])
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "who are you?" {
		t.Fatalf("unexpected replayed user turn: %+v", msgs[1])
	}
	if msgs[2].Role != schema.Assistant || msgs[2].Content != "I answer for Ada." {
		t.Fatalf("unexpected replayed assistant turn: %+v", msgs[2])
	}
	if msgs[3].Role != schema.User || msgs[3].Content != "what did she build?" {
		t.Fatalf("unexpected new user message: %+v", msgs[3])
	}
}

func TestInvokeModelPlainReply(t *testing.T) {
	t.Parallel()

	chatModel := &fakeChatModel{responses: []*schema.Message{
		schema.AssistantMessage("  She designed the first published algorithm.  ", nil),
	}}
	state := &GraphState{Messages: []*schema.Message{schema.UserMessage("hi")}}

	state, err := InvokeModel(context.Background(), state, chatModel, &fakeGateway{}, 3)
	if err != nil {
		t.Fatalf("InvokeModel() error = %v", err)
	}
	if state.Reply != "She designed the first published algorithm." {
		t.Fatalf("unexpected reply: %q", state.Reply)
	}
}

func TestInvokeModelToolRoundThenReply(t *testing.T) {
	t.Parallel()

	toolCall := schema.ToolCall{
		ID: "call-1",
		Function: schema.FunctionCall{
			Name:      "record_unknown_question",
			Arguments: `{"question":"favourite color?"}`,
		},
	}
	chatModel := &fakeChatModel{responses: []*schema.Message{
		schema.AssistantMessage("", []schema.ToolCall{toolCall}),
		schema.AssistantMessage("I don't know, but I've noted the question.", nil),
	}}
	gateway := &fakeGateway{}
	state := &GraphState{Messages: []*schema.Message{schema.UserMessage("favourite color?")}}

	state, err := InvokeModel(context.Background(), state, chatModel, gateway, 3)
	if err != nil {
		t.Fatalf("InvokeModel() error = %v", err)
	}
	if state.Reply != "I don't know, but I've noted the question." {
		t.Fatalf("unexpected reply: %q", state.Reply)
	}

	if len(gateway.requests) != 1 {
		t.Fatalf("unexpected gateway request count: %d", len(gateway.requests))
	}
	req := gateway.requests[0]
	if req.CallID != "call-1" || req.Tool != "record_unknown_question" {
		t.Fatalf("unexpected gateway request: %+v", req)
	}
	if req.Args["question"] != "favourite color?" {
		t.Fatalf("unexpected parsed args: %v", req.Args)
	}

	// Second round must see the assistant tool-call message and the tool result.
	second := chatModel.calls[1]
	if len(second) != 3 {
		t.Fatalf("unexpected second-round message count: %d", len(second))
	}
	if second[1].Role != schema.Assistant || len(second[1].ToolCalls) != 1 {
		t.Fatalf("tool-call message not fed back: %+v", second[1])
	}
	if second[2].Role != schema.Tool || second[2].ToolCallID != "call-1" {
		t.Fatalf("tool result not fed back: %+v", second[2])
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(second[2].Content), &payload); err != nil {
		t.Fatalf("tool result is not json: %v", err)
	}
	if payload["recorded"] != "ok" {
		t.Fatalf("unexpected tool payload: %v", payload)
	}
}

func TestInvokeModelErrors(t *testing.T) {
	t.Parallel()

	state := func() *GraphState {
		return &GraphState{Messages: []*schema.Message{schema.UserMessage("hi")}}
	}

	_, err := InvokeModel(context.Background(), state(), &fakeChatModel{err: errors.New("boom")}, &fakeGateway{}, 2)
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("generate failure error = %v, want ErrModelInvoke", err)
	}

	_, err = InvokeModel(context.Background(), state(), &fakeChatModel{responses: []*schema.Message{
		schema.AssistantMessage("   ", nil),
	}}, &fakeGateway{}, 2)
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("empty reply error = %v, want ErrSchemaViolation", err)
	}

	toolCall := schema.ToolCall{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: "record_unknown_question", Arguments: `{}`},
	}
	looping := &fakeChatModel{responses: []*schema.Message{
		schema.AssistantMessage("", []schema.ToolCall{toolCall}),
		schema.AssistantMessage("", []schema.ToolCall{toolCall}),
		schema.AssistantMessage("", []schema.ToolCall{toolCall}),
	}}
	_, err = InvokeModel(context.Background(), state(), looping, &fakeGateway{}, 1)
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("exhausted rounds error = %v, want ErrModelInvoke", err)
	}
}

func TestRunToolCallsMalformedArguments(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	msgs, err := RunToolCalls(context.Background(), gateway, []schema.ToolCall{{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: "record_user_details", Arguments: "{not json"},
	}})
	if err != nil {
		t.Fatalf("RunToolCalls() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("unexpected message count: %d", len(msgs))
	}
	if len(gateway.requests[0].Args) != 0 {
		t.Fatalf("malformed args must degrade to empty map, got %v", gateway.requests[0].Args)
	}
}

func TestRunToolCallsErrorResult(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{results: []contractx.ToolResult{{
		CallID: "call-1",
		Tool:   "record_user_details",
		Error:  "email is required",
	}}}
	msgs, err := RunToolCalls(context.Background(), gateway, []schema.ToolCall{{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: "record_user_details", Arguments: `{}`},
	}})
	if err != nil {
		t.Fatalf("RunToolCalls() error = %v", err)
	}
	if msgs[0].Content != `{"error":"email is required"}` {
		t.Fatalf("unexpected tool message: %s", msgs[0].Content)
	}
}

func TestRunToolCallsResultCountMismatch(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{results: []contractx.ToolResult{}}
	_, err := RunToolCalls(context.Background(), gateway, []schema.ToolCall{{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: "record_user_details", Arguments: `{}`},
	}})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("mismatch error = %v, want ErrSchemaViolation", err)
	}
}

func TestSaveTranscript(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statex.NewMemoryStore()
	state := &GraphState{
		In:      GraphInput{SessionID: "s1", Text: "hello"},
		Now:     fixedNow(),
		Session: statex.NewTranscript("s1", fixedNow()),
		Reply:   "hi there",
	}

	if _, err := SaveTranscript(ctx, state, store); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	saved, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.Len() != 2 {
		t.Fatalf("unexpected turn count: %d", saved.Len())
	}
	if saved.Turns[0].Role != statex.RoleUser || saved.Turns[0].Content != "hello" {
		t.Fatalf("unexpected user turn: %+v", saved.Turns[0])
	}
	if saved.Turns[1].Role != statex.RoleAssistant || saved.Turns[1].Content != "hi there" {
		t.Fatalf("unexpected assistant turn: %+v", saved.Turns[1])
	}
}

func TestFinalizeReply(t *testing.T) {
	t.Parallel()

	out, err := FinalizeReply(&GraphState{
		In:    GraphInput{SessionID: "s1"},
		Reply: "  done  ",
	})
	if err != nil {
		t.Fatalf("FinalizeReply() error = %v", err)
	}
	if out.SessionID != "s1" || out.Reply != "done" {
		t.Fatalf("unexpected output: %+v", out)
	}

	if _, err := FinalizeReply(&GraphState{In: GraphInput{SessionID: "s1"}}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty reply error = %v, want ErrValidation", err)
	}
}
