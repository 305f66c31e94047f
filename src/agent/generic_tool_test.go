package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	Text  string `json:"text" jsonschema:"required,description=Text to echo"`
	Times int    `json:"times,omitempty" jsonschema:"description=Repeat count"`
}

type echoOutput struct {
	Echoed string `json:"echoed"`
}

func newEchoTool(t *testing.T) Tool {
	t.Helper()
	tool, err := NewGenericTool("echo", "Echoes text back",
		func(ctx context.Context, input echoInput) (echoOutput, error) {
			return echoOutput{Echoed: input.Text}, nil
		})
	require.NoError(t, err)
	return tool
}

func call(name, args string) *aisdk.ToolCall {
	return &aisdk.ToolCall{
		ID:       "call_1",
		Type:     "function",
		Function: aisdk.FunctionCall{Name: name, Arguments: json.RawMessage(args)},
	}
}

func TestGenericToolExecute(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), call("echo", `{"text":"hello"}`))
	require.NoError(t, err)
	require.False(t, resp.IsError)

	var out echoOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "hello", out.Echoed)
}

func TestGenericToolMissingRequiredField(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), call("echo", `{"times":2}`))
	require.NoError(t, err, "validation failures must come back as error responses, not raised errors")
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "required field 'text'")
}

func TestGenericToolMalformedArguments(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), call("echo", `{"text":`))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "failed to parse input")
}

func TestGenericToolEmptyArgumentsDefaultsToObject(t *testing.T) {
	type optInput struct {
		Query string `json:"query,omitempty"`
	}
	type optOutput struct {
		OK bool `json:"ok"`
	}
	tool, err := NewGenericTool("opt", "No required args",
		func(ctx context.Context, input optInput) (optOutput, error) {
			return optOutput{OK: true}, nil
		})
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{Function: aisdk.FunctionCall{Name: "opt"}})
	require.NoError(t, err)
	assert.False(t, resp.IsError)
}

func TestGenericToolHandlerError(t *testing.T) {
	tool, err := NewGenericTool("boom", "Always fails",
		func(ctx context.Context, input echoInput) (echoOutput, error) {
			return echoOutput{}, errors.New("backend unavailable")
		})
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), call("boom", `{"text":"x"}`))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Equal(t, "backend unavailable", string(resp.Content))
}

func TestGenericToolSchemaReflection(t *testing.T) {
	tool := newEchoTool(t)

	schema := tool.GetParameters()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "text")

	chatTool := ToChatTool(tool)
	assert.Equal(t, "function", chatTool.Type)
	assert.Equal(t, "echo", chatTool.Function.Name)
}

func TestToolboxRegistration(t *testing.T) {
	tb := NewToolbox()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))

	err := tb.RegisterTool(newEchoTool(t))
	assert.Error(t, err, "duplicate registration must fail")

	assert.True(t, tb.HasTool("echo"))
	_, ok := tb.GetTool("missing")
	assert.False(t, ok)
	assert.Len(t, tb.Tools(), 1)
}

func TestToolboxLatencyMiddleware(t *testing.T) {
	tb := NewToolbox()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))
	tb.RegisterMiddleware(LatencyMiddleware(10 * time.Millisecond))

	start := time.Now()
	resp, err := tb.ExecuteTool(context.Background(), call("echo", `{"text":"hi"}`))
	require.NoError(t, err)
	assert.False(t, resp.IsError)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestToolboxLatencyMiddlewareCancellation(t *testing.T) {
	tb := NewToolbox()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))
	tb.RegisterMiddleware(LatencyMiddleware(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := tb.ExecuteTool(ctx, call("echo", `{"text":"hi"}`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
