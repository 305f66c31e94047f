// Package agent provides the tool registry and typed tool plumbing used by
// the orchestration loop.
package agent

import (
	"context"

	"github.com/autoreturn/autoreturn/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Tool is the interface all backend tools implement. Names are globally
// unique within a toolbox; the parameter schema is sent verbatim to the
// model as the tool declaration.
type Tool interface {
	// GetType returns the tool type (always "function" for now).
	GetType() string

	// GetName returns the tool's name.
	GetName() string

	// GetDescription returns the natural-language description the model
	// uses to decide applicability.
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's arguments.
	GetParameters() *jsonschema.Schema

	// Execute runs the tool. Implementations report failures through the
	// ToolResponse error flag rather than the returned error; a non-nil
	// error is reserved for faults the caller cannot feed back to the model.
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// ToChatTool converts a Tool to the declaration format sent with requests.
func ToChatTool(tool Tool) *aisdk.ChatTool {
	return &aisdk.ChatTool{
		Type: tool.GetType(),
		Function: aisdk.ChatToolFunction{
			Name:        tool.GetName(),
			Description: tool.GetDescription(),
			Parameters:  tool.GetParameters(),
		},
	}
}

// ToChatTools converts a slice of tools to declarations.
func ToChatTools(tools []Tool) []*aisdk.ChatTool {
	chatTools := make([]*aisdk.ChatTool, len(tools))
	for i, tool := range tools {
		chatTools[i] = ToChatTool(tool)
	}
	return chatTools
}
