package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

// ToolExecutor is a function type for tool execution.
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)

// ToolMiddleware wraps a ToolExecutor to add behavior around every call.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// Toolbox is the registry of callable backend operations. It exposes a
// read-only view to the orchestration loop; registering a new tool is the
// only change needed to add a backend capability.
type Toolbox struct {
	tools      map[string]Tool
	order      []string
	middleware []ToolMiddleware
}

// NewToolbox creates an empty tool registry.
func NewToolbox() *Toolbox {
	return &Toolbox{tools: make(map[string]Tool)}
}

// RegisterTool registers a tool. Names must be unique.
func (tb *Toolbox) RegisterTool(tool Tool) error {
	name := tool.GetName()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := tb.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}
	tb.tools[name] = tool
	tb.order = append(tb.order, name)
	return nil
}

// RegisterMiddleware adds middleware applied to all tool executions, in
// registration order (first registered = outermost layer).
func (tb *Toolbox) RegisterMiddleware(middleware ToolMiddleware) {
	tb.middleware = append(tb.middleware, middleware)
}

// Tools returns the registered tools in registration order, so the
// declarations sent to the model are stable across requests.
func (tb *Toolbox) Tools() []Tool {
	out := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		out = append(out, tb.tools[name])
	}
	return out
}

// GetTool returns a specific tool by name.
func (tb *Toolbox) GetTool(name string) (Tool, bool) {
	tool, exists := tb.tools[name]
	return tool, exists
}

// HasTool checks if a tool is registered.
func (tb *Toolbox) HasTool(name string) bool {
	_, exists := tb.tools[name]
	return exists
}

// ExecuteTool executes a tool call with the middleware chain applied.
func (tb *Toolbox) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, exists := tb.tools[call.Function.Name]
	if !exists {
		return nil, fmt.Errorf("tool %s not found", call.Function.Name)
	}

	executor := ToolExecutor(tool.Execute)
	for i := len(tb.middleware) - 1; i >= 0; i-- {
		executor = tb.middleware[i](executor)
	}
	return executor(ctx, call)
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger interface {
	Info(msg string, args ...interface{})
}) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "args", string(call.Function.Arguments))
			result, err := next(ctx, call)
			if err != nil {
				logger.Info("tool execution failed", "tool", call.Function.Name, "error", err)
			} else if result != nil && result.IsError {
				logger.Info("tool returned error result", "tool", call.Function.Name)
			}
			return result, err
		}
	}
}

// LatencyMiddleware delays every execution by a fixed duration, standing in
// for the network round trip the simulated backend agents would make. The
// delay is context-aware so a cancelled turn does not block.
func LatencyMiddleware(delay time.Duration) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return next(ctx, call)
		}
	}
}
