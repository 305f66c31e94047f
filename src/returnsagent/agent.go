// Package returnsagent assembles the AutoReturn support agent: the system
// instruction and the simulated backend tool set the orchestration loop
// exposes to the model.
package returnsagent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/returnsagent/tools"
	tool_vision "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_vision"
	"github.com/autoreturn/autoreturn/src/storage"
)

// TurnContext carries the per-turn state the tools close over. A fresh
// toolbox is built for every turn so the vision classifier sees the user
// message that triggered it.
type TurnContext struct {
	// Store backs the order, catalog, and return operations.
	Store storage.ExecQuerier

	// UserID scopes order lookups and mutations to the signed-in customer.
	UserID string

	// UserText is the current turn's user message.
	UserText string

	// OnVisionProgress receives the analysis card the vision stub emits
	// before its simulated latency elapses. Optional.
	OnVisionProgress func(tool_vision.Progress)

	// ToolLatency is the fixed delay applied to every tool execution,
	// simulating the backend round trip. Zero disables it.
	ToolLatency time.Duration

	// Logger, when set, is attached to the toolbox logging middleware.
	Logger *slog.Logger
}

// NewToolbox builds the full returns-agent tool registry for one turn.
func NewToolbox(tc TurnContext) (*agent.Toolbox, error) {
	tb := agent.NewToolbox()

	constructors := []func() (agent.Tool, error){
		tools.AnalyzeTextTool,
		func() (agent.Tool, error) { return tools.GetUserOrdersTool(tc.Store, tc.UserID) },
		func() (agent.Tool, error) { return tools.GetOrderDetailsTool(tc.Store, tc.UserID) },
		func() (agent.Tool, error) {
			return tools.VisionAnalysisTool(tool_vision.Options{
				UserText:   tc.UserText,
				OnProgress: tc.OnVisionProgress,
				Latency:    tc.ToolLatency,
			})
		},
		func() (agent.Tool, error) { return tools.ScanInvoiceTool(tc.Store, tc.UserID) },
		tools.CheckPolicyTool,
		tools.SearchKnowledgeBaseTool,
		func() (agent.Tool, error) { return tools.ProcessReturnTool(tc.Store, tc.UserID) },
		func() (agent.Tool, error) { return tools.ProcessExchangeTool(tc.Store, tc.UserID) },
		func() (agent.Tool, error) { return tools.DetermineResolutionTool(tc.Store) },
		func() (agent.Tool, error) { return tools.GetRecommendationsTool(tc.Store, tc.UserID) },
	}

	for _, construct := range constructors {
		tool, err := construct()
		if err != nil {
			return nil, fmt.Errorf("failed to build tool: %w", err)
		}
		if err := tb.RegisterTool(tool); err != nil {
			return nil, err
		}
	}

	if tc.Logger != nil {
		tb.RegisterMiddleware(agent.LoggingMiddleware(tc.Logger))
	}

	// The vision tool manages its own delay so its progress card surfaces
	// before the wait; the middleware covers every other tool.
	if tc.ToolLatency > 0 {
		latency := agent.LatencyMiddleware(tc.ToolLatency)
		tb.RegisterMiddleware(func(next agent.ToolExecutor) agent.ToolExecutor {
			delayed := latency(next)
			return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
				if call.Function.Name == tools.VisionAnalysisName {
					return next(ctx, call)
				}
				return delayed(ctx, call)
			}
		})
	}

	return tb, nil
}
