package tools

// Barrel-style re-exports so callers can assemble the tool set from one
// import instead of reaching into each tool package.

import (
	"github.com/autoreturn/autoreturn/src/agent"
	tool_nlp "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_nlp"
	tool_orders "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_orders"
	tool_policy "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_policy"
	tool_recommend "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_recommend"
	tool_resolution "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_resolution"
	tool_vision "github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_vision"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Tool name constants - re-exported from individual packages
const (
	AnalyzeTextName         = tool_nlp.Name
	GetUserOrdersName       = tool_orders.GetUserOrdersName
	GetOrderDetailsName     = tool_orders.GetOrderDetailsName
	VisionAnalysisName      = tool_vision.AnalysisName
	ScanInvoiceName         = tool_vision.ScanInvoiceName
	CheckPolicyName         = tool_policy.CheckPolicyName
	SearchKnowledgeBaseName = tool_policy.SearchKnowledgeBaseName
	ProcessReturnName       = tool_resolution.ProcessReturnName
	ProcessExchangeName     = tool_resolution.ProcessExchangeName
	DetermineResolutionName = tool_resolution.DetermineResolutionName
	GetRecommendationsName  = tool_recommend.Name
)

func AnalyzeTextTool() (agent.Tool, error) { return tool_nlp.Tool() }

func GetUserOrdersTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_orders.GetUserOrdersTool(store, userID)
}
func GetOrderDetailsTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_orders.GetOrderDetailsTool(store, userID)
}

func VisionAnalysisTool(opts tool_vision.Options) (agent.Tool, error) {
	return tool_vision.AnalysisTool(opts)
}
func ScanInvoiceTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_vision.ScanInvoiceTool(store, userID)
}

func CheckPolicyTool() (agent.Tool, error)         { return tool_policy.CheckPolicyTool() }
func SearchKnowledgeBaseTool() (agent.Tool, error) { return tool_policy.SearchKnowledgeBaseTool() }

func ProcessReturnTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_resolution.ProcessReturnTool(store, userID)
}
func ProcessExchangeTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_resolution.ProcessExchangeTool(store, userID)
}
func DetermineResolutionTool(store storage.ExecQuerier) (agent.Tool, error) {
	return tool_resolution.DetermineResolutionTool(store)
}

func GetRecommendationsTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return tool_recommend.Tool(store, userID)
}
