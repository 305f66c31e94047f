package tool_vision

import (
	"context"
	"strings"
	"time"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Tool name constants
const (
	AnalysisName    = "run_vision_analysis"
	ScanInvoiceName = "scan_invoice"
)

const analysisPrompt = `Vision Agent: Triggers the computer vision backend to analyze uploaded evidence. REQUIRED for all image/video uploads before discussing damage.`

const scanInvoicePrompt = `Vision Agent: Uses OCR to extract Order IDs from invoice images.`

// Fixed simulation values. The classifier is deterministic so the same
// transcript always produces the same analysis card.
const (
	simulatedConfidence = 0.98
	simulatedTimeMs     = 342
)

var simulatedBoundingBox = []int{100, 150, 400, 500}

// Progress describes an in-flight analysis, surfaced to the transcript/UI
// before the simulated processing completes.
type Progress struct {
	ToolName        string   `json:"tool_name"`
	Message         string   `json:"message"`
	DetectedObjects []string `json:"detected_objects"`
	Confidence      float64  `json:"confidence"`
	AnalysisTimeMs  int      `json:"analysis_time_ms"`
}

// Options configures the vision analysis tool for one turn.
type Options struct {
	// UserText is the text of the user message that triggered this turn.
	// The classifier keys off it in addition to the hinted defect class.
	UserText string
	// OnProgress, when set, receives the analysis card before the
	// simulated latency elapses.
	OnProgress func(Progress)
	// Latency is the simulated processing delay. Zero means no delay.
	Latency time.Duration
}

// AnalysisInput represents the parameters for run_vision_analysis. Only the
// media type is mandatory: an empty defect class falls back to the
// classifier's default, and a severity of 0.0 is a legal score.
type AnalysisInput struct {
	MediaType        string  `json:"media_type" required:"true" description:"'image' or 'video'"`
	DefectClass      string  `json:"defect_class" description:"Suspected defect class (e.g. 'torn_fabric', 'scratch', 'screen_glitch')"`
	TechnicalDetails string  `json:"technical_details" description:"Technical specs reported by the model"`
	SeverityScore    float64 `json:"severity_score" description:"0.0 to 1.0"`
}

// AnalysisOutput represents the response from run_vision_analysis
type AnalysisOutput struct {
	Status          string   `json:"status"`
	DetectedObjects []string `json:"detected_objects"`
	Confidence      float64  `json:"confidence"`
	BoundingBox     []int    `json:"bounding_box"`
	AnalysisTimeMs  int      `json:"analysis_time_ms"`
}

// ScanInvoiceInput represents the parameters for scan_invoice
type ScanInvoiceInput struct {
	DocumentType string `json:"document_type" required:"true" description:"Type of document, e.g. 'invoice'"`
}

// ScanInvoiceOutput represents the response from scan_invoice
type ScanInvoiceOutput struct {
	Status           string   `json:"status"`
	DetectedOrderIDs []string `json:"detected_order_ids"`
}

// AnalysisTool returns the run_vision_analysis tool definition.
func AnalysisTool(opts Options) (agent.Tool, error) {
	return agent.NewGenericTool(AnalysisName, analysisPrompt, makeAnalysisHandler(opts))
}

// ScanInvoiceTool returns the scan_invoice tool definition.
func ScanInvoiceTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(ScanInvoiceName, scanInvoicePrompt, makeScanInvoiceHandler(store, userID))
}

// Classify maps the combined user text and hinted defect class onto one of
// the simulated detector's classes. Matching is case-insensitive.
func Classify(userText, defectClass string) string {
	combined := strings.ToLower(userText + " " + defectClass)

	switch {
	case strings.Contains(combined, "screen"),
		strings.Contains(combined, "monitor"),
		strings.Contains(combined, "display"),
		strings.Contains(combined, "tv"):
		return "cracked_screen"
	case strings.Contains(combined, "tear"),
		strings.Contains(combined, "hole"),
		strings.Contains(combined, "fabric"):
		return "torn_fabric"
	case strings.Contains(combined, "scrat"):
		return "scratches"
	}

	if defectClass != "" {
		return defectClass
	}
	return "physical_damage"
}

func makeAnalysisHandler(opts Options) func(ctx context.Context, input AnalysisInput) (AnalysisOutput, error) {
	return func(ctx context.Context, input AnalysisInput) (AnalysisOutput, error) {
		logger := toolsutil.GetLogger()

		detected := Classify(opts.UserText, input.DefectClass)
		logger.Info("running vision analysis", "media_type", input.MediaType, "detected", detected)

		// Surface the analysis card before the simulated processing, the
		// way a streaming backend would.
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				ToolName:        "Vision Analysis",
				Message:         "analysis in progress",
				DetectedObjects: []string{detected},
				Confidence:      simulatedConfidence,
				AnalysisTimeMs:  simulatedTimeMs,
			})
		}

		if opts.Latency > 0 {
			select {
			case <-time.After(opts.Latency):
			case <-ctx.Done():
				return AnalysisOutput{}, ctx.Err()
			}
		}

		return AnalysisOutput{
			Status:          "success",
			DetectedObjects: []string{detected},
			Confidence:      simulatedConfidence,
			BoundingBox:     simulatedBoundingBox,
			AnalysisTimeMs:  simulatedTimeMs,
		}, nil
	}
}

func makeScanInvoiceHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input ScanInvoiceInput) (ScanInvoiceOutput, error) {
	return func(ctx context.Context, input ScanInvoiceInput) (ScanInvoiceOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("scanning invoice", "document_type", input.DocumentType)

		// The OCR stub "finds" the current user's own order ids.
		orders, err := storage.ListOrders(ctx, store, userID)
		if err != nil {
			logger.Error("failed to list orders for invoice scan", "error", err)
			return ScanInvoiceOutput{}, toolsutil.BackendError("scanning invoice", err)
		}

		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}

		return ScanInvoiceOutput{Status: "success", DetectedOrderIDs: ids}, nil
	}
}
