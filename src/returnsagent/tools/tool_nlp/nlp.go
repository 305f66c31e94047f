package tool_nlp

import (
	"context"
	"strings"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
)

// Tool name constant
const Name = "analyze_text"

const nlpPrompt = `NLP Service. Analyzes customer text for sentiment, intent, and named entities. Always call this first when a new request arrives.`

// AnalyzeTextInput represents the parameters for analyze_text
type AnalyzeTextInput struct {
	Text string `json:"text" required:"true" description:"The customer message to analyze"`
}

// AnalyzeTextOutput represents the response from analyze_text
type AnalyzeTextOutput struct {
	Intent     string   `json:"intent" description:"Detected intent"`
	Sentiment  string   `json:"sentiment" description:"Detected sentiment"`
	Entities   []string `json:"entities" description:"Extracted entities"`
	Confidence float64  `json:"confidence" description:"Classifier confidence"`
}

// Tool returns the analyze_text tool definition.
func Tool() (agent.Tool, error) {
	return agent.NewGenericTool(Name, nlpPrompt, analyzeTextHandler)
}

// analyzeTextHandler is a keyword stub standing in for a real NLP model.
// The classification is deterministic so transcripts replay identically.
func analyzeTextHandler(ctx context.Context, input AnalyzeTextInput) (AnalyzeTextOutput, error) {
	logger := toolsutil.GetLogger()
	logger.Info("analyzing text", "length", len(input.Text))

	text := strings.ToLower(input.Text)

	intent := "general_inquiry"
	if strings.Contains(text, "return") {
		intent = "return_request"
	}

	sentiment := "neutral"
	for _, marker := range []string{"angry", "terrible", "worst"} {
		if strings.Contains(text, marker) {
			sentiment = "frustrated"
			break
		}
	}

	return AnalyzeTextOutput{
		Intent:     intent,
		Sentiment:  sentiment,
		Entities:   []string{},
		Confidence: 0.95,
	}, nil
}
