package tool_vision

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		userText    string
		defectClass string
		want        string
	}{
		{"screen keyword in text", "my TV screen is shattered", "", "cracked_screen"},
		{"monitor keyword", "the Monitor arrived broken", "", "cracked_screen"},
		{"display in defect class", "it broke", "display_damage", "cracked_screen"},
		{"fabric tear", "there is a tear in the sleeve", "", "torn_fabric"},
		{"hole keyword", "found a hole in it", "", "torn_fabric"},
		{"scratch prefix", "it's scratched all over", "", "scratches"},
		{"falls back to hinted class", "it just stopped working", "screen_glitch", "cracked_screen"},
		{"hinted class passthrough", "it stopped working", "water_damage", "water_damage"},
		{"default", "it stopped working", "", "physical_damage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.userText, tt.defectClass))
		})
	}
}

func TestAnalysisEmitsProgressBeforeResult(t *testing.T) {
	var progress []Progress
	var progressAt time.Time

	tool, err := AnalysisTool(Options{
		UserText: "the screen is cracked",
		OnProgress: func(p Progress) {
			progress = append(progress, p)
			progressAt = time.Now()
		},
		Latency: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      AnalysisName,
			Arguments: json.RawMessage(`{"media_type":"image","defect_class":"crack","severity_score":0.8}`),
		},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	require.Len(t, progress, 1)
	assert.Equal(t, "analysis in progress", progress[0].Message)
	assert.Equal(t, []string{"cracked_screen"}, progress[0].DetectedObjects)
	// Progress fires before the simulated processing completes.
	assert.Less(t, progressAt.Sub(start), 20*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	var out AnalysisOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, []string{"cracked_screen"}, out.DetectedObjects)
	assert.Equal(t, 0.98, out.Confidence)
	assert.Equal(t, []int{100, 150, 400, 500}, out.BoundingBox)
	assert.Equal(t, 342, out.AnalysisTimeMs)
}

func TestAnalysisIsDeterministic(t *testing.T) {
	tool, err := AnalysisTool(Options{UserText: "there is a hole in the fabric"})
	require.NoError(t, err)

	args := json.RawMessage(`{"media_type":"image","defect_class":"tear","severity_score":0.5}`)
	first, err := tool.Execute(context.Background(), &aisdk.ToolCall{Function: aisdk.FunctionCall{Name: AnalysisName, Arguments: args}})
	require.NoError(t, err)
	second, err := tool.Execute(context.Background(), &aisdk.ToolCall{Function: aisdk.FunctionCall{Name: AnalysisName, Arguments: args}})
	require.NoError(t, err)

	assert.Equal(t, string(first.Content), string(second.Content))
}

func TestAnalysisCancelledDuringLatency(t *testing.T) {
	tool, err := AnalysisTool(Options{Latency: time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      AnalysisName,
			Arguments: json.RawMessage(`{"media_type":"image","defect_class":"crack","severity_score":0.8}`),
		},
	})
	// The tool boundary converts the cancellation into an error response.
	require.NoError(t, err)
	assert.True(t, resp.IsError)
}

func TestAnalysisMissingMediaType(t *testing.T) {
	tool, err := AnalysisTool(Options{})
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: AnalysisName, Arguments: json.RawMessage(`{"defect_class":"crack"}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
}

func TestAnalysisWithoutDefectClassHint(t *testing.T) {
	tests := []struct {
		name     string
		userText string
		args     string
		want     []string
	}{
		{
			"empty class, screen keyword in user text",
			"My screen is cracked, order #ORD-7782-X",
			`{"media_type":"image","defect_class":"","severity_score":0.7}`,
			[]string{"cracked_screen"},
		},
		{
			"empty class, no keywords",
			"it arrived broken",
			`{"media_type":"image","defect_class":"","severity_score":0.7}`,
			[]string{"physical_damage"},
		},
		{
			"class omitted entirely, zero severity",
			"it arrived broken",
			`{"media_type":"image","severity_score":0.0}`,
			[]string{"physical_damage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := AnalysisTool(Options{UserText: tt.userText})
			require.NoError(t, err)

			resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
				Function: aisdk.FunctionCall{Name: AnalysisName, Arguments: json.RawMessage(tt.args)},
			})
			require.NoError(t, err)
			require.False(t, resp.IsError, string(resp.Content))

			var out AnalysisOutput
			require.NoError(t, json.Unmarshal(resp.Content, &out))
			assert.Equal(t, "success", out.Status)
			assert.Equal(t, tt.want, out.DetectedObjects)
		})
	}
}
