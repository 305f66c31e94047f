package executor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/autoreturn/autoreturn/src/theme"
)

// ConsoleProcessorConfig configures the console event processor.
type ConsoleProcessorConfig struct {
	ShowToolArguments  bool
	ShowToolResults    bool
	ShowIntermediateAI bool
	RawMode            bool
	MaxResultPreview   int
	Out                io.Writer
}

// ConsoleEventProcessor renders conversation events to the terminal.
type ConsoleEventProcessor struct {
	config ConsoleProcessorConfig

	assistantStyle lipgloss.Style
	toolStyle      lipgloss.Style
	mutedStyle     lipgloss.Style
	cardStyle      lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
}

// NewConsoleEventProcessor creates a new console event processor.
func NewConsoleEventProcessor(config ConsoleProcessorConfig) *ConsoleEventProcessor {
	if config.MaxResultPreview == 0 {
		config.MaxResultPreview = 200
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}

	palette := theme.CurrentTheme
	return &ConsoleEventProcessor{
		config:         config,
		assistantStyle: lipgloss.NewStyle().Foreground(palette.Text),
		toolStyle:      lipgloss.NewStyle().Foreground(palette.Accent),
		mutedStyle:     lipgloss.NewStyle().Foreground(palette.TextMuted),
		cardStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1),
		warningStyle: lipgloss.NewStyle().Foreground(palette.Warning),
		errorStyle:   lipgloss.NewStyle().Foreground(palette.Error),
	}
}

// Process handles a single event.
func (p *ConsoleEventProcessor) Process(event ConversationEvent) error {
	if p.config.RawMode {
		// Raw mode prints only the final assistant text.
		if msg, ok := event.(*AssistantMessageEvent); ok && len(msg.ToolCalls) == 0 {
			fmt.Fprint(p.config.Out, msg.Content)
		}
		return nil
	}

	switch e := event.(type) {
	case *AssistantMessageEvent:
		p.processAssistantMessage(e)
	case *ToolCallRequestEvent:
		p.processToolCallRequest(e)
	case *ToolCallResponseEvent:
		p.processToolCallResponse(e)
	case *ToolCallErrorEvent:
		fmt.Fprintln(p.config.Out, p.errorStyle.Render(fmt.Sprintf("  tool failed: %v (%v)", e.Error, e.Duration.Round(10*time.Millisecond))))
	case *ToolProgressEvent:
		p.processToolProgress(e)
	case *SystemMessageEvent:
		p.processSystemMessage(e)
	case *ErrorEvent:
		fmt.Fprintln(p.config.Out, p.errorStyle.Render(fmt.Sprintf("error (%s): %v", e.Context, e.Error)))
	}

	return nil
}

// Close cleans up resources.
func (p *ConsoleEventProcessor) Close() error {
	return nil
}

func (p *ConsoleEventProcessor) processAssistantMessage(e *AssistantMessageEvent) {
	if len(e.ToolCalls) > 0 {
		if p.config.ShowIntermediateAI && e.Content != "" {
			fmt.Fprintln(p.config.Out, p.mutedStyle.Render(e.Content))
		}
		return
	}
	fmt.Fprintln(p.config.Out, p.assistantStyle.Render(e.Content))
}

func (p *ConsoleEventProcessor) processToolCallRequest(e *ToolCallRequestEvent) {
	fmt.Fprintln(p.config.Out, p.toolStyle.Render(fmt.Sprintf("⏺ %s", e.ToolCall.Function.Name)))

	if p.config.ShowToolArguments {
		var pretty interface{}
		args := string(e.ToolCall.Function.Arguments)
		if err := json.Unmarshal(e.ToolCall.Function.Arguments, &pretty); err == nil {
			if raw, err := json.MarshalIndent(pretty, "  ", "  "); err == nil {
				args = string(raw)
			}
		}
		fmt.Fprintln(p.config.Out, p.mutedStyle.Render("  "+args))
	}
}

func (p *ConsoleEventProcessor) processToolCallResponse(e *ToolCallResponseEvent) {
	status := fmt.Sprintf("  done (%v)", e.Duration.Round(10*time.Millisecond))
	fmt.Fprintln(p.config.Out, p.mutedStyle.Render(status))

	if p.config.ShowToolResults && e.Response != nil && len(e.Response.Content) > 0 {
		preview := strings.ReplaceAll(string(e.Response.Content), "\n", " ")
		if len(preview) > p.config.MaxResultPreview {
			preview = preview[:p.config.MaxResultPreview] + "..."
		}
		fmt.Fprintln(p.config.Out, p.mutedStyle.Render("  "+preview))
	}
}

// processToolProgress renders the vision analysis card before the simulated
// processing delay finishes.
func (p *ConsoleEventProcessor) processToolProgress(e *ToolProgressEvent) {
	var b strings.Builder
	fmt.Fprintf(&b, "AI Vision Analysis\n%s\n", e.Progress.Message)
	if len(e.Progress.DetectedObjects) > 0 {
		fmt.Fprintf(&b, "detected: %s\n", strings.Join(e.Progress.DetectedObjects, ", "))
	}
	fmt.Fprintf(&b, "confidence: %.0f%%  (%d ms)", e.Progress.Confidence*100, e.Progress.AnalysisTimeMs)
	fmt.Fprintln(p.config.Out, p.cardStyle.Render(b.String()))
}

func (p *ConsoleEventProcessor) processSystemMessage(e *SystemMessageEvent) {
	switch e.Purpose {
	case "warning":
		fmt.Fprintln(p.config.Out, p.warningStyle.Render(e.Message))
	case "info":
		fmt.Fprintln(p.config.Out, p.mutedStyle.Render(e.Message))
	}
}
