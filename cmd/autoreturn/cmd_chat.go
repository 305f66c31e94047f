package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/executor"
	"github.com/autoreturn/autoreturn/src/storage"
)

// ChatCmd is the interactive support session.
type ChatCmd struct {
	User           string `default:"usr_1" help:"Customer user ID for the session"`
	Resume         bool   `short:"r" help:"Resume the latest conversation"`
	ConversationID string `help:"Resume a specific conversation by ID"`
	ShowArgs       bool   `help:"Show tool call arguments"`
	ShowResults    bool   `help:"Show tool result previews"`
}

func (c *ChatCmd) Run(kctx *kong.Context, cli *CLI) error {
	ctx := context.Background()
	appInstance, _, err := initApp(ctx, cli)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	if err := storage.Seed(ctx, appInstance.Store.DB()); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	model, err := appInstance.Model(ctx)
	if err != nil {
		return err
	}

	svc := appInstance.TurnService()
	stored, err := c.resolveConversation(ctx, svc)
	if err != nil {
		return err
	}
	conv, err := svc.BuildConversationFromDB(ctx, stored)
	if err != nil {
		return err
	}

	sink := executor.NewChannelEventSink(64, executor.NewConsoleEventProcessor(executor.ConsoleProcessorConfig{
		ShowToolArguments: c.ShowArgs,
		ShowToolResults:   c.ShowResults,
	}))
	defer sink.Close()

	fmt.Println("AutoReturn support. Describe your issue, /attach <file> to add a photo, /quit to exit.")

	fs := afero.NewOsFs()
	var pending *aisdk.Attachment
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return scanner.Err()
		case strings.HasPrefix(line, "/attach "):
			attachment, err := loadAttachment(fs, strings.TrimSpace(strings.TrimPrefix(line, "/attach ")))
			if err != nil {
				fmt.Printf("attach failed: %v\n", err)
				continue
			}
			pending = attachment
			fmt.Printf("attached %s\n", attachment.Describe())
			continue
		}

		result, err := svc.RunTurn(ctx, executor.TurnRequest{
			Conversation: conv,
			Model:        model,
			UserID:       c.User,
			UserText:     line,
			Attachment:   pending,
			Sink:         sink,
			ToolLatency:  appInstance.ToolLatency(),
			Temperature:  appInstance.Config.Chat.Temperature,
			MaxTokens:    appInstance.Config.Chat.MaxTokens,
		})
		if err != nil {
			return err
		}
		conv = result.Conversation
		pending = nil
	}
	return scanner.Err()
}

func (c *ChatCmd) resolveConversation(ctx context.Context, svc *executor.Service) (*storage.Conversation, error) {
	if c.ConversationID != "" {
		return svc.GetConversation(ctx, c.ConversationID)
	}
	return svc.GetOrCreateConversation(ctx, c.User, c.Resume)
}

// loadAttachment reads a local image or video for the next message.
func loadAttachment(fs afero.Fs, path string) (*aisdk.Attachment, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return aisdk.NewAttachment(detectMimeType(path, data), filepath.Base(path), data), nil
}

func detectMimeType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	}
	return http.DetectContentType(data)
}
