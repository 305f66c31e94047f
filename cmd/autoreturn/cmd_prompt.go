package main

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/executor"
	"github.com/autoreturn/autoreturn/src/storage"
)

// PromptCmd runs a single support turn and exits.
type PromptCmd struct {
	Text   []string `arg:"" help:"The message to send"`
	User   string   `default:"usr_1" help:"Customer user ID for the turn"`
	Attach string   `short:"a" help:"Attach an image or video file"`
	Raw    bool     `help:"Print only the final reply"`
	Resume bool     `short:"r" help:"Continue the latest conversation"`
}

func (p *PromptCmd) Run(kctx *kong.Context, cli *CLI) error {
	ctx := context.Background()
	appInstance, _, err := initApp(ctx, cli)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	if err := storage.Seed(ctx, appInstance.Store.DB()); err != nil {
		return err
	}

	model, err := appInstance.Model(ctx)
	if err != nil {
		return err
	}

	var attachment *aisdk.Attachment
	if p.Attach != "" {
		attachment, err = loadAttachment(afero.NewOsFs(), p.Attach)
		if err != nil {
			return err
		}
	}

	svc := appInstance.TurnService()
	stored, err := svc.GetOrCreateConversation(ctx, p.User, p.Resume)
	if err != nil {
		return err
	}
	conv, err := svc.BuildConversationFromDB(ctx, stored)
	if err != nil {
		return err
	}

	sink := executor.NewChannelEventSink(64, executor.NewConsoleEventProcessor(executor.ConsoleProcessorConfig{
		RawMode:         p.Raw,
		ShowToolResults: !p.Raw && appInstance.Config.Chat.ShowToolCalls,
	}))
	defer sink.Close()

	result, err := svc.RunTurn(ctx, executor.TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       p.User,
		UserText:     strings.Join(p.Text, " "),
		Attachment:   attachment,
		Sink:         sink,
		ToolLatency:  appInstance.ToolLatency(),
		Temperature:  appInstance.Config.Chat.Temperature,
		MaxTokens:    appInstance.Config.Chat.MaxTokens,
	})
	if err != nil {
		return err
	}
	return result.Err
}
