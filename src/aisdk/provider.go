package aisdk

import (
	"context"
)

// Provider represents an LLM provider.
type Provider interface {
	Model(ctx context.Context, modelName string) (ModelClient, error)
}

// ModelClient represents a client bound to a specific model. The loop does
// not care which vendor implements it as long as multi-turn tool calling
// with structured arguments and image input is supported.
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
	GetModelInfo() *ModelInfo
}
