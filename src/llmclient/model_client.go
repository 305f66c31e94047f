package llmclient

import (
	"context"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient is a client bound to a specific model.
type ModelClient struct {
	client *Client
	model  *aisdk.ModelInfo
}

// Model creates a ModelClient bound to the named model. If the models
// endpoint cannot be reached the model is assumed to exist with image
// support, so a missing listing endpoint does not block the chat flow.
func (c *Client) Model(ctx context.Context, modelName string) (aisdk.ModelClient, error) {
	modelInfo, err := c.modelCache.GetModel(ctx, modelName)
	if err != nil {
		c.logger.Debug("model lookup failed, assuming defaults", "model", modelName, "error", err)
		modelInfo = &aisdk.ModelInfo{
			ID:             modelName,
			Name:           modelName,
			SupportsImages: true,
		}
	}

	return &ModelClient{client: c, model: modelInfo}, nil
}

// CreateChatCompletion creates a chat completion with the bound model.
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	req.Model = mc.model.ID
	return mc.client.createChatCompletion(ctx, req, mc.model.SupportsImages)
}

// GetModelInfo returns the bound model's metadata.
func (mc *ModelClient) GetModelInfo() *aisdk.ModelInfo {
	return mc.model
}
