package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

// ModelsResponse represents the response from the models listing API.
type ModelsResponse struct {
	Data []*aisdk.ModelInfo `json:"data"`
}

// ListModels returns all available models (with caching).
func (c *Client) ListModels(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	return c.modelCache.GetModelList(ctx)
}

// listModelsUncached returns all available models without caching.
func (c *Client) listModelsUncached(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return modelsResp.Data, nil
}

// FindModelByName searches the model list by ID or name, case-insensitively.
func (c *Client) FindModelByName(ctx context.Context, name string) (*aisdk.ModelInfo, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	searchName := strings.ToLower(name)

	for _, model := range models {
		if strings.ToLower(model.ID) == searchName {
			return model, nil
		}
	}
	for _, model := range models {
		if strings.Contains(strings.ToLower(model.ID), searchName) ||
			strings.Contains(strings.ToLower(model.Name), searchName) {
			return model, nil
		}
	}

	return nil, fmt.Errorf("model matching %s not found", name)
}
