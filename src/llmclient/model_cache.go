package llmclient

import (
	"context"
	"sync"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
)

// ModelCache caches model metadata so the loop does not hit the models
// endpoint on every turn.
type ModelCache struct {
	cache     map[string]*cachedModel
	listCache *cachedModelList
	mu        sync.RWMutex
	ttl       time.Duration
	client    *Client
}

type cachedModel struct {
	model     *aisdk.ModelInfo
	fetchedAt time.Time
}

type cachedModelList struct {
	models    []*aisdk.ModelInfo
	fetchedAt time.Time
}

// NewModelCache creates a new model cache.
func NewModelCache(client *Client, ttl time.Duration) *ModelCache {
	return &ModelCache{
		cache:  make(map[string]*cachedModel),
		ttl:    ttl,
		client: client,
	}
}

// GetModel gets a model from cache or fetches it from the models endpoint.
func (mc *ModelCache) GetModel(ctx context.Context, modelID string) (*aisdk.ModelInfo, error) {
	mc.mu.RLock()
	cached, exists := mc.cache[modelID]
	mc.mu.RUnlock()

	if exists && time.Since(cached.fetchedAt) < mc.ttl {
		return cached.model, nil
	}

	model, err := mc.client.FindModelByName(ctx, modelID)
	if err != nil {
		return nil, err
	}

	mc.mu.Lock()
	mc.cache[modelID] = &cachedModel{model: model, fetchedAt: time.Now()}
	mc.mu.Unlock()

	return model, nil
}

// GetModelList gets the model list from cache or fetches it.
func (mc *ModelCache) GetModelList(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	mc.mu.RLock()
	cached := mc.listCache
	mc.mu.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < mc.ttl {
		return cached.models, nil
	}

	models, err := mc.client.listModelsUncached(ctx)
	if err != nil {
		return nil, err
	}

	mc.mu.Lock()
	mc.listCache = &cachedModelList{models: models, fetchedAt: time.Now()}
	mc.mu.Unlock()

	return models, nil
}

// ClearCache clears the entire cache.
func (mc *ModelCache) ClearCache() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cache = make(map[string]*cachedModel)
	mc.listCache = nil
}
