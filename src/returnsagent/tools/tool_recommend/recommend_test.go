package tool_recommend

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/storage"
)

func seededDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Seed(context.Background(), db.DB()))
	return db
}

func recommend(t *testing.T, db *storage.DB, userID, args string) RecommendOutput {
	t.Helper()
	tool, err := Tool(db.DB(), userID)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	var out RecommendOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	return out
}

func TestGetRecommendations(t *testing.T) {
	db := seededDB(t)

	out := recommend(t, db, "", `{"user_preferences":"tech"}`)
	require.NotZero(t, out.Count)
	assert.LessOrEqual(t, out.Count, 4)
	for _, rec := range out.Recommendations {
		assert.Contains(t, rec.Tags, "tech")
	}
}

func TestGetRecommendationsCategoryFilter(t *testing.T) {
	db := seededDB(t)

	out := recommend(t, db, "", `{"user_preferences":"sport, outdoor","category":"Footwear"}`)
	require.NotZero(t, out.Count)
	for _, rec := range out.Recommendations {
		assert.Equal(t, "Footwear", rec.Category)
	}
}

func TestGetRecommendationsMergesStoredPreferences(t *testing.T) {
	db := seededDB(t)

	// The demo user prefers "sustainable"; matches even when the stated
	// preferences don't mention it.
	out := recommend(t, db, storage.DemoUserID, `{"user_preferences":"gardening"}`)
	found := false
	for _, rec := range out.Recommendations {
		if rec.ProductID == "prod_1" {
			found = true
		}
	}
	assert.True(t, found, "expected the sustainable hoodie via stored preferences")
}

func TestGetRecommendationsNoMatch(t *testing.T) {
	db := seededDB(t)

	out := recommend(t, db, "", `{"user_preferences":"submarines"}`)
	assert.Zero(t, out.Count)
	assert.Empty(t, out.Recommendations)
}
