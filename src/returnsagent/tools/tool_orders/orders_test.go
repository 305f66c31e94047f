package tool_orders

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

func TestGetUserOrders(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	tool, err := GetUserOrdersTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: GetUserOrdersName, Arguments: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	var out GetUserOrdersOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, 5, out.Count)
	assert.Equal(t, "ORD-6673-M", out.Orders[0].ID)
	assert.Contains(t, out.Orders[0].Items, "Urban Runner Sneakers")
}

func TestGetUserOrdersCapsAtFive(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	// A sixth order pushes the list over the cap.
	require.NoError(t, storage.CreateOrder(ctx, db.DB(), &storage.Order{
		UserID:       storage.DemoUserID,
		CustomerName: "Alex Doe",
		Items:        []storage.OrderItem{{ProductID: "prod_23", ProductName: "USB-C Fast Charger", UnitPrice: 25}},
	}))

	tool, err := GetUserOrdersTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: GetUserOrdersName, Arguments: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)

	var out GetUserOrdersOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, 5, out.Count)
}

func TestGetUserOrdersEmptyIsNotError(t *testing.T) {
	db := seededDB(t)

	tool, err := GetUserOrdersTool(db.DB(), "usr_nobody")
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: GetUserOrdersName, Arguments: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError)

	var out GetUserOrdersOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, out.Orders)
}

func TestGetOrderDetails(t *testing.T) {
	db := seededDB(t)

	tool, err := GetOrderDetailsTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	t.Run("eligible order", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
			Function: aisdk.FunctionCall{Name: GetOrderDetailsName, Arguments: json.RawMessage(`{"order_id":"ORD-7782-X"}`)},
		})
		require.NoError(t, err)
		require.False(t, resp.IsError, string(resp.Content))

		var out GetOrderDetailsOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.Equal(t, "ORD-7782-X", out.ID)
		assert.Equal(t, "Delivered", out.Status)
		assert.True(t, out.EligibleForReturn)
		assert.Len(t, out.Items, 2)
		assert.InDelta(t, 150.0, out.Total, 0.001)
	})

	t.Run("aged-out order is not eligible", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
			Function: aisdk.FunctionCall{Name: GetOrderDetailsName, Arguments: json.RawMessage(`{"order_id":"ORD-9921-Y"}`)},
		})
		require.NoError(t, err)

		var out GetOrderDetailsOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.False(t, out.EligibleForReturn)
	})

	t.Run("unknown order", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
			Function: aisdk.FunctionCall{Name: GetOrderDetailsName, Arguments: json.RawMessage(`{"order_id":"ORD-0000-Q"}`)},
		})
		require.NoError(t, err)
		assert.True(t, resp.IsError)
		assert.Contains(t, string(resp.Content), "not found")
	})

	t.Run("other user's order is hidden", func(t *testing.T) {
		other, err := GetOrderDetailsTool(db.DB(), "usr_other")
		require.NoError(t, err)
		resp, err := other.Execute(context.Background(), &aisdk.ToolCall{
			Function: aisdk.FunctionCall{Name: GetOrderDetailsName, Arguments: json.RawMessage(`{"order_id":"ORD-7782-X"}`)},
		})
		require.NoError(t, err)
		assert.True(t, resp.IsError)
	})
}
