package tool_resolution

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

func executeJSON[T any](t *testing.T, tool interface {
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}, name, args string) T {
	t.Helper()
	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: name, Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))
	var out T
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	return out
}

func TestProcessReturn(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	tool, err := ProcessReturnTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	out := executeJSON[ProcessReturnOutput](t, tool, ProcessReturnName,
		`{"order_id":"ORD-7782-X","reason":"Damaged or defective item","approved_by":"Resolution Agent"}`)

	assert.Equal(t, "approved", out.Status)
	assert.NotEmpty(t, out.TransactionID)
	assert.Equal(t, "Return Initiated", out.OrderStatus)

	order, err := storage.GetOrder(ctx, db.DB(), "ORD-7782-X")
	require.NoError(t, err)
	assert.Equal(t, storage.StatusReturnInitiated, order.Status)
}

func TestProcessReturnIsIdempotent(t *testing.T) {
	db := seededDB(t)

	tool, err := ProcessReturnTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	args := `{"order_id":"ORD-3345-Z","reason":"Damaged or defective item"}`
	first := executeJSON[ProcessReturnOutput](t, tool, ProcessReturnName, args)
	second := executeJSON[ProcessReturnOutput](t, tool, ProcessReturnName, args)

	// The second call hands back the existing transaction.
	assert.Equal(t, first.TransactionID, second.TransactionID)

	txns, err := storage.ActiveReturnForOrder(context.Background(), db.DB(), "ORD-3345-Z")
	require.NoError(t, err)
	assert.Equal(t, first.TransactionID, txns.ID)
}

func TestProcessReturnRejectsFinishedOrder(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	// Walk an order to its terminal state.
	_, err := storage.UpdateOrderStatus(ctx, db.DB(), "ORD-6673-M", storage.StatusReturnInitiated)
	require.NoError(t, err)
	_, err = storage.UpdateOrderStatus(ctx, db.DB(), "ORD-6673-M", storage.StatusReturned)
	require.NoError(t, err)

	tool, err := ProcessReturnTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      ProcessReturnName,
			Arguments: json.RawMessage(`{"order_id":"ORD-6673-M","reason":"Damaged or defective item"}`),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "cannot start a return")
}

func TestProcessReturnUnknownOrder(t *testing.T) {
	db := seededDB(t)

	tool, err := ProcessReturnTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      ProcessReturnName,
			Arguments: json.RawMessage(`{"order_id":"ORD-0000-Q","reason":"Incorrect order"}`),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "not found")
}

func TestProcessExchange(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	tool, err := ProcessExchangeTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	out := executeJSON[ProcessExchangeOutput](t, tool, ProcessExchangeName,
		`{"order_id":"ORD-7782-X","new_item_description":"same hoodie in size L"}`)

	assert.Equal(t, "approved", out.Status)
	assert.Equal(t, "Exchange Initiated", out.OrderStatus)

	order, err := storage.GetOrder(ctx, db.DB(), "ORD-7782-X")
	require.NoError(t, err)
	assert.Equal(t, storage.StatusExchangeInitiated, order.Status)

	txn, err := storage.ActiveReturnForOrder(ctx, db.DB(), "ORD-7782-X")
	require.NoError(t, err)
	assert.Equal(t, storage.ReturnKindExchange, txn.Kind)
}

func TestDetermineResolution(t *testing.T) {
	db := seededDB(t)

	tool, err := DetermineResolutionTool(db.DB())
	require.NoError(t, err)

	t.Run("refund includes order total", func(t *testing.T) {
		out := executeJSON[DetermineResolutionOutput](t, tool, DetermineResolutionName,
			`{"order_id":"ORD-7782-X","findings":"cracked_screen confirmed","policy_outcome":"Refund","customer_request":"I want a refund"}`)
		assert.Equal(t, "refund", out.Resolution)
		assert.InDelta(t, 150.0, out.RefundAmount, 0.001)
		assert.Contains(t, out.Summary, "cracked_screen")
	})

	t.Run("exchange request", func(t *testing.T) {
		out := executeJSON[DetermineResolutionOutput](t, tool, DetermineResolutionName,
			`{"findings":"torn_fabric","policy_outcome":"Refund","customer_request":"I'd like an exchange instead"}`)
		assert.Equal(t, "exchange", out.Resolution)
		assert.Zero(t, out.RefundAmount)
	})

	t.Run("review outcome wins", func(t *testing.T) {
		out := executeJSON[DetermineResolutionOutput](t, tool, DetermineResolutionName,
			`{"findings":"no defect detected","policy_outcome":"Review","customer_request":"refund please"}`)
		assert.Equal(t, "review", out.Resolution)
	})
}
