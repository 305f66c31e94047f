package tool_vision

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

func TestScanInvoiceFindsOwnOrders(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Seed(ctx, db.DB()))

	tool, err := ScanInvoiceTool(db.DB(), storage.DemoUserID)
	require.NoError(t, err)

	resp, err := tool.Execute(ctx, &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: ScanInvoiceName, Arguments: json.RawMessage(`{"document_type":"invoice"}`)},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))

	var out ScanInvoiceOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "success", out.Status)
	assert.Contains(t, out.DetectedOrderIDs, "ORD-7782-X")
	assert.Len(t, out.DetectedOrderIDs, 5)
}
