package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// ActiveReturnForOrder returns the open transaction for an order, or nil.
// An order has at most one active return/exchange at a time.
func ActiveReturnForOrder(ctx context.Context, db sqlscan.Querier, orderID string) (*ReturnTransaction, error) {
	query := `SELECT id, order_id, kind, reason, approved_by, created_at FROM return_transactions WHERE order_id = ? ORDER BY created_at DESC LIMIT 1`
	var txn ReturnTransaction
	err := sqlscan.Get(ctx, db, &txn, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// CreateReturn inserts a return transaction.
func CreateReturn(ctx context.Context, db Execer, txn *ReturnTransaction) error {
	if txn.ID == "" {
		txn.ID = NewTransactionID()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	query := `INSERT INTO return_transactions (id, order_id, kind, reason, approved_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, txn.ID, txn.OrderID, txn.Kind, txn.Reason, txn.ApprovedBy, txn.CreatedAt)
	return err
}
