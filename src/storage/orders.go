package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// ErrInvalidTransition is returned when an order status change would move
// against the one-directional return/exchange flow.
var ErrInvalidTransition = errors.New("invalid order status transition")

// validTransitions encodes the one-directional lifecycle.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusDelivered:         {StatusReturnInitiated, StatusExchangeInitiated},
	StatusReturnInitiated:   {StatusReturned},
	StatusExchangeInitiated: {StatusExchanged},
}

// ListOrders returns a user's orders, newest first, with line items loaded.
func ListOrders(ctx context.Context, db sqlscan.Querier, userID string) ([]Order, error) {
	query := `SELECT id, user_id, customer_name, status, ordered_at, created_at FROM orders WHERE user_id = ? ORDER BY ordered_at DESC`
	var orders []Order
	if err := sqlscan.Select(ctx, db, &orders, query, userID); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := listOrderItems(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// GetOrder retrieves an order with its line items, or nil if not found.
func GetOrder(ctx context.Context, db sqlscan.Querier, orderID string) (*Order, error) {
	query := `SELECT id, user_id, customer_name, status, ordered_at, created_at FROM orders WHERE id = ?`
	var o Order
	err := sqlscan.Get(ctx, db, &o, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := listOrderItems(ctx, db, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func listOrderItems(ctx context.Context, db sqlscan.Querier, orderID string) ([]OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_name, unit_price, quantity FROM order_items WHERE order_id = ?`
	var items []OrderItem
	if err := sqlscan.Select(ctx, db, &items, query, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateOrder inserts an order with its line items. Orders created at
// checkout are immediately Delivered so the demo returns flow can run
// against them.
func CreateOrder(ctx context.Context, db Execer, order *Order) error {
	if order.ID == "" {
		order.ID = NewOrderID()
	}
	if order.Status == "" {
		order.Status = StatusDelivered
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	query := `INSERT INTO orders (id, user_id, customer_name, status, ordered_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, order.ID, order.UserID, order.CustomerName, order.Status, order.OrderedAt, order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = GenerateID()
		}
		item.OrderID = order.ID
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		itemQuery := `INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity) VALUES (?, ?, ?, ?, ?, ?)`
		if _, err := db.ExecContext(ctx, itemQuery, item.ID, item.OrderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrderStatus moves an order along its lifecycle. Returns false if
// the order does not exist, ErrInvalidTransition if the move is backwards.
func UpdateOrderStatus(ctx context.Context, db ExecQuerier, orderID string, status OrderStatus) (bool, error) {
	current, err := GetOrder(ctx, db, orderID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	allowed := false
	for _, next := range validTransitions[current.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	query := `UPDATE orders SET status = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, status, orderID); err != nil {
		return false, err
	}
	return true, nil
}
