package tool_orders

import (
	"context"
	"strings"
	"time"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Tool name constants
const (
	GetUserOrdersName   = "get_user_orders"
	GetOrderDetailsName = "get_order_details"
)

// maxOrders bounds the context handed to the model.
const maxOrders = 5

const getUserOrdersPrompt = `Retrieves recent orders for the current user. CALL THIS FIRST if the user mentions an item name (e.g. 'return my headphones') but hasn't given an Order ID.`

const getOrderDetailsPrompt = `Retrieves the full details of a single order by Order ID, including line items, status, and return eligibility.`

// OrderSummary is the compact order representation returned to the model.
type OrderSummary struct {
	ID     string `json:"id" description:"Order ID"`
	Date   string `json:"date" description:"Order date"`
	Status string `json:"status" description:"Order status"`
	Items  string `json:"items" description:"Comma-separated item names"`
}

// GetUserOrdersInput represents the parameters for get_user_orders
type GetUserOrdersInput struct {
	UserID string `json:"user_id" description:"User ID; defaults to the signed-in customer"`
}

// GetUserOrdersOutput represents the response from get_user_orders
type GetUserOrdersOutput struct {
	Orders []OrderSummary `json:"orders" description:"Up to five most recent orders"`
	Count  int            `json:"count" description:"Number of orders returned"`
}

// GetOrderDetailsInput represents the parameters for get_order_details
type GetOrderDetailsInput struct {
	OrderID string `json:"order_id" required:"true" description:"The order ID, e.g. ORD-7782-X"`
}

// OrderItemDetail is one line item on an order.
type OrderItemDetail struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// GetOrderDetailsOutput represents the response from get_order_details
type GetOrderDetailsOutput struct {
	ID                string            `json:"id"`
	CustomerName      string            `json:"customer_name"`
	Date              string            `json:"date"`
	Status            string            `json:"status"`
	Items             []OrderItemDetail `json:"items"`
	Total             float64           `json:"total"`
	EligibleForReturn bool              `json:"eligible_for_return"`
}

// GetUserOrdersTool returns the get_user_orders tool definition.
func GetUserOrdersTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(GetUserOrdersName, getUserOrdersPrompt, makeGetUserOrdersHandler(store, userID))
}

// GetOrderDetailsTool returns the get_order_details tool definition.
func GetOrderDetailsTool(store storage.ExecQuerier, userID string) (agent.Tool, error) {
	return agent.NewGenericTool(GetOrderDetailsName, getOrderDetailsPrompt, makeGetOrderDetailsHandler(store, userID))
}

func makeGetUserOrdersHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input GetUserOrdersInput) (GetUserOrdersOutput, error) {
	return func(ctx context.Context, input GetUserOrdersInput) (GetUserOrdersOutput, error) {
		logger := toolsutil.GetLogger()

		// The model sometimes invents a user id; the session's user wins.
		id := userID
		if id == "" {
			id = input.UserID
		}

		logger.Info("listing orders", "user_id", id)

		orders, err := storage.ListOrders(ctx, store, id)
		if err != nil {
			logger.Error("failed to list orders", "user_id", id, "error", err)
			return GetUserOrdersOutput{}, toolsutil.BackendError("listing orders", err)
		}

		if len(orders) > maxOrders {
			orders = orders[:maxOrders]
		}

		// Zero orders is a valid answer, not an error.
		summaries := make([]OrderSummary, 0, len(orders))
		for _, o := range orders {
			names := make([]string, 0, len(o.Items))
			for _, item := range o.Items {
				names = append(names, item.ProductName)
			}
			summaries = append(summaries, OrderSummary{
				ID:     o.ID,
				Date:   o.OrderedAt.Format("2006-01-02"),
				Status: string(o.Status),
				Items:  strings.Join(names, ", "),
			})
		}

		return GetUserOrdersOutput{Orders: summaries, Count: len(summaries)}, nil
	}
}

func makeGetOrderDetailsHandler(store storage.ExecQuerier, userID string) func(ctx context.Context, input GetOrderDetailsInput) (GetOrderDetailsOutput, error) {
	return func(ctx context.Context, input GetOrderDetailsInput) (GetOrderDetailsOutput, error) {
		logger := toolsutil.GetLogger()
		logger.Info("getting order details", "order_id", input.OrderID)

		order, err := storage.GetOrder(ctx, store, input.OrderID)
		if err != nil {
			logger.Error("failed to get order", "order_id", input.OrderID, "error", err)
			return GetOrderDetailsOutput{}, toolsutil.BackendError("getting order", err)
		}
		if order == nil || (userID != "" && order.UserID != userID) {
			return GetOrderDetailsOutput{}, toolsutil.NotFoundError("order", input.OrderID)
		}

		items := make([]OrderItemDetail, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, OrderItemDetail{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}

		return GetOrderDetailsOutput{
			ID:                order.ID,
			CustomerName:      order.CustomerName,
			Date:              order.OrderedAt.Format("2006-01-02"),
			Status:            string(order.Status),
			Items:             items,
			Total:             order.Total(),
			EligibleForReturn: order.EligibleForReturn(time.Now()),
		}, nil
	}
}
