package storage

import "time"

// OrderStatus is the lifecycle state of an order. Transitions are
// one-directional per flow: Delivered → Return Initiated → Returned, or
// Delivered → Exchange Initiated → Exchanged. Orders are never deleted.
type OrderStatus string

const (
	StatusDelivered         OrderStatus = "Delivered"
	StatusReturnInitiated   OrderStatus = "Return Initiated"
	StatusReturned          OrderStatus = "Returned"
	StatusExchangeInitiated OrderStatus = "Exchange Initiated"
	StatusExchanged         OrderStatus = "Exchanged"
)

// ReturnWindow is how long after delivery an order stays return-eligible.
const ReturnWindow = 60 * 24 * time.Hour

// User is a storefront account. Password handling is simulated demo data,
// not real authentication.
type User struct {
	ID           string          `json:"id" db:"id"`
	Email        string          `json:"email" db:"email"`
	Name         string          `json:"name" db:"name"`
	PasswordHash string          `json:"-" db:"password_hash"`
	Preferences  JSONStringArray `json:"preferences" db:"preferences"`
	Wishlist     JSONStringArray `json:"wishlist" db:"wishlist"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Product is immutable catalog reference data.
type Product struct {
	ID       string          `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    float64         `json:"price" db:"price"`
	Color    string          `json:"color" db:"color"`
	Size     string          `json:"size" db:"size"`
	Category string          `json:"category" db:"category"`
	Tags     JSONStringArray `json:"tags" db:"tags"`
	ImageURL string          `json:"image_url" db:"image_url"`
}

// Order is a purchase record.
type Order struct {
	ID           string      `json:"id" db:"id"`
	UserID       string      `json:"user_id" db:"user_id"`
	CustomerName string      `json:"customer_name" db:"customer_name"`
	Status       OrderStatus `json:"status" db:"status"`
	OrderedAt    time.Time   `json:"ordered_at" db:"ordered_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Items is loaded alongside the row; not a column.
	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem is one product line on an order with the price captured at
// purchase time.
type OrderItem struct {
	ID          string  `json:"id" db:"id"`
	OrderID     string  `json:"order_id" db:"order_id"`
	ProductID   string  `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	Quantity    int     `json:"quantity" db:"quantity"`
}

// EligibleForReturn reports whether a return may still be initiated. The
// flag is computed from status and age, never stored or set directly.
func (o *Order) EligibleForReturn(now time.Time) bool {
	if o.Status != StatusDelivered {
		return false
	}
	return now.Sub(o.OrderedAt) <= ReturnWindow
}

// Total is the sum of line prices.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total += item.UnitPrice * float64(qty)
	}
	return total
}

// ReturnKind distinguishes return from exchange transactions.
type ReturnKind string

const (
	ReturnKindReturn   ReturnKind = "return"
	ReturnKindExchange ReturnKind = "exchange"
)

// ReturnTransaction records an initiated return or exchange. At most one
// active transaction exists per order; re-processing an order yields the
// existing transaction instead of minting a second one.
type ReturnTransaction struct {
	ID         string     `json:"id" db:"id"`
	OrderID    string     `json:"order_id" db:"order_id"`
	Kind       ReturnKind `json:"kind" db:"kind"`
	Reason     string     `json:"reason" db:"reason"`
	ApprovedBy string     `json:"approved_by" db:"approved_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Conversation is a persisted support chat.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Message is one persisted transcript entry.
type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	Role           string    `json:"role" db:"role"`
	Content        string    `json:"content" db:"content"`
	ToolCallID     string    `json:"tool_call_id" db:"tool_call_id"`
	ToolName       string    `json:"tool_name" db:"tool_name"`
	ToolCalls      *string   `json:"tool_calls,omitempty" db:"tool_calls"` // JSON array
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ToolExecution is the audit record of one tool call.
type ToolExecution struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	ToolName       string    `json:"tool_name" db:"tool_name"`
	Input          string    `json:"input" db:"input"`
	Output         string    `json:"output" db:"output"`
	Error          string    `json:"error" db:"error"`
	DurationMs     int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
