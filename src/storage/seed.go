package storage

import (
	"context"
	"time"
)

// DemoUserID is the account the seeded orders belong to.
const DemoUserID = "usr_1"

// DemoCatalog is the seed product catalog.
var DemoCatalog = []Product{
	{ID: "prod_1", Name: "Eco-Fleece Hoodie", Price: 85, Color: "Sage Green", Size: "M", Category: "Apparel", Tags: JSONStringArray{"sustainable", "casual", "winter"}},
	{ID: "prod_2", Name: "Wireless Headphones", Price: 299, Color: "Matte Black", Size: "One Size", Category: "Electronics", Tags: JSONStringArray{"audio", "travel", "tech"}},
	{ID: "prod_4", Name: "Smart Fitness Watch", Price: 199, Color: "Midnight Blue", Size: "One Size", Category: "Gadgets", Tags: JSONStringArray{"fitness", "tech", "health"}},
	{ID: "prod_7", Name: "Vintage Denim Jacket", Price: 110, Color: "Blue Wash", Size: "L", Category: "Fashion", Tags: JSONStringArray{"vintage", "casual", "outerwear"}},
	{ID: "prod_8", Name: "Silk Scarf", Price: 65, Color: "Floral Pattern", Size: "One Size", Category: "Fashion", Tags: JSONStringArray{"luxury", "accessories"}},
	{ID: "prod_9", Name: "Mini Drone 4K", Price: 450, Color: "White", Size: "Standard", Category: "Gadgets", Tags: JSONStringArray{"photography", "tech", "outdoor"}},
	{ID: "prod_15", Name: "Urban Runner Sneakers", Price: 120, Color: "Grey/Neon", Size: "US 10", Category: "Footwear", Tags: JSONStringArray{"sport", "fashion"}},
	{ID: "prod_17", Name: "Portable Bluetooth Speaker", Price: 59, Color: "Teal", Size: "Mini", Category: "Electronics", Tags: JSONStringArray{"music", "portable"}},
	{ID: "prod_19", Name: "Linen Button Shirt", Price: 55, Color: "Beige", Size: "L", Category: "Fashion", Tags: JSONStringArray{"summer", "casual"}},
	{ID: "prod_20", Name: "Floral Summer Dress", Price: 75, Color: "Yellow", Size: "S", Category: "Fashion", Tags: JSONStringArray{"summer", "party"}},
	{ID: "prod_21", Name: "Leather Hiking Boots", Price: 160, Color: "Brown", Size: "US 9", Category: "Footwear", Tags: JSONStringArray{"outdoor", "durable"}},
	{ID: "prod_22", Name: "Classic Loafers", Price: 95, Color: "Black", Size: "US 10", Category: "Footwear", Tags: JSONStringArray{"formal", "office"}},
	{ID: "prod_23", Name: "USB-C Fast Charger", Price: 25, Color: "White", Size: "N/A", Category: "Gadgets", Tags: JSONStringArray{"accessory", "power"}},
	{ID: "prod_24", Name: "Velvet Matte Lipstick", Price: 28, Color: "Ruby Red", Size: "3g", Category: "Beauty", Tags: JSONStringArray{"makeup", "cosmetics"}},
	{ID: "prod_25", Name: "Hydrating Facial Serum", Price: 45, Color: "Clear", Size: "30ml", Category: "Beauty", Tags: JSONStringArray{"skincare", "wellness"}},
	{ID: "prod_26", Name: "Eyeshadow Palette", Price: 35, Color: "Nude Tones", Size: "12 Colors", Category: "Beauty", Tags: JSONStringArray{"makeup", "artistry"}},
	{ID: "prod_27", Name: "Organic Arabica Coffee", Price: 18, Color: "Dark Roast", Size: "1lb", Category: "Grocery", Tags: JSONStringArray{"beverage", "organic"}},
	{ID: "prod_28", Name: "Artisan Dark Chocolate", Price: 12, Color: "Dark", Size: "100g", Category: "Grocery", Tags: JSONStringArray{"sweets", "snack"}},
	{ID: "prod_29", Name: "Extra Virgin Olive Oil", Price: 22, Color: "Gold", Size: "500ml", Category: "Grocery", Tags: JSONStringArray{"cooking", "essential"}},
}

// Seed populates an empty database with the demo user, catalog, and a set of
// orders in assorted lifecycle states so the returns flow has material to
// work with. Seeding twice is a no-op.
func Seed(ctx context.Context, db ExecQuerier) error {
	existing, err := GetUserByID(ctx, db, DemoUserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	user := &User{
		ID:           DemoUserID,
		Email:        "user@demo.com",
		Name:         "Alex Doe",
		PasswordHash: "123456",
		Preferences:  JSONStringArray{"sustainable", "tech", "minimalist"},
	}
	if err := CreateUser(ctx, db, user); err != nil {
		return err
	}

	byID := make(map[string]Product, len(DemoCatalog))
	for i := range DemoCatalog {
		p := DemoCatalog[i]
		if err := CreateProduct(ctx, db, &p); err != nil {
			return err
		}
		byID[p.ID] = p
	}

	now := time.Now()
	orders := []struct {
		id       string
		age      time.Duration
		status   OrderStatus
		products []string
	}{
		{"ORD-7782-X", 12 * 24 * time.Hour, StatusDelivered, []string{"prod_1", "prod_8"}},
		{"ORD-9921-Y", 90 * 24 * time.Hour, StatusDelivered, []string{"prod_4"}}, // outside the return window
		{"ORD-3345-Z", 9 * 24 * time.Hour, StatusDelivered, []string{"prod_9"}},
		{"ORD-1122-A", 5 * 24 * time.Hour, StatusReturnInitiated, []string{"prod_2"}},
		{"ORD-6673-M", 2 * 24 * time.Hour, StatusDelivered, []string{"prod_15", "prod_17"}},
	}

	for _, spec := range orders {
		order := &Order{
			ID:           spec.id,
			UserID:       user.ID,
			CustomerName: user.Name,
			Status:       spec.status,
			OrderedAt:    now.Add(-spec.age),
		}
		for _, productID := range spec.products {
			p := byID[productID]
			order.Items = append(order.Items, OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    1,
			})
		}
		if err := CreateOrder(ctx, db, order); err != nil {
			return err
		}
	}

	// The already-initiated return carries its transaction.
	return CreateReturn(ctx, db, &ReturnTransaction{
		OrderID: "ORD-1122-A",
		Kind:    ReturnKindReturn,
		Reason:  "Damaged or defective item",
	})
}
