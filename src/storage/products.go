package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// ListProducts returns catalog entries, optionally filtered by category.
func ListProducts(ctx context.Context, db sqlscan.Querier, category string) ([]Product, error) {
	var products []Product
	var err error
	if category != "" {
		query := `SELECT id, name, price, color, size, category, tags, image_url FROM products WHERE category = ? ORDER BY name`
		err = sqlscan.Select(ctx, db, &products, query, category)
	} else {
		query := `SELECT id, name, price, color, size, category, tags, image_url FROM products ORDER BY name`
		err = sqlscan.Select(ctx, db, &products, query)
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID retrieves a product, or nil if not found.
func GetProductByID(ctx context.Context, db sqlscan.Querier, productID string) (*Product, error) {
	query := `SELECT id, name, price, color, size, category, tags, image_url FROM products WHERE id = ?`
	var p Product
	err := sqlscan.Get(ctx, db, &p, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a catalog entry. Used by seeding; products are
// read-only to the rest of the system.
func CreateProduct(ctx context.Context, db Execer, product *Product) error {
	if product.ID == "" {
		product.ID = GenerateID()
	}
	if product.Tags == nil {
		product.Tags = JSONStringArray{}
	}
	query := `INSERT INTO products (id, name, price, color, size, category, tags, image_url) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, product.ID, product.Name, product.Price, product.Color, product.Size, product.Category, product.Tags, product.ImageURL)
	return err
}
