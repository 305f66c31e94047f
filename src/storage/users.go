package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// GetUserByID retrieves a user by id, or nil if not found.
func GetUserByID(ctx context.Context, db sqlscan.Querier, userID string) (*User, error) {
	query := `SELECT id, email, name, password_hash, preferences, wishlist, created_at FROM users WHERE id = ?`
	var u User
	err := sqlscan.Get(ctx, db, &u, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func GetUserByEmail(ctx context.Context, db sqlscan.Querier, email string) (*User, error) {
	query := `SELECT id, email, name, password_hash, preferences, wishlist, created_at FROM users WHERE lower(email) = ?`
	var u User
	err := sqlscan.Get(ctx, db, &u, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user.
func CreateUser(ctx context.Context, db Execer, user *User) error {
	if user.ID == "" {
		user.ID = GenerateID()
	}
	if user.Preferences == nil {
		user.Preferences = JSONStringArray{}
	}
	if user.Wishlist == nil {
		user.Wishlist = JSONStringArray{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (id, email, name, password_hash, preferences, wishlist, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, user.Preferences, user.Wishlist, user.CreatedAt)
	return err
}

// UpdateUserPassword replaces a user's password hash. Returns false if the
// user does not exist.
func UpdateUserPassword(ctx context.Context, db Execer, email, passwordHash string) (bool, error) {
	query := `UPDATE users SET password_hash = ? WHERE lower(email) = ?`
	res, err := db.ExecContext(ctx, query, passwordHash, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ToggleWishlist adds or removes a product from the user's wishlist and
// returns the updated list.
func ToggleWishlist(ctx context.Context, db ExecQuerier, userID, productID string) (JSONStringArray, error) {
	user, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, sql.ErrNoRows
	}

	wishlist := make(JSONStringArray, 0, len(user.Wishlist)+1)
	removed := false
	for _, id := range user.Wishlist {
		if id == productID {
			removed = true
			continue
		}
		wishlist = append(wishlist, id)
	}
	if !removed {
		wishlist = append(wishlist, productID)
	}

	query := `UPDATE users SET wishlist = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, wishlist, userID); err != nil {
		return nil, err
	}
	return wishlist, nil
}
