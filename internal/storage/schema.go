package storage

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables the service needs. Seeding catalog
// data is an external concern.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			image_url TEXT,
			cuisine TEXT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			total DOUBLE PRECISION NOT NULL CHECK (total >= 0),
			delivery_address TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'placed',
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			delivered_at TIMESTAMPTZ,
			delivered_by TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL REFERENCES menu_items(id),
			quantity INT NOT NULL CHECK (quantity > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
