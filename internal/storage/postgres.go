package storage

import (
	"database/sql"
	"time"

	"mealdrop/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
        SELECT id, name, COALESCE(address, ''), COALESCE(image_url, ''), COALESCE(cuisine, '{}'), created_at
        FROM restaurants
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ImageURL, pq.Array(&rest.Cuisine), &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}

	return restaurants, rows.Err()
}

func (r *PostgresRepository) ListMenu(restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetMenuItemsByIDs fetches all requested items in one round trip and
// returns them keyed by id. Unknown ids are simply absent from the map.
func (r *PostgresRepository) GetMenuItemsByIDs(ids []int) (map[int]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int]domain.MenuItem, len(ids))
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		items[item.ID] = item
	}

	return items, rows.Err()
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO orders (reference, user_id, restaurant_id, total, delivery_address, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		order.Reference, order.UserID, order.RestaurantID, order.Total, order.DeliveryAddress, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for _, line := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, menu_item_id, quantity)
			VALUES ($1, $2, $3)`,
			order.ID, line.MenuItemID, line.Qty); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	order, err := r.scanOrder(r.DB.QueryRow(`
		SELECT id, reference, user_id, restaurant_id, total, delivery_address, status, created_at, delivered_at, delivered_by
		FROM orders
		WHERE id = $1`, orderID))
	if err != nil {
		return nil, err
	}

	if err := r.attachDetails(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListUserOrders returns the user's orders newest first, each enriched
// with the restaurant name and per-line item names and prices.
func (r *PostgresRepository) ListUserOrders(userID string) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, reference, user_id, restaurant_id, total, delivery_address, status, created_at, delivered_at, delivered_by
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			continue
		}
		if err := r.attachDetails(order); err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

func (r *PostgresRepository) MarkDelivered(orderID int, deliveredAt time.Time, deliveredBy string) error {
	by := sql.NullString{String: deliveredBy, Valid: deliveredBy != ""}
	_, err := r.DB.Exec(`
		UPDATE orders
		SET status = $1, delivered_at = $2, delivered_by = COALESCE($3, delivered_by)
		WHERE id = $4`,
		domain.StatusDelivered, deliveredAt, by, orderID)
	return err
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec(`UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRow(`SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr)
	if err != nil {
		return nil, err
	}
	return qr, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresRepository) scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var deliveredAt sql.NullTime
	var deliveredBy sql.NullString

	err := row.Scan(&order.ID, &order.Reference, &order.UserID, &order.RestaurantID, &order.Total,
		&order.DeliveryAddress, &status, &order.CreatedAt, &deliveredAt, &deliveredBy)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if deliveredAt.Valid {
		t := deliveredAt.Time
		order.DeliveredAt = &t
	}
	if deliveredBy.Valid {
		order.DeliveredBy = deliveredBy.String
	}
	return &order, nil
}

func (r *PostgresRepository) attachDetails(order *domain.Order) error {
	var restaurantName string
	r.DB.QueryRow(`SELECT name FROM restaurants WHERE id = $1`, order.RestaurantID).Scan(&restaurantName)
	order.RestaurantName = restaurantName

	rows, err := r.DB.Query(`
		SELECT oi.menu_item_id, oi.quantity, m.name, m.price
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.MenuItemID, &line.Qty, &line.Name, &line.Price); err != nil {
			continue
		}
		order.Items = append(order.Items, line)
	}

	return rows.Err()
}
