package domain

import "time"

type Restaurant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	ImageURL  string    `json:"image"`
	Cuisine   []string  `json:"cuisine"`
	CreatedAt time.Time `json:"createdAt"`
}

type MenuItem struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CartItem is the client-submitted line: the cart itself is never stored
// server-side, it arrives wholesale on every pricing and checkout call.
type CartItem struct {
	MenuItemID int `json:"menuItemId"`
	Qty        int `json:"qty"`
}

type PricedItem struct {
	MenuItemID int     `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
	Subtotal   float64 `json:"subtotal"`
}

type PriceQuote struct {
	Items        []PricedItem `json:"items"`
	Total        float64      `json:"total"`
	RestaurantID int          `json:"restaurant"`
}

// OrderLine stores only the menu item reference and quantity; name and
// price are denormalized at read time from the current catalog.
type OrderLine struct {
	MenuItemID int     `json:"menuItemId"`
	Qty        int     `json:"qty"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
}

type Order struct {
	ID              int         `json:"id"`
	Reference       string      `json:"reference"`
	UserID          string      `json:"user"`
	RestaurantID    int         `json:"restaurant"`
	RestaurantName  string      `json:"restaurantName,omitempty"`
	Items           []OrderLine `json:"items"`
	Total           float64     `json:"total"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty"`
	DeliveredBy     string      `json:"deliveredBy,omitempty"`
}

// OrderEvent is published to the order-events topic on lifecycle changes.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      int         `json:"order_id"`
	Reference    string      `json:"reference"`
	UserID       string      `json:"user_id"`
	RestaurantID int         `json:"restaurant_id"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	Timestamp    time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced    = "order_placed"
	EventOrderDelivered = "order_delivered"
)
