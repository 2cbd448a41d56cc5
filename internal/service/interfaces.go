package service

import (
	"context"
	"time"

	"mealdrop/internal/domain"
)

type CatalogRepository interface {
	ListRestaurants() ([]domain.Restaurant, error)
	ListMenu(restaurantID int) ([]domain.MenuItem, error)
	GetMenuItemsByIDs(ids []int) (map[int]domain.MenuItem, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, error)
	ListUserOrders(userID string) ([]domain.Order, error)
	MarkDelivered(orderID int, deliveredAt time.Time, deliveredBy string) error
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type CatalogCache interface {
	GetRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	SetRestaurants(ctx context.Context, restaurants []domain.Restaurant) error
	GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	SetMenu(ctx context.Context, restaurantID int, items []domain.MenuItem) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type CatalogServiceInterface interface {
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
}

type PricingServiceInterface interface {
	Quote(ctx context.Context, items []domain.CartItem) (*domain.PriceQuote, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, userID string, items []domain.CartItem, deliveryAddress string) (*domain.Order, error)
	MarkDelivered(ctx context.Context, orderID int, deliveredBy string) (*domain.Order, bool, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}
