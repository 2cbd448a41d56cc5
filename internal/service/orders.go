package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mealdrop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound    = errors.New("menu item not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrEmptyAddress    = errors.New("delivery address is required")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCancelledOrder  = errors.New("cannot deliver a cancelled order")
)

type OrderService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	publisher EventPublisher
	qrEncoder QRGenerator
}

func NewOrderService(orders OrderRepository, catalog CatalogRepository, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		publisher: publisher,
		qrEncoder: qr,
	}
}

// Create validates the checkout request, recomputes the total from the
// catalog and persists the order with status placed. The total is
// always server-computed; lines store only menu item id and quantity.
func (s *OrderService) Create(ctx context.Context, userID string, items []domain.CartItem, deliveryAddress string) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	address := strings.TrimSpace(deliveryAddress)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	dbItems, err := s.catalog.GetMenuItemsByIDs(uniqueItemIDs(items))
	if err != nil {
		return nil, err
	}

	var total float64
	lines := make([]domain.OrderLine, 0, len(items))
	restaurantID := 0
	for _, item := range items {
		m, ok := dbItems[item.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrItemNotFound, item.MenuItemID)
		}
		if item.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
		if restaurantID == 0 {
			restaurantID = m.RestaurantID
		} else if m.RestaurantID != restaurantID {
			return nil, ErrMixedRestaurant
		}
		total += m.Price * float64(item.Qty)
		lines = append(lines, domain.OrderLine{MenuItemID: item.MenuItemID, Qty: item.Qty})
	}

	order := &domain.Order{
		Reference:       uuid.NewString(),
		UserID:          userID,
		RestaurantID:    restaurantID,
		Items:           lines,
		Total:           total,
		DeliveryAddress: address,
		Status:          domain.StatusPlaced,
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, err
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.Reference); err == nil {
			if err := s.orders.SaveQRCode(order.ID, qr); err != nil {
				log.Printf("[mealdrop] failed to store QR code for order %d: %v", order.ID, err)
			}
		}
	}

	s.publish(ctx, domain.EventOrderPlaced, order)

	return order, nil
}

// MarkDelivered forces an order straight to delivered. Repeating the
// call on an already-delivered order is a no-op success; the second
// return value reports that case so callers can say so.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID int, deliveredBy string) (*domain.Order, bool, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrOrderNotFound
		}
		return nil, false, err
	}

	if order.Status == domain.StatusDelivered {
		return order, true, nil
	}
	if !order.Status.CanTransitionTo(domain.StatusDelivered) {
		return nil, false, ErrCancelledOrder
	}

	now := time.Now().UTC()
	if err := s.orders.MarkDelivered(orderID, now, deliveredBy); err != nil {
		return nil, false, err
	}

	order.Status = domain.StatusDelivered
	order.DeliveredAt = &now
	if deliveredBy != "" {
		order.DeliveredBy = deliveredBy
	}

	s.publish(ctx, domain.EventOrderDelivered, order)

	return order, false, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListUserOrders(userID)
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.orders.GetQRCode(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		order, err := s.orders.GetOrder(orderID)
		if err != nil {
			return nil, err
		}
		if regenerated, err := s.qrEncoder.Generate(order.Reference); err == nil {
			if err := s.orders.SaveQRCode(orderID, regenerated); err != nil {
				log.Printf("[mealdrop] failed to cache regenerated QR code: %v", err)
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

// publish emits a lifecycle event; failures are logged, never surfaced.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		Reference:    order.Reference,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Total:        order.Total,
		Status:       order.Status,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[mealdrop] failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
var _ PricingServiceInterface = (*PricingService)(nil)
