package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"mealdrop/internal/domain"
)

type fakeCatalog struct {
	restaurants []domain.Restaurant
	menus       map[int][]domain.MenuItem
	items       map[int]domain.MenuItem
	err         error
}

func (f *fakeCatalog) ListRestaurants() ([]domain.Restaurant, error) {
	return f.restaurants, f.err
}

func (f *fakeCatalog) ListMenu(restaurantID int) ([]domain.MenuItem, error) {
	return f.menus[restaurantID], f.err
}

func (f *fakeCatalog) GetMenuItemsByIDs(ids []int) (map[int]domain.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[int]domain.MenuItem{}
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	nextID int
	orders map[int]*domain.Order
	qr     map[int][]byte
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int]*domain.Order{}, qr: map[int][]byte{}}
}

func (f *fakeOrderRepo) CreateOrder(order *domain.Order) error {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now().UTC()
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetOrder(orderID int) (*domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) ListUserOrders(userID string) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (f *fakeOrderRepo) MarkDelivered(orderID int, deliveredAt time.Time, deliveredBy string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return sql.ErrNoRows
	}
	order.Status = domain.StatusDelivered
	order.DeliveredAt = &deliveredAt
	if deliveredBy != "" {
		order.DeliveredBy = deliveredBy
	}
	return nil
}

func (f *fakeOrderRepo) SaveQRCode(orderID int, qr []byte) error {
	f.qr[orderID] = qr
	return nil
}

func (f *fakeOrderRepo) GetQRCode(orderID int) ([]byte, error) {
	if _, ok := f.orders[orderID]; !ok {
		return nil, sql.ErrNoRows
	}
	return f.qr[orderID], nil
}

type recordingPublisher struct {
	events []domain.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

type stubQR struct{}

func (stubQR) Generate(reference string) ([]byte, error) {
	return []byte("qr:" + reference), nil
}
