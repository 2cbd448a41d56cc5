package service

import (
	"context"
	"errors"
	"fmt"

	"mealdrop/internal/domain"
)

var (
	ErrNoItems         = errors.New("no items provided")
	ErrInvalidItem     = errors.New("invalid menu item")
	ErrMixedRestaurant = errors.New("items must be from one restaurant")
)

// PricingService recomputes cart totals from the current catalog.
// Client-supplied prices and subtotals are never trusted; the cart is
// re-priced wholesale on every call.
type PricingService struct {
	catalog CatalogRepository
}

func NewPricingService(catalog CatalogRepository) *PricingService {
	return &PricingService{catalog: catalog}
}

// Quote prices the given cart lines. Quantities below 1 are floored to
// 1 here; order creation is stricter and rejects them instead.
func (s *PricingService) Quote(ctx context.Context, items []domain.CartItem) (*domain.PriceQuote, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	normalized := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		normalized = append(normalized, domain.CartItem{MenuItemID: item.MenuItemID, Qty: qty})
	}

	dbItems, err := s.catalog.GetMenuItemsByIDs(uniqueItemIDs(normalized))
	if err != nil {
		return nil, err
	}

	priced := make([]domain.PricedItem, 0, len(normalized))
	restaurants := map[int]bool{}
	for _, item := range normalized {
		m, ok := dbItems[item.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrInvalidItem, item.MenuItemID)
		}
		priced = append(priced, domain.PricedItem{
			MenuItemID: item.MenuItemID,
			Name:       m.Name,
			Price:      m.Price,
			Qty:        item.Qty,
			Subtotal:   m.Price * float64(item.Qty),
		})
		restaurants[m.RestaurantID] = true
	}

	// Enforce the single-restaurant invariant before computing any total.
	if len(restaurants) > 1 {
		return nil, ErrMixedRestaurant
	}

	quote := &domain.PriceQuote{Items: priced}
	for _, p := range priced {
		quote.Total += p.Subtotal
	}
	for id := range restaurants {
		quote.RestaurantID = id
	}

	return quote, nil
}

func uniqueItemIDs(items []domain.CartItem) []int {
	seen := map[int]bool{}
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if seen[item.MenuItemID] {
			continue
		}
		seen[item.MenuItemID] = true
		ids = append(ids, item.MenuItemID)
	}
	return ids
}
