package service

import (
	"context"
	"testing"

	"mealdrop/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		items: map[int]domain.MenuItem{
			1: {ID: 1, RestaurantID: 10, Name: "Margherita", Price: 100},
			2: {ID: 2, RestaurantID: 10, Name: "Garlic Bread", Price: 50},
			3: {ID: 3, RestaurantID: 20, Name: "Sushi Roll", Price: 80},
		},
	}
}

func TestPricingService_Quote(t *testing.T) {
	svc := NewPricingService(testCatalog())
	ctx := context.Background()

	tests := []struct {
		name          string
		items         []domain.CartItem
		expectedTotal float64
		expectedRest  int
		expectedError error
	}{
		{
			name:          "sums_price_times_qty",
			items:         []domain.CartItem{{MenuItemID: 1, Qty: 2}, {MenuItemID: 2, Qty: 1}},
			expectedTotal: 250,
			expectedRest:  10,
		},
		{
			name:          "single_item",
			items:         []domain.CartItem{{MenuItemID: 3, Qty: 3}},
			expectedTotal: 240,
			expectedRest:  20,
		},
		{
			name:          "zero_qty_floored_to_one",
			items:         []domain.CartItem{{MenuItemID: 1, Qty: 0}},
			expectedTotal: 100,
			expectedRest:  10,
		},
		{
			name:          "negative_qty_floored_to_one",
			items:         []domain.CartItem{{MenuItemID: 2, Qty: -4}},
			expectedTotal: 50,
			expectedRest:  10,
		},
		{
			name:          "empty_cart",
			items:         nil,
			expectedError: ErrNoItems,
		},
		{
			name:          "unknown_item",
			items:         []domain.CartItem{{MenuItemID: 1, Qty: 1}, {MenuItemID: 999, Qty: 1}},
			expectedError: ErrInvalidItem,
		},
		{
			name:          "mixed_restaurants",
			items:         []domain.CartItem{{MenuItemID: 1, Qty: 1}, {MenuItemID: 3, Qty: 1}},
			expectedError: ErrMixedRestaurant,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			quote, err := svc.Quote(ctx, testCase.items)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, quote)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expectedTotal, quote.Total)
			assert.Equal(t, testCase.expectedRest, quote.RestaurantID)
			assert.Len(t, quote.Items, len(testCase.items))
		})
	}
}

func TestPricingService_Quote_LineDetails(t *testing.T) {
	svc := NewPricingService(testCatalog())

	quote, err := svc.Quote(context.Background(), []domain.CartItem{
		{MenuItemID: 1, Qty: 2},
		{MenuItemID: 2, Qty: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PricedItem{MenuItemID: 1, Name: "Margherita", Price: 100, Qty: 2, Subtotal: 200}, quote.Items[0])
	assert.Equal(t, domain.PricedItem{MenuItemID: 2, Name: "Garlic Bread", Price: 50, Qty: 1, Subtotal: 50}, quote.Items[1])
}

func TestPricingService_Quote_NamesOffendingItem(t *testing.T) {
	svc := NewPricingService(testCatalog())

	_, err := svc.Quote(context.Background(), []domain.CartItem{{MenuItemID: 999, Qty: 1}})

	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Contains(t, err.Error(), "999")
}

func TestPricingService_Quote_RepeatedLinesKeptSeparate(t *testing.T) {
	svc := NewPricingService(testCatalog())

	quote, err := svc.Quote(context.Background(), []domain.CartItem{
		{MenuItemID: 1, Qty: 1},
		{MenuItemID: 1, Qty: 2},
	})

	assert.NoError(t, err)
	assert.Len(t, quote.Items, 2)
	assert.Equal(t, float64(300), quote.Total)
}
