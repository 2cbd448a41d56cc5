package domain

// OrderStatus is the closed set of order lifecycle states. Transitions
// move forward along the delivery chain; delivered and cancelled are
// terminal.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:         {StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
