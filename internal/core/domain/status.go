package domain

// statusFlow is the happy path of the order lifecycle. Cancellation is
// reachable from any non-terminal state and is handled in CanTransitionTo.
var statusFlow = map[OrderStatus]OrderStatus{
	OrderStatusNew:            OrderStatusConfirmed,
	OrderStatusConfirmed:      OrderStatusPreparing,
	OrderStatusPreparing:      OrderStatusOutForDelivery,
	OrderStatusOutForDelivery: OrderStatusDelivered,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	}
	return "", ErrBadOrderStatus
}

// Terminal reports whether no transition leads out of the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether next is reachable from s. Re-setting the
// current status is allowed so repeated updates stay idempotent.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return statusFlow[s] == next
}
