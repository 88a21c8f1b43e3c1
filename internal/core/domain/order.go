package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

// Status values are the storefront labels and are stored as-is.
const (
	OrderStatusNew            OrderStatus = "Новый"
	OrderStatusConfirmed      OrderStatus = "Подтвержден"
	OrderStatusPreparing      OrderStatus = "Готовится"
	OrderStatusOutForDelivery OrderStatus = "В пути"
	OrderStatusDelivered      OrderStatus = "Доставлен"
	OrderStatusCancelled      OrderStatus = "Отменен"
)

type PaymentMethod string

const (
	PaymentMethodCash           PaymentMethod = "Наличные"
	PaymentMethodCardOnDelivery PaymentMethod = "Картой при получении"
	PaymentMethodOnline         PaymentMethod = "Онлайн"
)

type Customer struct {
	Name  string
	Phone string
	Email string
}

type Delivery struct {
	Address   string
	Apartment string
	Entrance  string
	Floor     string
	Comment   string
}

type OrderItem struct {
	ProductID uint64
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
	Product   *Product
}

type Order struct {
	ID            uint64
	Number        string
	Customer      Customer
	Delivery      Delivery
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	DeliveryFee   decimal.Decimal
	Status        OrderStatus
	PaymentMethod PaymentMethod
	// EstimatedDeliveryAt is assigned once at creation and never recomputed.
	EstimatedDeliveryAt time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type OrderFilter struct {
	Status        *OrderStatus
	CustomerPhone string
}

// Validate checks the fields required for creation. TotalAmount is trusted
// as supplied: the storefront folds discounts and fees into it upstream.
func (o *Order) Validate() error {
	if o.Customer.Name == "" {
		return &ValidationError{Field: "customer.name", Reason: "is required"}
	}
	if o.Customer.Phone == "" {
		return &ValidationError{Field: "customer.phone", Reason: "is required"}
	}
	if o.Customer.Email == "" {
		return &ValidationError{Field: "customer.email", Reason: "is required"}
	}
	if o.Delivery.Address == "" {
		return &ValidationError{Field: "delivery.address", Reason: "is required"}
	}
	if len(o.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for _, item := range o.Items {
		if item.ProductID == 0 {
			return &ValidationError{Field: "items.productId", Reason: "is required"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: "items.quantity", Reason: "must be at least 1"}
		}
	}
	if !o.TotalAmount.IsPos() {
		return &ValidationError{Field: "totalAmount", Reason: "must be positive"}
	}
	if _, err := ParsePaymentMethod(string(o.PaymentMethod)); err != nil {
		return &ValidationError{Field: "paymentMethod", Reason: "is not a known method"}
	}
	return nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentMethodCash, PaymentMethodCardOnDelivery, PaymentMethodOnline:
		return m, nil
	}
	return "", ErrBadPaymentMethod
}
