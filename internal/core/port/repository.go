package port

import (
	"context"

	"github.com/sliceline/pizzaorders/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, id uint64) (*domain.Order, error)
	ReadOrderByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error)

	// NextOrderSeq returns the next value of the store-owned order number
	// sequence. Concurrent callers always observe distinct values.
	NextOrderSeq(ctx context.Context) (uint64, error)

	// Product catalog, read-only
	ReadProduct(ctx context.Context, id uint64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
