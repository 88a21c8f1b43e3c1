package port

import (
	"context"

	"github.com/sliceline/pizzaorders/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id uint64) (*domain.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint64, status string) (*domain.Order, error)
	CancelOrder(ctx context.Context, id uint64) (*domain.Order, error)

	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
