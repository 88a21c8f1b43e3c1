package service

import (
	"context"
	"errors"
	"time"

	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
	"go.uber.org/zap"
)

const DefaultDeliveryETA = 45 * time.Minute

type Service struct {
	repo              port.Repository
	deliveryETA       time.Duration
	strictTransitions bool
	clock             func() time.Time
	logger            *zap.Logger
}

func NewService(repo port.Repository, deliveryETA time.Duration,
	strictTransitions bool, logger *zap.Logger) (*Service, error) {
	if deliveryETA <= 0 {
		deliveryETA = DefaultDeliveryETA
	}
	return &Service{
		repo:              repo,
		deliveryETA:       deliveryETA,
		strictTransitions: strictTransitions,
		clock:             time.Now,
		logger:            logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusNew
	} else if _, err := domain.ParseOrderStatus(string(order.Status)); err != nil {
		return nil, &domain.ValidationError{Field: "status", Reason: "is not a known value"}
	}

	seq, err := s.repo.NextOrderSeq(ctx)
	if err != nil {
		s.logger.Error("Next order sequence", zap.Error(err))
		return nil, domain.ErrInternal
	}

	now := s.clock()
	order.Number = formatOrderNumber(now, seq)
	order.EstimatedDeliveryAt = now.Add(s.deliveryETA)

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, id)
}

func (s *Service) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return s.repo.ReadOrderByNumber(ctx, number)
}

func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uint64, status string) (*domain.Order, error) {
	target, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, domain.ErrBadOrderStatus
	}

	if s.strictTransitions {
		order, err := s.repo.ReadOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if !order.Status.CanTransitionTo(target) {
			return nil, domain.ErrStatusNotReachable
		}
	}

	return s.repo.UpdateOrderStatus(ctx, id, target)
}

// CancelOrder sets the status to cancelled regardless of the current state.
// Cancelling an already cancelled order succeeds and changes nothing.
func (s *Service) CancelOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusCancelled {
		return order, nil
	}
	return s.repo.UpdateOrderStatus(ctx, id, domain.OrderStatusCancelled)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}
