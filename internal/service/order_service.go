package service

import (
	"context"
	"fmt"

	"storeforge/internal/domain"
	"storeforge/internal/repository"

	"github.com/google/uuid"
)

// OrderService owns the fulfillment rules for store orders.
type OrderService interface {
	List(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]*domain.StoreOrder, int, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.StoreOrder, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, target domain.OrderStatus) (*domain.StoreOrder, error)
	AttachCredentials(ctx context.Context, id uuid.UUID, shopifyDomain, accessToken string) (*domain.StoreOrder, error)
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) List(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]*domain.StoreOrder, int, error) {
	if status != "" && !status.Valid() {
		return nil, 0, &domain.ValidationError{Message: "unknown order status: " + string(status)}
	}
	return s.orders.List(ctx, status, page, pageSize)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*domain.StoreOrder, error) {
	return s.orders.FindByID(ctx, id)
}

// AdvanceStatus moves an order one step along the fulfillment chain
// pending -> in-progress -> review -> delivered. Skipping steps or
// moving backwards is rejected.
func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, target domain.OrderStatus) (*domain.StoreOrder, error) {
	if !target.Valid() {
		return nil, &domain.ValidationError{Message: "unknown order status: " + string(target)}
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("cannot move order from %s to %s", order.Status, target),
		}
	}

	if err := s.orders.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	order.Status = target
	return order, nil
}

// AttachCredentials stores the destination shop's domain and access
// token on an order so products can be published to it.
func (s *orderService) AttachCredentials(ctx context.Context, id uuid.UUID, shopifyDomain, accessToken string) (*domain.StoreOrder, error) {
	if shopifyDomain == "" || accessToken == "" {
		return nil, &domain.ValidationError{Message: "shopify domain and access token are required"}
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orders.AttachCredentials(ctx, id, shopifyDomain, accessToken); err != nil {
		return nil, err
	}

	order.ShopifyDomain = shopifyDomain
	order.ShopifyAccessToken = accessToken
	return order, nil
}
