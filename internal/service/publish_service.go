package service

import (
	"context"

	"storeforge/internal/domain"
	"storeforge/internal/repository"
	"storeforge/internal/shopify"

	"github.com/google/uuid"
)

// ProductPublisher uploads a product to the store behind an order.
type ProductPublisher interface {
	Publish(ctx context.Context, order *domain.StoreOrder, product *domain.Product) (*shopify.PublishResult, error)
}

// PublishService looks up the order and product behind a publish
// request and hands them to the publisher. A missing product and
// missing credentials are distinct failures: the former surfaces as
// a not-found, the latter as a validation error, before any call to
// Shopify is made.
type PublishService interface {
	Publish(ctx context.Context, orderID, productID uuid.UUID) (*shopify.PublishResult, error)
}

type publishService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	publisher ProductPublisher
}

// NewPublishService creates a new instance of PublishService
func NewPublishService(orders repository.OrderRepository, products repository.ProductRepository, publisher ProductPublisher) PublishService {
	return &publishService{
		orders:    orders,
		products:  products,
		publisher: publisher,
	}
}

func (s *publishService) Publish(ctx context.Context, orderID, productID uuid.UUID) (*shopify.PublishResult, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.publisher.Publish(ctx, order, product)
}
