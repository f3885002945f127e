package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storeforge/internal/domain"
	"storeforge/internal/repository"

	"github.com/google/uuid"
)

type mockOrderRepository struct {
	orders map[uuid.UUID]*domain.StoreOrder
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.StoreOrder)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.StoreOrder) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StoreOrder, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepository) List(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]*domain.StoreOrder, int, error) {
	var out []*domain.StoreOrder
	for _, order := range m.orders {
		if status == "" || order.Status == status {
			out = append(out, order)
		}
	}
	return out, len(out), nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepository) AttachCredentials(ctx context.Context, id uuid.UUID, shopifyDomain, accessToken string) error {
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.ShopifyDomain = shopifyDomain
	order.ShopifyAccessToken = accessToken
	return nil
}

func seedOrder(repo *mockOrderRepository, status domain.OrderStatus) *domain.StoreOrder {
	order := &domain.StoreOrder{
		ID:            uuid.New(),
		CustomerEmail: "kund@example.com",
		StoreName:     "Testbutiken",
		Status:        status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	repo.orders[order.ID] = order
	return order
}

func TestAdvanceStatusFollowsFulfillmentChain(t *testing.T) {
	statuses := []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusInProgress,
		domain.OrderStatusReview,
		domain.OrderStatusDelivered,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			repo := newMockOrderRepository()
			order := seedOrder(repo, from)
			svc := NewOrderService(repo)

			updated, err := svc.AdvanceStatus(context.Background(), order.ID, to)

			allowed := from.CanTransitionTo(to)
			if allowed {
				if err != nil {
					t.Errorf("AdvanceStatus(%s -> %s) returned error: %v", from, to, err)
					continue
				}
				if updated.Status != to {
					t.Errorf("AdvanceStatus(%s -> %s) left status %s", from, to, updated.Status)
				}
				continue
			}

			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("AdvanceStatus(%s -> %s) error = %v, want *domain.ValidationError", from, to, err)
			}
			if stored := repo.orders[order.ID]; stored.Status != from {
				t.Errorf("rejected transition %s -> %s still mutated status to %s", from, to, stored.Status)
			}
		}
	}
}

func TestAdvanceStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMockOrderRepository()
	order := seedOrder(repo, domain.OrderStatusPending)
	svc := NewOrderService(repo)

	_, err := svc.AdvanceStatus(context.Background(), order.ID, "shipped")

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
}

func TestAdvanceStatusUnknownOrder(t *testing.T) {
	svc := NewOrderService(newMockOrderRepository())

	_, err := svc.AdvanceStatus(context.Background(), uuid.New(), domain.OrderStatusInProgress)
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Fatalf("error = %v, want ErrOrderNotFound", err)
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewOrderService(newMockOrderRepository())

	_, _, err := svc.List(context.Background(), "cancelled", 1, 20)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
}

func TestListAllowsEmptyStatusFilter(t *testing.T) {
	repo := newMockOrderRepository()
	seedOrder(repo, domain.OrderStatusPending)
	seedOrder(repo, domain.OrderStatusDelivered)
	svc := NewOrderService(repo)

	orders, total, err := svc.List(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Errorf("List returned %d/%d orders, want 2", len(orders), total)
	}
}

func TestAttachCredentials(t *testing.T) {
	repo := newMockOrderRepository()
	order := seedOrder(repo, domain.OrderStatusInProgress)
	svc := NewOrderService(repo)

	updated, err := svc.AttachCredentials(context.Background(), order.ID, "shop.myshopify.com", "shpat_x")
	if err != nil {
		t.Fatalf("AttachCredentials returned error: %v", err)
	}

	if !updated.HasCredentials() {
		t.Error("order has no credentials after attaching them")
	}
	stored := repo.orders[order.ID]
	if stored.ShopifyDomain != "shop.myshopify.com" || stored.ShopifyAccessToken != "shpat_x" {
		t.Errorf("stored credentials = %q / %q", stored.ShopifyDomain, stored.ShopifyAccessToken)
	}
}

func TestAttachCredentialsRequiresBothFields(t *testing.T) {
	repo := newMockOrderRepository()
	order := seedOrder(repo, domain.OrderStatusInProgress)
	svc := NewOrderService(repo)

	for _, pair := range [][2]string{{"", "shpat_x"}, {"shop.myshopify.com", ""}, {"", ""}} {
		_, err := svc.AttachCredentials(context.Background(), order.ID, pair[0], pair[1])

		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("AttachCredentials(%q, %q) error = %v, want *domain.ValidationError", pair[0], pair[1], err)
		}
	}
}
