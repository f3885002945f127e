package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfillment state of a purchased storefront.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusReview     OrderStatus = "review"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Valid reports whether s is one of the known fulfillment states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReview, OrderStatusDelivered:
		return true
	}
	return false
}

// next returns the only status a given status may advance to.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusReview,
	OrderStatusReview:     OrderStatusDelivered,
}

// CanTransitionTo reports whether the fulfillment chain allows moving
// from s to target. Orders only move forward, one step at a time.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return nextStatus[s] == target
}

// StoreOrder is a customer's purchased storefront. Shopify credentials
// are attached by staff once the destination store exists; both fields
// stay empty until then.
type StoreOrder struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	CustomerEmail      string      `json:"customer_email" db:"customer_email"`
	StoreName          string      `json:"store_name" db:"store_name"`
	Status             OrderStatus `json:"status" db:"status"`
	ShopifyDomain      string      `json:"shopify_domain,omitempty" db:"shopify_domain"`
	ShopifyAccessToken string      `json:"-" db:"shopify_access_token"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// HasCredentials reports whether the order can be published to.
func (o *StoreOrder) HasCredentials() bool {
	return o.ShopifyDomain != "" && o.ShopifyAccessToken != ""
}
