package transport

import (
	"net/http"

	"storeforge/internal/domain"
	"storeforge/internal/middleware"
	"storeforge/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateStatusRequest advances an order's fulfillment status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AttachCredentialsRequest connects a Shopify store to an order
type AttachCredentialsRequest struct {
	ShopifyDomain      string `json:"shopify_domain" validate:"required"`
	ShopifyAccessToken string `json:"shopify_access_token" validate:"required"`
}

// PublishRequest uploads a product to an order's store
type PublishRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// OrderListResponse is a paginated order listing
type OrderListResponse struct {
	Orders   []*domain.StoreOrder `json:"orders"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// OrderHandler handles HTTP requests for store orders and publishing.
type OrderHandler struct {
	orders    service.OrderService
	publisher service.PublishService
	logger    *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, publisher service.PublishService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterRoutes registers order routes. rateLimit guards publishing;
// credential attachment is admin only.
func (h *OrderHandler) RegisterRoutes(r chi.Router, rateLimit, admin func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.With(admin).Put("/{id}/credentials", h.AttachCredentials)
		r.With(rateLimit).Post("/{id}/publish", h.Publish)
	})
}

// List returns a page of store orders, optionally filtered by status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	if pageSize > 100 {
		pageSize = 100
	}

	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, total, err := h.orders.List(r.Context(), status, page, pageSize)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderListResponse{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns one store order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus advances an order along the fulfillment chain.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req UpdateStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.AdvanceStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	h.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", string(order.Status)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// AttachCredentials stores Shopify credentials on an order.
func (h *OrderHandler) AttachCredentials(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req AttachCredentialsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.AttachCredentials(r.Context(), id, req.ShopifyDomain, req.ShopifyAccessToken)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	h.logger.Info("Shopify credentials attached", zap.String("order_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Publish uploads a product to the store behind an order and returns
// the created remote product plus per-variant image association
// outcomes.
func (h *OrderHandler) Publish(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req PublishRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	result, err := h.publisher.Publish(r.Context(), orderID, productID)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	h.logger.Info("Product published",
		zap.String("order_id", orderID.String()),
		zap.String("product_id", productID.String()),
		zap.Int64("remote_id", result.Product.ID),
	)
	middleware.RespondWithJSON(w, http.StatusOK, result)
}
