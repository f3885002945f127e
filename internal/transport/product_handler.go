package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storeforge/internal/domain"
	"storeforge/internal/middleware"
	"storeforge/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Importer turns a supplier URL into a reviewable draft.
type Importer interface {
	Import(ctx context.Context, url string) (*domain.ProductDraft, error)
}

// ImportRequest is the import trigger payload
type ImportRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// SaveProductRequest is the draft persistence payload
type SaveProductRequest struct {
	Title          string                `json:"title" validate:"required"`
	Description    string                `json:"description" validate:"required"`
	Images         []string              `json:"images"`
	Variants       []domain.VariantGroup `json:"variants"`
	SourceURL      string                `json:"source_url" validate:"required,url"`
	Price          float64               `json:"price" validate:"gte=0"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	Niche          string                `json:"niche,omitempty"`
}

// ProductListResponse is a paginated product listing
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ProductHandler handles HTTP requests for imports and the product
// catalog.
type ProductHandler struct {
	importer Importer
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(importer Importer, products repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		importer: importer,
		products: products,
		logger:   logger,
	}
}

// RegisterRoutes registers import and product routes. rateLimit guards
// the import endpoint; admin guards destructive operations.
func (h *ProductHandler) RegisterRoutes(r chi.Router, rateLimit, admin func(http.Handler) http.Handler) {
	r.With(rateLimit).Post("/api/imports", h.Import)

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.With(admin).Delete("/{id}", h.Delete)
	})
}

// Import runs the extraction/rewrite pipeline for a supplier URL and
// returns the resulting draft without persisting anything.
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.importer.Import(r.Context(), req.URL)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, draft)
}

// Create persists an operator-reviewed draft as a product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	product := &domain.Product{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		Images:         req.Images,
		Variants:       req.Variants,
		SourceURL:      req.SourceURL,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Niche:          req.Niche,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		h.logger.Error("Failed to save product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List returns a page of products, optionally filtered by niche.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	if pageSize > 100 {
		pageSize = 100
	}

	products, total, err := h.products.List(r.Context(), r.URL.Query().Get("niche"), page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns one product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update overwrites an existing product's editable fields.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req SaveProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Images:         req.Images,
		Variants:       req.Variants,
		SourceURL:      req.SourceURL,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Niche:          req.Niche,
		UpdatedAt:      time.Now(),
	}

	if err := h.products.Update(r.Context(), product); err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondPipelineError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
