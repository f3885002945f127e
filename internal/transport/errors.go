package transport

import (
	"errors"
	"net/http"

	"storeforge/internal/domain"
	"storeforge/internal/middleware"
	"storeforge/internal/repository"
	"storeforge/internal/rewrite"
	"storeforge/internal/scrape"
	"storeforge/internal/shopify"

	"go.uber.org/zap"
)

// respondPipelineError maps the pipeline error taxonomy onto HTTP
// responses. Extraction and publish failures relay the upstream
// message verbatim so operators can debug third-party issues;
// rewrite and persistence failures stay generic with the cause
// logged server-side only.
func respondPipelineError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, validationErr.Message)
		return
	}

	var extractionErr *scrape.ExtractionError
	if errors.As(err, &extractionErr) {
		logger.Warn("Extraction failed", zap.String("url", extractionErr.URL), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, extractionErr.Message)
		return
	}

	var rewriteErr *rewrite.Error
	if errors.As(err, &rewriteErr) {
		logger.Error("Rewrite failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to rewrite product copy")
		return
	}

	var publishErr *shopify.PublishError
	if errors.As(err, &publishErr) {
		logger.Warn("Shopify rejected publish", zap.Int("status", publishErr.StatusCode))
		middleware.RespondWithError(w, http.StatusBadGateway, publishErr.Body)
		return
	}

	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "store order not found")
	default:
		logger.Error("Request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
