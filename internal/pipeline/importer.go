// Package pipeline sequences extraction, normalization and rewriting
// into a reviewable product draft.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"storeforge/internal/domain"
	"storeforge/internal/rewrite"
	"storeforge/internal/scrape"
	"storeforge/internal/urlnorm"

	"go.uber.org/zap"
)

// SupplierOriginPrefix is the only origin imports are accepted from.
const SupplierOriginPrefix = "https://www.alibaba.com/"

// Importer turns a supplier URL into a ProductDraft.
type Importer struct {
	extractor scrape.Extractor
	rewriter  rewrite.Rewriter
	logger    *zap.Logger
}

// NewImporter creates an Importer.
func NewImporter(extractor scrape.Extractor, rewriter rewrite.Rewriter, logger *zap.Logger) *Importer {
	return &Importer{
		extractor: extractor,
		rewriter:  rewriter,
		logger:    logger,
	}
}

// Import validates the URL origin, extracts the listing, rewrites the
// copy and assembles a draft. Only text is rewritten; images and
// variants pass through from extraction with their URLs normalized.
// Every call is a fresh extraction and a fresh rewrite: there is no
// caching or deduplication by URL.
func (i *Importer) Import(ctx context.Context, url string) (*domain.ProductDraft, error) {
	if !strings.HasPrefix(url, SupplierOriginPrefix) {
		return nil, &domain.ValidationError{Message: "url must be an alibaba.com product link"}
	}

	scraped, err := i.extractor.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", url, err)
	}

	if strings.TrimSpace(scraped.Title) == "" {
		return nil, &scrape.ExtractionError{URL: url, Message: "listing has no usable title"}
	}

	rewritten, err := i.rewriter.Rewrite(ctx, scraped.Title, scraped.Description)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", url, err)
	}

	draft := &domain.ProductDraft{
		Title:       rewritten.Title,
		Description: rewritten.Description,
		Images:      urlnorm.NormalizeAll(scraped.Images),
		Variants:    normalizeVariants(scraped.Variants),
		SourceURL:   url,
	}

	i.logger.Info("Imported product draft",
		zap.String("source_url", url),
		zap.String("title", draft.Title),
		zap.Int("images", len(draft.Images)),
		zap.Int("variant_groups", len(draft.Variants)),
	)

	return draft, nil
}

func normalizeVariants(groups []domain.VariantGroup) []domain.VariantGroup {
	out := make([]domain.VariantGroup, len(groups))
	for gi, g := range groups {
		options := make([]domain.VariantOption, len(g.Options))
		for oi, o := range g.Options {
			options[oi] = domain.VariantOption{
				Label: o.Label,
				Image: urlnorm.Normalize(o.Image),
			}
		}
		out[gi] = domain.VariantGroup{Name: g.Name, Options: options}
	}
	return out
}
