// Package scrape extracts supplier product listings. The heavy lifting
// (headless rendering of the supplier's single-page app) happens in a
// separately deployed scraping service; this package talks to it over
// HTTP and maps its response into the domain model.
package scrape

import (
	"context"
	"fmt"

	"storeforge/internal/domain"
)

// Extractor produces a ScrapedProduct for a supplier product URL.
// Extraction is all-or-nothing for title and description; images and
// variants may legitimately come back empty.
type Extractor interface {
	Extract(ctx context.Context, url string) (*domain.ScrapedProduct, error)
}

// ExtractionError reports that the supplier page could not be read:
// the delegate was unreachable, timed out waiting for the page, or
// returned a non-success response. Message carries the upstream text
// verbatim for the operator.
type ExtractionError struct {
	URL     string
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, e.Message)
}

// SnapshotStore persists raw extraction payloads for debugging.
// Writes are best-effort; extraction never fails because a snapshot
// could not be saved.
type SnapshotStore interface {
	Create(ctx context.Context, snapshot *domain.ScrapeSnapshot) error
}
