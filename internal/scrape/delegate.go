package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storeforge/internal/domain"
	"storeforge/internal/urlnorm"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one extraction end to end. The delegate itself
// waits up to ~20s for the product title to render, so this must be
// comfortably larger.
const DefaultTimeout = 45 * time.Second

// Delegate extracts listings by calling the deployed scraping service.
type Delegate struct {
	client    *http.Client
	baseURL   string
	snapshots SnapshotStore
	logger    *zap.Logger
}

// NewDelegate creates an Extractor backed by the scraping service at
// baseURL. snapshots may be nil to disable diagnostic captures.
func NewDelegate(baseURL string, timeout time.Duration, snapshots SnapshotStore, logger *zap.Logger) *Delegate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Delegate{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		snapshots: snapshots,
		logger:    logger,
	}
}

type extractRequest struct {
	URL string `json:"url"`
}

// extractResponse is the scraping service's wire format. Variant option
// labels come from image alt text on the supplier page; group names
// have their trailing parenthetical counts already stripped.
type extractResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Images      []string `json:"images"`
	Variants    []struct {
		Name    string `json:"name"`
		Options []struct {
			Label string `json:"label"`
			Image string `json:"image,omitempty"`
		} `json:"options"`
	} `json:"variants"`
	Error string `json:"error,omitempty"`
}

// Extract posts the supplier URL to the scraping service and maps the
// reply. Carousel images are normalized here; variant option images are
// left on the options and never merged into the carousel list.
func (d *Delegate) Extract(ctx context.Context, url string) (*domain.ScrapedProduct, error) {
	body, err := json.Marshal(extractRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("marshal extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &ExtractionError{URL: url, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExtractionError{URL: url, Message: "read response: " + err.Error()}
	}

	d.saveSnapshot(ctx, url, raw)

	var payload extractResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ExtractionError{URL: url, Message: "malformed scraper response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK || payload.Error != "" {
		msg := payload.Error
		if msg == "" {
			msg = fmt.Sprintf("scraper returned status %d", resp.StatusCode)
		}
		return nil, &ExtractionError{URL: url, Message: msg}
	}

	product := &domain.ScrapedProduct{
		Title:       payload.Title,
		Description: payload.Description,
		Images:      urlnorm.NormalizeAll(payload.Images),
		Variants:    make([]domain.VariantGroup, 0, len(payload.Variants)),
	}

	for _, g := range payload.Variants {
		group := domain.VariantGroup{
			Name:    g.Name,
			Options: make([]domain.VariantOption, 0, len(g.Options)),
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, domain.VariantOption{
				Label: o.Label,
				Image: urlnorm.Normalize(o.Image),
			})
		}
		product.Variants = append(product.Variants, group)
	}

	return product, nil
}

// saveSnapshot persists the raw delegate payload for debugging.
func (d *Delegate) saveSnapshot(ctx context.Context, url string, raw []byte) {
	if d.snapshots == nil {
		return
	}

	snapshot := &domain.ScrapeSnapshot{
		ID:        uuid.New(),
		SourceURL: url,
		Payload:   raw,
		CreatedAt: time.Now(),
	}
	if err := d.snapshots.Create(ctx, snapshot); err != nil {
		d.logger.Warn("Failed to save scrape snapshot",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}
