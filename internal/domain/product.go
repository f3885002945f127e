package domain

import (
	"time"

	"github.com/google/uuid"
)

// VariantOption is a single selectable value inside a variant group,
// e.g. "Red" inside the "Color" group. The image is optional and, when
// present, shows the product in that specific variant.
type VariantOption struct {
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// VariantGroup is a named axis of product variation with an ordered
// list of options.
type VariantGroup struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// ScrapedProduct is the raw extraction result for a supplier listing.
// It lives only for the duration of one import; Images holds the main
// carousel only and variant option images are kept on the options
// themselves, never folded into Images.
type ScrapedProduct struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	Variants    []VariantGroup `json:"variants"`
}

// ProductDraft is the reviewed-but-not-yet-saved result of an import:
// rewritten title/description combined with the supplier's original
// images and variants. Price, compare-at price and niche are assigned
// by the operator before saving.
type ProductDraft struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Images         []string       `json:"images"`
	Variants       []VariantGroup `json:"variants"`
	SourceURL      string         `json:"source_url"`
	Price          float64        `json:"price,omitempty"`
	CompareAtPrice *float64       `json:"compare_at_price,omitempty"`
	Niche          string         `json:"niche,omitempty"`
}

// Product is a persisted catalog entry. Products are owned by the
// platform, not by any single store order.
type Product struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	Images         []string       `json:"images" db:"images"`
	Variants       []VariantGroup `json:"variants" db:"variants"`
	SourceURL      string         `json:"source_url" db:"source_url"`
	Price          float64        `json:"price" db:"price"`
	CompareAtPrice *float64       `json:"compare_at_price,omitempty" db:"compare_at_price"`
	Niche          string         `json:"niche,omitempty" db:"niche"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// ScrapeSnapshot is a raw diagnostic capture of one extraction. It is
// written best-effort for debugging and is not part of the import
// contract.
type ScrapeSnapshot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SourceURL string    `json:"source_url" db:"source_url"`
	Payload   []byte    `json:"payload" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
