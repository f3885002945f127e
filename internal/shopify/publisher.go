package shopify

import (
	"context"
	"strconv"

	"storeforge/internal/domain"

	"go.uber.org/zap"
)

// ImageAssignment records the outcome of one variant-image association
// call. Assignment failures do not roll back or fail the publish; the
// created product is the success boundary and callers decide whether
// partial success is acceptable.
type ImageAssignment struct {
	OptionValue string `json:"option_value"`
	ImageURL    string `json:"image_url"`
	VariantID   int64  `json:"variant_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// PublishResult is a created remote product plus the per-variant image
// association outcomes.
type PublishResult struct {
	Product          RemoteProduct     `json:"product"`
	ImageAssignments []ImageAssignment `json:"image_assignments"`
}

// Publisher maps internal products onto Shopify's product model and
// uploads them.
type Publisher struct {
	client *Client
	logger *zap.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// Publish uploads product to the store behind order.
//
// Mapping: every product image becomes a remote image reference in
// order; only the first variant group becomes the option axis, with one
// remote variant per option, all carrying the product's shared price
// and compare-at price. Per-option pricing and multi-axis variant
// combination are not modeled.
//
// After creation, each first-group option that has an image gets a
// sequential follow-up call associating that image with the matching
// created variant; each outcome is recorded in the result.
func (p *Publisher) Publish(ctx context.Context, order *domain.StoreOrder, product *domain.Product) (*PublishResult, error) {
	if order == nil || !order.HasCredentials() {
		return nil, &domain.ValidationError{Message: "store order has no shopify credentials"}
	}
	if product == nil {
		return nil, &domain.ValidationError{Message: "product is required"}
	}

	creds := Credentials{Domain: order.ShopifyDomain, AccessToken: order.ShopifyAccessToken}
	payload := buildPayload(product)

	remote, err := p.client.CreateProduct(ctx, creds, payload)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Created shopify product",
		zap.String("shop", order.ShopifyDomain),
		zap.Int64("remote_id", remote.ID),
		zap.String("title", remote.Title),
	)

	result := &PublishResult{Product: *remote}
	if len(product.Variants) > 0 {
		result.ImageAssignments = p.assignVariantImages(ctx, creds, remote, product.Variants[0])
	}
	return result, nil
}

// buildPayload maps the internal product onto the creation request.
func buildPayload(product *domain.Product) productPayload {
	payload := productPayload{
		Title:    product.Title,
		BodyHTML: product.Description,
	}

	for _, src := range product.Images {
		payload.Images = append(payload.Images, imagePayload{Src: src})
	}

	if len(product.Variants) == 0 {
		return payload
	}

	// First group only; deeper groups are not representable in this
	// single-axis mapping.
	group := product.Variants[0]
	payload.Options = []optionPayload{{Name: group.Name}}

	price := formatPrice(product.Price)
	var compareAt string
	if product.CompareAtPrice != nil {
		compareAt = formatPrice(*product.CompareAtPrice)
	}

	for _, option := range group.Options {
		payload.Variants = append(payload.Variants, variantPayload{
			Option1:        option.Label,
			Price:          price,
			CompareAtPrice: compareAt,
		})
	}
	return payload
}

// assignVariantImages issues one association call per optioned image,
// sequentially, recording each outcome instead of swallowing failures.
func (p *Publisher) assignVariantImages(ctx context.Context, creds Credentials, remote *RemoteProduct, group domain.VariantGroup) []ImageAssignment {
	variantByOption := make(map[string]int64, len(remote.Variants))
	for _, v := range remote.Variants {
		variantByOption[v.Option1] = v.ID
	}

	var assignments []ImageAssignment
	for _, option := range group.Options {
		if option.Image == "" {
			continue
		}

		assignment := ImageAssignment{OptionValue: option.Label, ImageURL: option.Image}

		variantID, ok := variantByOption[option.Label]
		if !ok {
			assignment.Error = "no created variant matches option value"
			assignments = append(assignments, assignment)
			continue
		}
		assignment.VariantID = variantID

		if err := p.client.AttachVariantImage(ctx, creds, remote.ID, option.Image, variantID); err != nil {
			p.logger.Warn("Variant image association failed",
				zap.Int64("remote_id", remote.ID),
				zap.String("option", option.Label),
				zap.Error(err),
			)
			assignment.Error = err.Error()
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
