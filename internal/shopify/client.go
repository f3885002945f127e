// Package shopify uploads persisted products to a customer's Shopify
// store through the Admin REST API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIVersion is used when none is configured.
const DefaultAPIVersion = "2024-01"

// PublishError reports a rejected Shopify request. Body carries the
// platform's raw error text verbatim so operators can debug third-party
// API issues directly.
type PublishError struct {
	StatusCode int
	Body       string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("shopify rejected request (status %d): %s", e.StatusCode, e.Body)
}

// Credentials identify one destination store.
type Credentials struct {
	Domain      string
	AccessToken string
}

// productRequest is the POST products.json body.
type productRequest struct {
	Product productPayload `json:"product"`
}

type productPayload struct {
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Images   []imagePayload   `json:"images,omitempty"`
	Options  []optionPayload  `json:"options,omitempty"`
	Variants []variantPayload `json:"variants,omitempty"`
}

type imagePayload struct {
	Src        string  `json:"src"`
	VariantIDs []int64 `json:"variant_ids,omitempty"`
}

type optionPayload struct {
	Name string `json:"name"`
}

type variantPayload struct {
	Option1        string `json:"option1"`
	Price          string `json:"price"`
	CompareAtPrice string `json:"compare_at_price,omitempty"`
}

// RemoteProduct is the created product as Shopify reports it.
type RemoteProduct struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Variants []RemoteVariant `json:"variants"`
}

// RemoteVariant is one created variant.
type RemoteVariant struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Option1 string `json:"option1"`
}

type productResponse struct {
	Product RemoteProduct `json:"product"`
}

type imageRequest struct {
	Image imagePayload `json:"image"`
}

// Client is a thin Admin REST client. One Client serves all stores;
// credentials travel with each call.
type Client struct {
	http       *http.Client
	apiVersion string
	scheme     string
}

// NewClient creates an Admin REST client.
func NewClient(apiVersion string, timeout time.Duration) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		apiVersion: apiVersion,
		scheme:     "https",
	}
}

func (c *Client) endpoint(creds Credentials, path string) string {
	return fmt.Sprintf("%s://%s/admin/api/%s/%s", c.scheme, creds.Domain, c.apiVersion, path)
}

// CreateProduct submits one product-creation request. A non-2xx
// response aborts the operation and relays the raw body.
func (c *Client) CreateProduct(ctx context.Context, creds Credentials, payload productPayload) (*RemoteProduct, error) {
	var resp productResponse
	if err := c.post(ctx, creds, "products.json", productRequest{Product: payload}, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// AttachVariantImage uploads an image and associates it with the given
// variant on an existing product.
func (c *Client) AttachVariantImage(ctx context.Context, creds Credentials, productID int64, src string, variantID int64) error {
	path := fmt.Sprintf("products/%d/images.json", productID)
	body := imageRequest{Image: imagePayload{Src: src, VariantIDs: []int64{variantID}}}
	return c.post(ctx, creds, path, body, nil)
}

func (c *Client) post(ctx context.Context, creds Credentials, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal shopify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds, path), bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create shopify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send shopify request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read shopify response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &PublishError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode shopify response: %w", err)
		}
	}
	return nil
}
