package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storeforge/internal/domain"

	"go.uber.org/zap"
)

type memorySnapshotStore struct {
	mu        sync.Mutex
	snapshots []*domain.ScrapeSnapshot
	err       error
}

func (m *memorySnapshotStore) Create(ctx context.Context, snapshot *domain.ScrapeSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

const listingURL = "https://www.alibaba.com/product-detail/widget_100.html"

func TestExtractMapsDelegateReply(t *testing.T) {
	var gotBody extractRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scrape" {
			t.Errorf("path = %q, want /scrape", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "wireless earbuds",
			"description": "cheap earbuds",
			"images": ["//cdn/a.jpg", "https://cdn/b.jpg?spm=1"],
			"variants": [
				{"name": "Color", "options": [
					{"label": "Red", "image": "//cdn/red.jpg"},
					{"label": "Blue"}
				]}
			]
		}`))
	}))
	defer server.Close()

	delegate := NewDelegate(server.URL, time.Second, nil, zap.NewNop())

	product, err := delegate.Extract(context.Background(), listingURL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if gotBody.URL != listingURL {
		t.Errorf("delegate received url %q", gotBody.URL)
	}
	if product.Title != "wireless earbuds" {
		t.Errorf("title = %q", product.Title)
	}

	wantImages := []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}
	if len(product.Images) != 2 || product.Images[0] != wantImages[0] || product.Images[1] != wantImages[1] {
		t.Errorf("images = %v, want %v", product.Images, wantImages)
	}

	if len(product.Variants) != 1 {
		t.Fatalf("variants = %+v", product.Variants)
	}
	options := product.Variants[0].Options
	if len(options) != 2 || options[0].Image != "https://cdn/red.jpg" || options[1].Image != "" {
		t.Errorf("options = %+v", options)
	}

	// Option images never migrate to the carousel.
	for _, img := range product.Images {
		if img == "https://cdn/red.jpg" {
			t.Error("variant image leaked into the carousel list")
		}
	}
}

func TestExtractReportsDelegateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "timeout waiting for product title"}`))
	}))
	defer server.Close()

	delegate := NewDelegate(server.URL, time.Second, nil, zap.NewNop())

	_, err := delegate.Extract(context.Background(), listingURL)

	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %v, want *ExtractionError", err)
	}
	if exErr.Message != "timeout waiting for product title" {
		t.Errorf("message = %q, want the delegate's error text", exErr.Message)
	}
	if exErr.URL != listingURL {
		t.Errorf("url = %q", exErr.URL)
	}
}

func TestExtractReportsNon200WithoutBodyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	delegate := NewDelegate(server.URL, time.Second, nil, zap.NewNop())

	_, err := delegate.Extract(context.Background(), listingURL)

	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %v, want *ExtractionError", err)
	}
}

func TestExtractReportsUnreachableDelegate(t *testing.T) {
	delegate := NewDelegate("http://127.0.0.1:1", time.Second, nil, zap.NewNop())

	_, err := delegate.Extract(context.Background(), listingURL)

	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %v, want *ExtractionError", err)
	}
}

func TestExtractSavesSnapshot(t *testing.T) {
	raw := `{"title": "widget", "description": "", "images": [], "variants": []}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(raw))
	}))
	defer server.Close()

	store := &memorySnapshotStore{}
	delegate := NewDelegate(server.URL, time.Second, store, zap.NewNop())

	if _, err := delegate.Extract(context.Background(), listingURL); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(store.snapshots) != 1 {
		t.Fatalf("stored %d snapshots, want 1", len(store.snapshots))
	}
	snapshot := store.snapshots[0]
	if snapshot.SourceURL != listingURL {
		t.Errorf("snapshot source url = %q", snapshot.SourceURL)
	}
	if string(snapshot.Payload) != raw {
		t.Errorf("snapshot payload = %q", snapshot.Payload)
	}
}

func TestExtractSucceedsWhenSnapshotStoreFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "widget", "description": "", "images": [], "variants": []}`))
	}))
	defer server.Close()

	store := &memorySnapshotStore{err: errors.New("database unavailable")}
	delegate := NewDelegate(server.URL, time.Second, store, zap.NewNop())

	product, err := delegate.Extract(context.Background(), listingURL)
	if err != nil {
		t.Fatalf("Extract failed because of the snapshot store: %v", err)
	}
	if product.Title != "widget" {
		t.Errorf("title = %q", product.Title)
	}
}
