// Package images resolves logical usage locations ("home", "about") to
// image records served by the backend, with a short-lived cache and a
// default-image fallback chain.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// PlaceholderPath is returned by ImageURL when no image resolves.
const PlaceholderPath = "/assets/placeholder.png"

// DefaultTTL bounds how long the cached image set is trusted.
const DefaultTTL = 5 * time.Minute

// Image mirrors the backend image record.
type Image struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	ImageURL  string   `json:"imageUrl"`
	FileSize  int64    `json:"fileSize"`
	MimeType  string   `json:"mimeType"`
	UsedAt    []string `json:"usedAt"`
	IsDefault bool     `json:"isDefault"`
}

// Fetcher loads the full image set from the backend.
type Fetcher func(ctx context.Context) ([]Image, error)

// DefaultFetcher loads the single default image from the backend.
type DefaultFetcher func(ctx context.Context) (*Image, error)

// Service caches the backend image library and resolves usages against it.
type Service struct {
	baseURL      string
	ttl          time.Duration
	now          func() time.Time
	fetchAll     Fetcher
	fetchDefault DefaultFetcher

	mu        sync.Mutex
	cache     []Image
	fetchedAt time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTTL overrides the cache lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock injects a time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFetchers injects custom backend loaders.
func WithFetchers(all Fetcher, def DefaultFetcher) Option {
	return func(s *Service) {
		s.fetchAll = all
		s.fetchDefault = def
	}
}

// New creates a Service talking to the backend at baseURL.
func New(baseURL string, opts ...Option) *Service {
	s := &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	httpClient := &http.Client{Timeout: 10 * time.Second}
	s.fetchAll = func(ctx context.Context) ([]Image, error) {
		var payload struct {
			Data []Image `json:"data"`
		}
		if err := getJSON(ctx, httpClient, s.baseURL+"/api/images", &payload); err != nil {
			return nil, err
		}
		return payload.Data, nil
	}
	s.fetchDefault = func(ctx context.Context) (*Image, error) {
		var img Image
		if err := getJSON(ctx, httpClient, s.baseURL+"/api/images/default", &img); err != nil {
			return nil, err
		}
		return &img, nil
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchImages reloads the image set from the backend. A failed fetch
// returns an empty slice and leaves any cached set untouched.
func (s *Service) FetchImages(ctx context.Context) []Image {
	imgs, err := s.fetchAll(ctx)
	if err != nil {
		return []Image{}
	}

	s.mu.Lock()
	s.cache = imgs
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return imgs
}

// Images returns the cached set, refetching when the TTL has elapsed.
func (s *Service) Images(ctx context.Context) []Image {
	s.mu.Lock()
	fresh := s.cache != nil && s.now().Sub(s.fetchedAt) < s.ttl
	cached := s.cache
	s.mu.Unlock()

	if fresh {
		return cached
	}
	return s.FetchImages(ctx)
}

// ImagesByUsage returns every image tagged with the usage id.
func (s *Service) ImagesByUsage(ctx context.Context, usageID string) []Image {
	var out []Image
	for _, img := range s.Images(ctx) {
		for _, u := range img.UsedAt {
			if u == usageID {
				out = append(out, img)
				break
			}
		}
	}
	return out
}

// DefaultImage resolves the default image: dedicated endpoint first, then
// the cached set's isDefault entry, then the first cached image, then nil.
func (s *Service) DefaultImage(ctx context.Context) *Image {
	if img, err := s.fetchDefault(ctx); err == nil && img != nil && img.ID != "" {
		return img
	}

	imgs := s.Images(ctx)
	for i := range imgs {
		if imgs[i].IsDefault {
			return &imgs[i]
		}
	}
	if len(imgs) > 0 {
		return &imgs[0]
	}
	return nil
}

// ImageForUsage returns the first image matching the usage id, falling back
// to the default image. Never returns an error; nil means no image exists.
func (s *Service) ImageForUsage(ctx context.Context, usageID string) *Image {
	for _, img := range s.Images(ctx) {
		for _, u := range img.UsedAt {
			if u == usageID {
				match := img
				return &match
			}
		}
	}
	return s.DefaultImage(ctx)
}

// ImageURL builds a browser-usable URL for an image. Absolute URLs pass
// through; relative paths are prefixed with the backend origin; nil maps to
// the placeholder path.
func (s *Service) ImageURL(img *Image) string {
	if img == nil || img.ImageURL == "" {
		return PlaceholderPath
	}
	if strings.HasPrefix(img.ImageURL, "http://") || strings.HasPrefix(img.ImageURL, "https://") {
		return img.ImageURL
	}
	if strings.HasPrefix(img.ImageURL, "/") {
		return s.baseURL + img.ImageURL
	}
	return s.baseURL + "/" + img.ImageURL
}

// ClearCache drops the cached set, forcing the next read to refetch.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

func getJSON(ctx context.Context, client *http.Client, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}
