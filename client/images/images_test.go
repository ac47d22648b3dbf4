package images

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	images     []Image
	defaultImg *Image
	fetchCount int
	failAll    bool
	failDef    bool
}

func (f *fakeBackend) all(ctx context.Context) ([]Image, error) {
	f.fetchCount++
	if f.failAll {
		return nil, errors.New("backend down")
	}
	return f.images, nil
}

func (f *fakeBackend) def(ctx context.Context) (*Image, error) {
	if f.failDef || f.defaultImg == nil {
		return nil, errors.New("no default endpoint")
	}
	return f.defaultImg, nil
}

func newFakeService(backend *fakeBackend, now *time.Time) *Service {
	return New("http://backend.local",
		WithFetchers(backend.all, backend.def),
		WithClock(func() time.Time { return *now }),
	)
}

func TestImagesRespectsTTL(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{images: []Image{{ID: "1", Title: "hero"}}}
	svc := newFakeService(backend, &now)
	ctx := context.Background()

	svc.Images(ctx)
	svc.Images(ctx)
	svc.Images(ctx)
	assert.Equal(t, 1, backend.fetchCount)

	now = now.Add(DefaultTTL + time.Second)
	svc.Images(ctx)
	assert.Equal(t, 2, backend.fetchCount)
}

func TestFailedFetchLeavesCache(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{images: []Image{{ID: "1"}}}
	svc := newFakeService(backend, &now)
	ctx := context.Background()

	require.Len(t, svc.Images(ctx), 1)

	backend.failAll = true
	got := svc.FetchImages(ctx)
	assert.Empty(t, got)

	// Cache still serves the earlier set within the TTL.
	assert.Len(t, svc.Images(ctx), 1)
}

func TestClearCacheForcesRefetch(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{images: []Image{{ID: "1"}}}
	svc := newFakeService(backend, &now)
	ctx := context.Background()

	svc.Images(ctx)
	svc.ClearCache()
	svc.Images(ctx)
	assert.Equal(t, 2, backend.fetchCount)
}

func TestDefaultImageFallbackChain(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("endpoint wins", func(t *testing.T) {
		backend := &fakeBackend{
			images:     []Image{{ID: "1"}, {ID: "2", IsDefault: true}},
			defaultImg: &Image{ID: "endpoint"},
		}
		svc := newFakeService(backend, &now)
		got := svc.DefaultImage(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "endpoint", got.ID)
	})

	t.Run("cached isDefault", func(t *testing.T) {
		backend := &fakeBackend{
			images:  []Image{{ID: "1"}, {ID: "2", IsDefault: true}},
			failDef: true,
		}
		svc := newFakeService(backend, &now)
		got := svc.DefaultImage(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "2", got.ID)
	})

	t.Run("first image", func(t *testing.T) {
		backend := &fakeBackend{
			images:  []Image{{ID: "1"}, {ID: "2"}},
			failDef: true,
		}
		svc := newFakeService(backend, &now)
		got := svc.DefaultImage(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("empty set", func(t *testing.T) {
		backend := &fakeBackend{failDef: true}
		svc := newFakeService(backend, &now)
		assert.Nil(t, svc.DefaultImage(ctx))
	})
}

func TestImageForUsage(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	backend := &fakeBackend{
		images: []Image{
			{ID: "home-img", UsedAt: []string{"home"}},
			{ID: "def", IsDefault: true},
		},
		failDef: true,
	}
	svc := newFakeService(backend, &now)

	matched := svc.ImageForUsage(ctx, "home")
	require.NotNil(t, matched)
	assert.Equal(t, "home-img", matched.ID)

	fallback := svc.ImageForUsage(ctx, "nonexistent-usage")
	require.NotNil(t, fallback)
	assert.Equal(t, "def", fallback.ID)
}

func TestImageForUsageEmptySet(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{failDef: true}
	svc := newFakeService(backend, &now)

	assert.Nil(t, svc.ImageForUsage(context.Background(), "home"))
}

func TestImagesByUsage(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{
		images: []Image{
			{ID: "1", UsedAt: []string{"home", "banner"}},
			{ID: "2", UsedAt: []string{"about"}},
			{ID: "3", UsedAt: []string{"home"}},
		},
	}
	svc := newFakeService(backend, &now)

	got := svc.ImagesByUsage(context.Background(), "home")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestImageURL(t *testing.T) {
	svc := New("http://backend.local")

	assert.Equal(t, PlaceholderPath, svc.ImageURL(nil))
	assert.Equal(t, PlaceholderPath, svc.ImageURL(&Image{}))
	assert.Equal(t, "https://cdn.example.org/x.png", svc.ImageURL(&Image{ImageURL: "https://cdn.example.org/x.png"}))
	assert.Equal(t, "http://backend.local/uploads/x.png", svc.ImageURL(&Image{ImageURL: "/uploads/x.png"}))
	assert.Equal(t, "http://backend.local/uploads/x.png", svc.ImageURL(&Image{ImageURL: "uploads/x.png"}))
}
