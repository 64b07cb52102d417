package aggregation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voz-urbana/api-go/models"
)

// stubSigner implements URLSigner for testing
type stubSigner struct {
	signGetFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func (s *stubSigner) SignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.signGetFunc != nil {
		return s.signGetFunc(ctx, key, ttl)
	}
	return "https://signed.example/" + key, nil
}

func TestResolveImageURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves every keyed item", func(t *testing.T) {
		items := []ReportFeedItem{
			{Report: models.Report{S3Key: "photos/1/a.jpg"}},
			{Report: models.Report{S3Key: "photos/2/b.jpg"}},
			{Report: models.Report{S3Key: ""}},
		}

		ResolveImageURLs(ctx, &stubSigner{}, items, time.Hour)

		assert.Equal(t, "https://signed.example/photos/1/a.jpg", items[0].ImageURL)
		assert.Equal(t, "https://signed.example/photos/2/b.jpg", items[1].ImageURL)
		assert.Empty(t, items[2].ImageURL)
	})

	t.Run("one failed signing degrades only that item", func(t *testing.T) {
		signer := &stubSigner{
			signGetFunc: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
				if key == "photos/1/bad.jpg" {
					return "", errors.New("presign failed")
				}
				return "https://signed.example/" + key, nil
			},
		}

		items := []ReportFeedItem{
			{Report: models.Report{S3Key: "photos/1/bad.jpg"}},
			{Report: models.Report{S3Key: "photos/1/good.jpg"}},
		}

		ResolveImageURLs(ctx, signer, items, time.Hour)

		assert.Empty(t, items[0].ImageURL)
		assert.Equal(t, "https://signed.example/photos/1/good.jpg", items[1].ImageURL)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		ResolveImageURLs(ctx, &stubSigner{}, nil, time.Hour)
	})
}

func TestFinalizeFeed(t *testing.T) {
	t.Run("sorts newest first", func(t *testing.T) {
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		items := []ReportFeedItem{
			{Report: models.Report{ID: 1, CreatedAt: base}},
			{Report: models.Report{ID: 2, CreatedAt: base.Add(2 * time.Hour)}},
			{Report: models.Report{ID: 3, CreatedAt: base.Add(time.Hour)}},
		}

		FinalizeFeed(items)

		assert.Equal(t, uint(2), items[0].ID)
		assert.Equal(t, uint(3), items[1].ID)
		assert.Equal(t, uint(1), items[2].ID)
	})

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		items := []ReportFeedItem{
			{Report: models.Report{ID: 10, CreatedAt: ts}},
			{Report: models.Report{ID: 11, CreatedAt: ts}},
		}

		FinalizeFeed(items)

		assert.Equal(t, uint(10), items[0].ID)
		assert.Equal(t, uint(11), items[1].ID)
	})

	t.Run("empty status defaults to Pendiente", func(t *testing.T) {
		items := []ReportFeedItem{
			{Report: models.Report{Status: ""}},
			{Report: models.Report{Status: models.StatusResuelto}},
		}

		FinalizeFeed(items)

		assert.Equal(t, models.StatusPendiente, items[0].Status)
		assert.Equal(t, models.StatusResuelto, items[1].Status)
	})
}

func TestSignedURL(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, SignedURL(ctx, &stubSigner{}, "", time.Hour))

	failing := &stubSigner{
		signGetFunc: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
			return "", errors.New("boom")
		},
	}
	assert.Empty(t, SignedURL(ctx, failing, "photos/1/a.jpg", time.Hour))

	assert.Equal(t, "https://signed.example/k", SignedURL(ctx, &stubSigner{}, "k", time.Hour))
}
