package aggregation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/voz-urbana/api-go/models"
)

// URLSigner resolves a stored object key to a time-limited fetch URL.
// *storage.Client satisfies it; tests substitute a stub.
type URLSigner interface {
	SignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ReportFeedItem is one render-ready feed entry: the report row plus the
// derived fields the list view needs.
type ReportFeedItem struct {
	models.Report
	ImageURL      string `json:"imageUrl" gorm:"-"`
	LikesCount    int64  `json:"likesCount"`
	CommentsCount int64  `json:"commentsCount"`
	UserHasLiked  bool   `json:"userHasLiked"`
}

// ResolveImageURLs fills in ImageURL for every item concurrently and waits
// for all of them. A failed signing leaves that one item without an image;
// it never fails the batch.
func ResolveImageURLs(ctx context.Context, signer URLSigner, items []ReportFeedItem, ttl time.Duration) {
	var wg sync.WaitGroup
	for i := range items {
		if items[i].S3Key == "" {
			continue
		}
		wg.Add(1)
		go func(item *ReportFeedItem) {
			defer wg.Done()
			item.ImageURL = SignedURL(ctx, signer, item.S3Key, ttl)
		}(&items[i])
	}
	wg.Wait()
}

// SignedURL resolves key through signer, degrading to "" on failure.
func SignedURL(ctx context.Context, signer URLSigner, key string, ttl time.Duration) string {
	if key == "" {
		return ""
	}
	url, err := signer.SignGet(ctx, key, ttl)
	if err != nil {
		return ""
	}
	return url
}

// FinalizeFeed applies the read-side status default and sorts newest first.
// The sort is stable so items sharing a timestamp keep their input order.
func FinalizeFeed(items []ReportFeedItem) {
	for i := range items {
		items[i].Status = items[i].DisplayStatus()
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
}
