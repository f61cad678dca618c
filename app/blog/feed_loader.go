package blog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

const publicFlightKey = "public"

type LoadResult struct {
	Posts    []Post
	Fallback bool
	Err      error
}

// FeedLoader builds the public feed. Loads that overlap share one gateway
// call, so a slow response can never overwrite a newer one.
type FeedLoader struct {
	gateway  Gateway
	metrics  *metrics.Registry
	group    singleflight.Group
	inflight atomic.Int32
}

func NewFeedLoader(gw Gateway, registry *metrics.Registry) *FeedLoader {
	return &FeedLoader{
		gateway: gw,
		metrics: registry,
	}
}

// Loading reports whether a gateway read is currently in flight.
func (l *FeedLoader) Loading() bool {
	return l.inflight.Load() > 0
}

// LoadApprovedPosts returns approved posts in gateway order, or the sample
// posts when the gateway cannot be read. It never retries.
func (l *FeedLoader) LoadApprovedPosts(ctx context.Context) LoadResult {
	return l.load(ctx, false)
}

// ReloadApprovedPosts is LoadApprovedPosts for reads that must observe an
// earlier write: it never joins a load already in flight.
func (l *FeedLoader) ReloadApprovedPosts(ctx context.Context) LoadResult {
	return l.load(ctx, true)
}

func (l *FeedLoader) load(ctx context.Context, fresh bool) LoadResult {
	if fresh {
		l.group.Forget(publicFlightKey)
	}

	flightCtx := context.WithoutCancel(ctx)

	v, err, shared := l.group.Do(publicFlightKey, func() (interface{}, error) {
		l.inflight.Add(1)
		defer l.inflight.Add(-1)

		resp, err := l.gateway.ListPosts(flightCtx, nil)
		if err != nil {
			return nil, err
		}
		return FilterApproved(NormalizeAll(resp.Posts)), nil
	})

	if err != nil {
		slog.Warn("Failed to load posts, serving fallback", "error", err)
		l.metrics.ObserveFallback()
		return LoadResult{Posts: FallbackPosts(), Fallback: true, Err: err}
	}

	posts := v.([]Post)
	slog.Debug("Public feed loaded", "posts", len(posts), "shared", shared)

	out := make([]Post, len(posts))
	copy(out, posts)
	return LoadResult{Posts: out}
}
