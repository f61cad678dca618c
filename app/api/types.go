package api

import (
	"context"

	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/content"
	"github.com/lysyi3m/fitbhaskar/app/database"
	"github.com/lysyi3m/fitbhaskar/app/feed"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

const sessionCookie = "fb_admin"

type GeneratorInterface interface {
	Run(channel feed.Channel, posts []blog.Post) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

// OutboxCounter reports outbox depth for the health endpoint.
type OutboxCounter interface {
	Counts(ctx context.Context) (database.OutboxCounts, error)
}

var _ OutboxCounter = (*database.OutboxRepository)(nil)

// Deps are the collaborators the handlers serve from. Outbox is nil when
// the outbox is disabled.
type Deps struct {
	Site      *content.Site
	Feed      *blog.FeedLoader
	Submitter *blog.Submitter
	Moderator *blog.Moderator
	Sessions  *blog.SessionStore
	Generator GeneratorInterface
	Videos    *feed.VideoStore
	Outbox    OutboxCounter
	Metrics   *metrics.Registry
}

type Handler struct {
	site      *content.Site
	feed      *blog.FeedLoader
	submitter *blog.Submitter
	moderator *blog.Moderator
	sessions  *blog.SessionStore
	generator GeneratorInterface
	videos    *feed.VideoStore
	outbox    OutboxCounter
	metrics   *metrics.Registry
	limiter   *ipLimiter
}

// PostsResponse is the JSON shape of /api/posts.
type PostsResponse struct {
	Posts    []blog.Post `json:"posts"`
	Total    int         `json:"total"`
	Fallback bool        `json:"fallback"`
}
