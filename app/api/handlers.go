package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"

	"github.com/lysyi3m/fitbhaskar/app/cfg"
	"github.com/lysyi3m/fitbhaskar/app/feed"
	"github.com/lysyi3m/fitbhaskar/app/web"
)

func NewHandler(deps Deps) *Handler {
	cfg := cfg.Get()

	return &Handler{
		site:      deps.Site,
		feed:      deps.Feed,
		submitter: deps.Submitter,
		moderator: deps.Moderator,
		sessions:  deps.Sessions,
		generator: deps.Generator,
		videos:    deps.Videos,
		outbox:    deps.Outbox,
		metrics:   deps.Metrics,
		limiter:   newIPLimiter(cfg.SubmitRateLimit, cfg.SubmitBurst),
	}
}

func (h *Handler) GetHome(c *gin.Context) {
	h.render(c, http.StatusOK, web.Home(h.site, h.latestVideos()))
}

func (h *Handler) GetAbout(c *gin.Context) {
	h.render(c, http.StatusOK, web.About(h.site))
}

func (h *Handler) GetBlogFeed(c *gin.Context) {
	result := h.feed.LoadApprovedPosts(c.Request.Context())
	if result.Fallback {
		c.Header("Retry-After", "60")
		c.Status(http.StatusServiceUnavailable)
		return
	}

	channel := feed.Channel{
		Title:       h.site.Blog.Title + " | " + h.site.Brand.Name,
		Description: h.site.Blog.Description,
		Language:    h.site.Brand.Language,
	}

	rss, err := h.generator.Run(channel, result.Posts)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(result.Posts)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) APIListPosts(c *gin.Context) {
	result := h.feed.LoadApprovedPosts(c.Request.Context())

	c.JSON(http.StatusOK, PostsResponse{
		Posts:    result.Posts,
		Total:    len(result.Posts),
		Fallback: result.Fallback,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	cfg := cfg.Get()

	health := map[string]interface{}{
		"timestamp":      time.Now().In(time.Local).Format(time.RFC3339),
		"version":        cfg.Version,
		"admin_sessions": h.sessions.Count(),
		"feed_loading":   h.feed.Loading(),
	}

	if h.videos != nil {
		videos := map[string]interface{}{
			"count": len(h.videos.Latest()),
		}
		if updatedAt := h.videos.UpdatedAt(); !updatedAt.IsZero() {
			videos["updated_at"] = updatedAt.Format(time.RFC3339)
		}
		health["videos"] = videos
	}

	if h.outbox != nil {
		if counts, err := h.outbox.Counts(c.Request.Context()); err == nil {
			health["outbox"] = map[string]interface{}{
				"pending":   counts.Pending,
				"delivered": counts.Delivered,
				"abandoned": counts.Abandoned,
			}
		} else {
			slog.Error("Database error", "operation", "outbox_counts", "error", err)
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) latestVideos() []feed.Video {
	if h.videos == nil {
		return nil
	}
	return h.videos.Latest()
}

func (h *Handler) render(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)

	if err := web.Render(c.Writer, node); err != nil {
		slog.Error("Page render error", "path", c.Request.URL.Path, "error", err)
	}
}
