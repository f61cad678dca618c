package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/fitbhaskar/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, mediaDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Only listed proxies may set the client IP the rate limiter keys on.
	if err := r.SetTrustedProxies(cfg.Get().TrustedProxies); err != nil {
		slog.Error("Invalid trusted proxies, using peer addresses", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health", "/metrics"},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler, mediaDir)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, mediaDir string) {
	r.GET("/", handler.GetHome)
	r.GET("/about", handler.GetAbout)

	b := r.Group("/blog")
	{
		b.GET("", handler.GetBlog)
		b.GET("/feed.xml", handler.GetBlogFeed)
		b.POST("/submit", handler.rateLimit(), handler.PostSubmission)

		admin := b.Group("/admin")
		admin.POST("/login", handler.PostAdminLogin)
		admin.POST("/logout", handler.PostAdminLogout)
		admin.POST("/refresh", handler.PostAdminRefresh)
		admin.POST("/approve", handler.PostAdminApproval)
	}

	api := r.Group("/api")
	api.Use(corsMiddleware())
	{
		api.GET("/posts", handler.APIListPosts)
	}

	r.GET("/health", handler.GetHealth)

	if handler.metrics != nil {
		r.GET("/metrics", gin.WrapH(handler.metrics.Handler()))
	}

	if mediaDir != "" {
		r.Static("/media", mediaDir)
		slog.Info("Serving media", "dir", mediaDir)
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET")
		c.Next()
	}
}
