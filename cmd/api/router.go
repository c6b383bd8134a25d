package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"infinite-ideas-hub/internal/shared/middleware"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
		c.HTTPMetrics.Handler(),
		middleware.Session(c.JWTManager, c.UserService),
	)

	router.GET(c.Config.App.MetricsPath, gin.WrapH(promhttp.HandlerFor(c.Metrics, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBlogRoutes(v1, c)
		setupContentRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupNewsletterRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.GET("/me", c.UserHandler.Me)
	}
}

// ========================================
// PUBLIC BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		blogs.GET("", c.BlogHandler.ListPublished)
		blogs.GET("/featured", c.BlogHandler.Featured)
		blogs.GET("/slug/:slug", c.BlogHandler.GetBySlug)
		blogs.GET("/slug/:slug/next", c.BlogHandler.Next)
		blogs.GET("/:id", c.BlogHandler.GetByID)
	}
}

// ========================================
// AUTHORING ROUTES
// ========================================
// Services gate every call; the group check only rejects readers early.
func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	content := v1.Group("/content")

	// likes are anonymous
	content.POST("/blog/like", c.BlogHandler.Like)
	content.POST("/blog/unlike", c.BlogHandler.Unlike)

	authoring := content.Group("", middleware.RequireRole(session.RoleAuthor, session.RoleAdmin))
	{
		authoring.POST("/blog", c.BlogHandler.Create)
		authoring.PATCH("/blog", c.BlogHandler.Update)
		authoring.POST("/blog/recover", c.BlogHandler.Recover)
		authoring.POST("/blog/unpublish", c.PublishHandler.Unpublish)

		authoring.POST("/drafts", c.DraftHandler.Save)
		authoring.PATCH("/drafts", c.DraftHandler.Update)
		authoring.GET("/drafts", c.DraftHandler.Get)
		authoring.DELETE("/drafts", c.DraftHandler.Delete)

		authoring.POST("/publish", c.PublishHandler.Publish)
		authoring.POST("/uploads/image", c.MediaHandler.Upload)
	}
}

// ========================================
// AUTHOR / CATEGORY / COMMENT ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:slug", c.AuthorHandler.GetBySlug)
		authors.GET("/id/:id", c.AuthorHandler.GetByID)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:slug", c.CategoryHandler.GetBySlug)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/comments", c.CommentHandler.Create)
	v1.GET("/comments", c.CommentHandler.List)
}

// ========================================
// NEWSLETTER ROUTES
// ========================================
func setupNewsletterRoutes(v1 *gin.RouterGroup, c *container.Container) {
	newsletter := v1.Group("/newsletter")
	{
		newsletter.POST("/subscribe", c.SubscriberHandler.Subscribe)
		newsletter.GET("/confirm", c.SubscriberHandler.Confirm)
		newsletter.GET("/check", c.SubscriberHandler.Check)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin", middleware.RequireRole(session.RoleAdmin))
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PATCH("/users/:id/role", c.UserHandler.SetRole)

		admin.GET("/authors", c.AuthorHandler.List)
		admin.POST("/authors", c.AuthorHandler.Promote)
		admin.PATCH("/authors", c.AuthorHandler.Update)
		admin.DELETE("/authors", c.AuthorHandler.Delete)

		admin.GET("/posts", c.BlogHandler.AdminList)
		admin.PATCH("/posts", c.PublishHandler.AdminAction)

		admin.POST("/categories", c.CategoryHandler.Create)

		admin.GET("/audit-logs", c.AuditHandler.List)
		admin.GET("/stats", c.AdminHandler.Stats)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := c.HealthCheck(ctx.Request.Context())

		status := http.StatusOK
		if checks["database"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		response.Success(ctx, status, gin.H{
			"status":    checks,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
		})
	}
}
