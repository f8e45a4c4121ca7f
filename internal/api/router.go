package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/config"
	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/service"
	"github.com/research-editing-site/web"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, contentRepo *content.Repository, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("re_session", store))
	router.Use(RouteGuard(SessionAuth{}))

	// Handlers
	site := NewSiteHandler(contentRepo, services.Setting, log)
	auth := NewAuthHandler(services.Auth, log)
	admin := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public pages
	router.GET("/", site.Home)
	router.GET("/about", site.About)
	router.GET("/services", site.Services)
	router.GET("/case-studies", site.CaseStudies)
	router.GET("/contact", site.Contact)
	router.GET("/blog", site.BlogIndex)
	router.GET("/blog/:slug", site.BlogPost)
	router.NoRoute(site.NotFound)

	// Admin area; the route guard covers everything under /admin
	router.GET(loginPath, auth.LoginForm)
	router.POST(loginPath, auth.Login)
	router.POST("/admin/logout", auth.Logout)
	router.GET(adminRoot, admin.Dashboard)

	adminAPI := router.Group("/admin/api")
	{
		posts := adminAPI.Group("/posts")
		{
			posts.GET("", admin.ListPosts)
			posts.POST("", admin.CreatePost)
			posts.GET("/:id", admin.GetPost)
			posts.PUT("/:id", admin.UpdatePost)
			posts.DELETE("/:id", admin.DeletePost)
		}

		users := adminAPI.Group("/users")
		{
			users.GET("", admin.ListUsers)
			users.POST("", admin.CreateUser)
			users.PUT("/:id", admin.UpdateUser)
			users.DELETE("/:id", admin.DeleteUser)
		}

		settings := adminAPI.Group("/settings")
		{
			settings.GET("", admin.ListSettings)
			settings.PUT("/:key", admin.UpdateSetting)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "research-editing-site",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
