package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/veenakrishnan01/menu-analyser/internal/analyses"
	"github.com/veenakrishnan01/menu-analyser/internal/auth"
	"github.com/veenakrishnan01/menu-analyser/internal/menu"
	"github.com/veenakrishnan01/menu-analyser/internal/middleware"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
)

// Handlers groups everything the HTTP surface needs.
type Handlers struct {
	Auth     *auth.Handler
	Menu     *menu.Handler
	Analyses *analyses.Handler
	Quota    *quota.Handler
}

// NewRouter builds the gin engine with all routes registered. Everything
// except registration, login, and the health check requires a valid token.
func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(), h.Auth.Me)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/analyze-menu", h.Menu.Analyze)
		protected.GET("/analyses", h.Analyses.List)
		protected.GET("/analyses/:id", h.Analyses.Get)
		protected.DELETE("/analyses/:id", h.Analyses.Delete)
		protected.GET("/quota", h.Quota.Status)
	}

	return r
}
