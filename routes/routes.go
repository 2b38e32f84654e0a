package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/middleware"
)

// NewRouter builds the engine with CORS and every route group.
func NewRouter(deps *middleware.Deps, hub *events.Hub, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = 32 << 20

	origins := allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, deps, hub)
	return r
}

// SetupRoutes is the single entry-point that wires up Auth, Catalog, User, and Admin route groups.
func SetupRoutes(r *gin.Engine, deps *middleware.Deps, hub *events.Hub) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupAuthRoutes(r, deps)
	SetupCatalogRoutes(r, deps)
	SetupUserRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupAdminRoutes(r, deps, hub)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
