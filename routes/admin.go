package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront/controllers/product"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps *middleware.Deps, hub *events.Hub) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.AdminAPIKey))
	{
		// ─────────── Catalog ───────────
		adminGroup.POST("/products/import-excel", productcontroller.ImportProductsFromExcel(deps.Gateway))

		// ─────────── Live order feed ───────────
		if hub != nil {
			adminGroup.GET("/orders/ws", gin.WrapH(hub))
		}
	}
}
