package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront/controllers/cart"
	productcontroller "github.com/junaidrashid-git/storefront/controllers/product"
	userControllers "github.com/junaidrashid-git/storefront/controllers/user"
	"github.com/junaidrashid-git/storefront/middleware"
)

// SetupCatalogRoutes registers the public product endpoints.
func SetupCatalogRoutes(r *gin.Engine, deps *middleware.Deps) {
	r.GET("/products", productcontroller.GetProducts(deps.Gateway))
	r.GET("/products/:id", productcontroller.GetProductByID(deps.Gateway))
}

// SetupUserRoutes registers all “/user/*” endpoints. Requires a bearer token.
func SetupUserRoutes(r *gin.Engine, deps *middleware.Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(deps))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser)    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart)                   // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem)                  // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem)    // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem) // DELETE /user/cart/:product_id
		}
	}
}
