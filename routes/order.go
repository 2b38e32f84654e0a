package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/storefront/controllers/order"
	"github.com/junaidrashid-git/storefront/middleware"
)

func SetupOrderRoutes(r *gin.Engine, deps *middleware.Deps) {
	user := r.Group("/user")
	user.Use(middleware.ValidateToken(deps))
	{
		// Turn the cart into an order
		user.POST("/checkout", orderControllers.PlaceOrderHandler)

		orders := user.Group("/orders")
		{
			orders.GET("", orderControllers.GetUserOrdersHandler(deps.Gateway))
			orders.GET("/export", orderControllers.ExportOrdersHandler(deps.Gateway))
			orders.GET("/:id", orderControllers.GetOrderByIDHandler(deps.Gateway))
		}
	}
}
