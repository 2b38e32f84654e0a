package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/controllers"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/spreadsheet"
)

// POST /user/checkout
func PlaceOrderHandler(c *gin.Context) {
	st := middleware.StoresFrom(c)
	order, err := st.Checkout.PlaceOrder(c.Request.Context())
	if err != nil {
		controllers.RespondError(c, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GET /user/orders
func GetUserOrdersHandler(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := gw.ListOrders(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:id
func GetOrderByIDHandler(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := gw.GetOrder(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /user/orders/export
func ExportOrdersHandler(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := gw.ListOrders(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch orders")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", spreadsheet.ContentType)
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		if err := spreadsheet.ExportOrders(c.Writer, orders); err != nil {
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
	}
}
