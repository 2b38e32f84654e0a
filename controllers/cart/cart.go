package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/controllers"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/stores"
)

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type QuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// cartView is the cart plus the summary the storefront shows next to it.
func cartView(cart *stores.CartStore) gin.H {
	total := cart.Total()
	return gin.H{
		"items":    cart.Items(),
		"count":    cart.Count(),
		"subtotal": total,
		"shipping": 0,
		"total":    total,
	}
}

// GET /user/cart
func GetUserCart(c *gin.Context) {
	st := middleware.StoresFrom(c)
	if err := st.Cart.FetchCart(c.Request.Context()); err != nil {
		controllers.RespondError(c, err, "Failed to fetch cart")
		return
	}
	c.JSON(http.StatusOK, cartView(st.Cart))
}

// POST /user/cart adds to an existing line instead of replacing it.
func AddCartItem(c *gin.Context) {
	var input CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	st := middleware.StoresFrom(c)
	if err := st.Cart.AddToCart(c.Request.Context(), input.ProductID, input.Quantity); err != nil {
		controllers.RespondError(c, err, "Failed to add item to cart")
		return
	}
	c.JSON(http.StatusOK, cartView(st.Cart))
}

// PUT /user/cart/:product_id
func UpdateCartItem(c *gin.Context) {
	var input QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	st := middleware.StoresFrom(c)
	if err := st.Cart.UpdateQuantity(c.Request.Context(), c.Param("product_id"), input.Quantity); err != nil {
		controllers.RespondError(c, err, "Failed to update cart item")
		return
	}
	c.JSON(http.StatusOK, cartView(st.Cart))
}

// DELETE /user/cart/:product_id
func DeleteCartItem(c *gin.Context) {
	st := middleware.StoresFrom(c)
	if err := st.Cart.RemoveFromCart(c.Request.Context(), c.Param("product_id")); err != nil {
		controllers.RespondError(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, cartView(st.Cart))
}
