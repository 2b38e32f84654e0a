package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/gateway"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := gw.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
