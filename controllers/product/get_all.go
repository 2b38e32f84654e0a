package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/gateway"
)

// GET /products
func GetProducts(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := gateway.ProductQuery{
			Search:   strings.TrimSpace(c.Query("search")),
			Category: c.Query("category"),
			SortBy:   c.DefaultQuery("sort_by", "created_at"),
			Order:    strings.ToLower(c.DefaultQuery("order", "desc")),
		}

		if s := c.Query("min_price"); s != "" {
			mp, err := strconv.ParseFloat(s, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			q.MinPrice = &mp
		}
		if s := c.Query("max_price"); s != "" {
			mp, err := strconv.ParseFloat(s, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			q.MaxPrice = &mp
		}

		products, err := gw.ListProducts(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
