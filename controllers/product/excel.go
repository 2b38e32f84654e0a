package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/spreadsheet"
)

// POST /admin/products/import-excel
func ImportProductsFromExcel(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		products, skipped, err := spreadsheet.ReadProducts(file, excelFileHeader.Size)
		if errors.Is(err, spreadsheet.ErrEmptySheet) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		created, updated, err := gw.SaveProducts(c.Request.Context(), products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": created,
			"updated_count": updated,
			"skipped_count": skipped,
		})
	}
}
