package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/controllers"
	"github.com/junaidrashid-git/storefront/middleware"
)

type UpdateUserInput struct {
	FullName *string `json:"full_name"`
}

// GET /user
func GetUser(c *gin.Context) {
	st := middleware.StoresFrom(c)
	c.JSON(http.StatusOK, st.Session.User())
}

// PUT /user
func UpdateUser(c *gin.Context) {
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := middleware.StoresFrom(c)
	if input.FullName != nil {
		if err := st.Session.UpdateProfile(c.Request.Context(), *input.FullName); err != nil {
			controllers.RespondError(c, err, "Failed to update user")
			return
		}
	}
	c.JSON(http.StatusOK, st.Session.User())
}
