package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/auth"
	"github.com/junaidrashid-git/storefront/middleware"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, deps *middleware.Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignUp(deps))
		authGroup.POST("/signin", auth.SignIn(deps))
		authGroup.GET("/session", auth.Session(deps))
		authGroup.POST("/signout", middleware.ValidateToken(deps), auth.SignOut)
	}
}
