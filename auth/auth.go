// Package auth serves account endpoints: sign-up, sign-in, sign-out and the
// current session.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/controllers"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/middleware"
)

type SignUpInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signup
func SignUp(deps *middleware.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignUpInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		st := deps.Stores(gateway.NewMemoryTokenStore(""))
		if err := st.Session.SignUp(c.Request.Context(), input.Email, input.Password, input.FullName); err != nil {
			controllers.RespondError(c, err, "Failed to create account")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Account created, please sign in"})
	}
}

// POST /auth/signin
func SignIn(deps *middleware.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignInInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		tokens := gateway.NewMemoryTokenStore("")
		st := deps.Stores(tokens)
		if err := st.Session.SignIn(c.Request.Context(), input.Email, input.Password); err != nil {
			controllers.RespondError(c, err, "Failed to sign in")
			return
		}

		token, err := tokens.Load()
		if err != nil {
			controllers.RespondError(c, err, "Failed to sign in")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  st.Session.User(),
		})
	}
}

// POST /auth/signout
func SignOut(c *gin.Context) {
	st := middleware.StoresFrom(c)
	if err := st.Session.SignOut(c.Request.Context()); err != nil {
		controllers.RespondError(c, err, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GET /auth/session reports the state the bearer token hydrates to. A
// missing or stale token is not an error.
func Session(deps *middleware.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := deps.Stores(gateway.NewMemoryTokenStore(middleware.BearerToken(c)))
		if err := st.Session.Initialize(c.Request.Context()); err != nil {
			controllers.RespondError(c, err, "Failed to resolve session")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state": st.Session.State().String(),
			"user":  st.Session.User(),
		})
	}
}
