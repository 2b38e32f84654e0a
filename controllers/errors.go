// Package controllers holds what the per-area controller packages share.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/stores"
)

// StatusFor maps a store or gateway error to an HTTP status.
func StatusFor(err error) int {
	var verr *gateway.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, stores.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrInvalidCredentials), errors.Is(err, stores.ErrNotAuthenticated),
		errors.Is(err, stores.ErrMissingProfile):
		return http.StatusUnauthorized
	case errors.Is(err, gateway.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrEmailTaken), errors.Is(err, gateway.ErrCartChanged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error": ...}. Server errors are reported with
// fallback instead of the underlying message.
func RespondError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	msg := err.Error()
	var verr *gateway.ValidationError
	switch {
	case errors.As(err, &verr):
		msg = verr.Error()
	case errors.Is(err, gateway.ErrInvalidCredentials):
		msg = gateway.ErrInvalidCredentials.Error()
	case errors.Is(err, gateway.ErrEmailTaken):
		msg = gateway.ErrEmailTaken.Error()
	case errors.Is(err, gateway.ErrCartChanged):
		msg = gateway.ErrCartChanged.Error()
	case errors.Is(err, stores.ErrMissingProfile):
		msg = stores.ErrMissingProfile.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
