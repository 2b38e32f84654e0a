package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/stores"
	"go.uber.org/zap"
)

const storesKey = "stores"

// Deps is shared by every request. Stores are built per request on top of it.
type Deps struct {
	Gateway     *gateway.Client
	Publisher   events.Publisher
	Log         *zap.Logger
	AdminAPIKey string
}

// Stores builds a fresh set of stores whose session lives in tokens.
func (d *Deps) Stores(tokens gateway.TokenStore) *stores.Stores {
	return stores.New(d.Gateway.WithTokens(tokens), d.Publisher, d.Log)
}

// StoresFrom returns the stores ValidateToken attached to the request.
func StoresFrom(c *gin.Context) *stores.Stores {
	v, ok := c.Get(storesKey)
	if !ok {
		return nil
	}
	st, _ := v.(*stores.Stores)
	return st
}
