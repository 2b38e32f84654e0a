// Package gateway is the storefront's backend service: credential-based
// sessions plus row-level access to the users, products, cart_items, orders
// and order_items tables. Stores and handlers reach the database only
// through a Client.
package gateway

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is a registered credential.
type Identity struct {
	UserID string
	Email  string
}

// Metadata is attached to an identity at sign-up.
type Metadata struct {
	FullName string
}

// Session is the authenticated session a token resolves to.
type Session struct {
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Client talks to the database on behalf of one session holder. Copies made
// with WithTokens share the connection pool.
type Client struct {
	db     *gorm.DB
	signer *Signer
	tokens TokenStore
	log    *zap.Logger

	passwordCost int
	now          func() time.Time
}

type Option func(*Client)

// WithPasswordCost overrides the bcrypt cost used at sign-up.
func WithPasswordCost(cost int) Option {
	return func(c *Client) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			c.passwordCost = cost
		}
	}
}

// WithClock overrides the time source used for session bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(db *gorm.DB, signer *Signer, tokens TokenStore, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		db:           db,
		signer:       signer,
		tokens:       tokens,
		log:          log.Named("gateway"),
		passwordCost: bcrypt.DefaultCost,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of c bound to another token store.
func (c *Client) WithTokens(tokens TokenStore) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// Tokens exposes the token store the client reads and writes sessions from.
func (c *Client) Tokens() TokenStore { return c.tokens }
