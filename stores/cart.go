package stores

import (
	"context"
	"sync"

	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
)

// Identity reports the signed-in user.
type Identity interface {
	UserID() (string, bool)
}

// CartStore mirrors the signed-in user's cart. Every mutation writes through
// the gateway and then replaces the local lines with a fresh read.
type CartStore struct {
	table    CartTable
	identity Identity
	log      *zap.Logger

	// ops serializes write-then-fetch sequences.
	ops sync.Mutex

	mu       sync.RWMutex
	items    []models.CartItem
	inFlight int
}

func NewCartStore(table CartTable, identity Identity, log *zap.Logger) *CartStore {
	return &CartStore{table: table, identity: identity, log: log.Named("cart")}
}

func (c *CartStore) FetchCart(ctx context.Context) error {
	c.ops.Lock()
	defer c.ops.Unlock()
	return c.fetch(ctx)
}

// AddToCart adds quantity units of a product, merging into an existing line.
func (c *CartStore) AddToCart(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return &gateway.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return c.mutate(ctx, func(userID string) error {
		return c.table.AddCartQuantity(ctx, userID, productID, quantity)
	})
}

// UpdateQuantity sets the quantity of an existing line.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return &gateway.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return c.mutate(ctx, func(userID string) error {
		return c.table.SetCartQuantity(ctx, userID, productID, quantity)
	})
}

func (c *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	return c.mutate(ctx, func(userID string) error {
		return c.table.DeleteCartItem(ctx, userID, productID)
	})
}

// Items returns a copy of the current lines, oldest first.
func (c *CartStore) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CartItem(nil), c.items...)
}

// Loading reports whether any cart operation is in progress.
func (c *CartStore) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight > 0
}

func (c *CartStore) Total() float64 {
	return CartTotal(c.Items())
}

// Count is the number of units across all lines.
func (c *CartStore) Count() int {
	n := 0
	for _, item := range c.Items() {
		n += item.Quantity
	}
	return n
}

// Reset drops the cached lines without touching the gateway.
func (c *CartStore) Reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *CartStore) mutate(ctx context.Context, write func(userID string) error) error {
	c.ops.Lock()
	defer c.ops.Unlock()
	defer c.begin()()

	userID, ok := c.identity.UserID()
	if !ok {
		return ErrNotAuthenticated
	}
	if err := write(userID); err != nil {
		return err
	}
	return c.fetch(ctx)
}

// fetch must be called with ops held.
func (c *CartStore) fetch(ctx context.Context) error {
	defer c.begin()()

	userID, ok := c.identity.UserID()
	if !ok {
		return ErrNotAuthenticated
	}
	items, err := c.table.ListCartItems(ctx, userID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *CartStore) begin() func() {
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}
}

// CartTotal sums price times quantity. Lines whose product no longer
// resolves count as free.
func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice() * float64(item.Quantity)
	}
	return total
}
