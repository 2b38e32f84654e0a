package stores

import (
	"context"
	"errors"

	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
)

// Checkout turns the current cart into an order.
type Checkout struct {
	cart      *CartStore
	orders    OrderTable
	identity  Identity
	publisher events.Publisher
	log       *zap.Logger
}

func NewCheckout(cart *CartStore, orders OrderTable, identity Identity, publisher events.Publisher, log *zap.Logger) *Checkout {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Checkout{
		cart:      cart,
		orders:    orders,
		identity:  identity,
		publisher: publisher,
		log:       log.Named("checkout"),
	}
}

// PlaceOrder refreshes the cart, writes an order for its lines and clears
// them. The order, its items and the cart cleanup commit together. When the
// cart changed underneath, nothing is written and the cart is re-read.
func (c *Checkout) PlaceOrder(ctx context.Context) (*models.Order, error) {
	userID, ok := c.identity.UserID()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	order, err := c.place(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.publisher.Publish(ctx, events.NewOrderPlaced(order)); err != nil {
		c.log.Warn("order event not delivered", zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

func (c *Checkout) place(ctx context.Context, userID string) (*models.Order, error) {
	c.cart.ops.Lock()
	defer c.cart.ops.Unlock()
	defer c.cart.begin()()

	if err := c.cart.fetch(ctx); err != nil {
		return nil, err
	}
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := BuildOrder(items)
	if err := c.orders.PlaceOrder(ctx, userID, order); err != nil {
		if errors.Is(err, gateway.ErrCartChanged) {
			if ferr := c.cart.fetch(ctx); ferr != nil {
				c.log.Warn("cart refresh after conflict failed", zap.Error(ferr))
			}
		}
		return nil, err
	}

	if err := c.cart.fetch(ctx); err != nil {
		c.log.Warn("cart refresh after checkout failed", zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

// BuildOrder prices the lines at their current product price.
func BuildOrder(items []models.CartItem) *models.Order {
	order := &models.Order{
		TotalAmount: CartTotal(items),
		Status:      models.OrderStatusPending,
		Items:       make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice(),
		})
	}
	return order
}
