// Package events publishes order lifecycle events to Kafka and to live
// websocket listeners.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/junaidrashid-git/storefront/models"
	"golang.org/x/sync/errgroup"
)

// OrderPlaced is emitted once an order and its items are committed.
type OrderPlaced struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderLine `json:"items"`
	PlacedAt    time.Time   `json:"placed_at"`
}

type OrderLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func NewOrderPlaced(order *models.Order) OrderPlaced {
	lines := make([]OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return OrderPlaced{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       lines,
		PlacedAt:    order.CreatedAt,
	}
}

// Publisher delivers order events to one sink.
type Publisher interface {
	Publish(ctx context.Context, event OrderPlaced) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderPlaced) error { return nil }

// Fanout publishes to every sink concurrently. A failing sink does not stop
// the others; all failures are returned joined.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event OrderPlaced) error {
	errs := make([]error, len(f))
	var g errgroup.Group
	for i, p := range f {
		i, p := i, p
		g.Go(func() error {
			errs[i] = p.Publish(ctx, event)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
