package gateway

import (
	"context"

	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceOrder writes order with its items and removes the purchased lines from
// the user's cart in a single transaction. Each line is removed only while it
// still holds the ordered quantity; when another writer changed it first the
// transaction rolls back with ErrCartChanged.
func (c *Client) PlaceOrder(ctx context.Context, userID string, order *models.Order) error {
	order.UserID = userID

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Where("user_id = ? AND product_id = ? AND quantity = ?",
				userID, item.ProductID, item.Quantity).
				Delete(&models.CartItem{})
			if result.Error != nil {
				return queryError("cart_items", "delete", result.Error)
			}
			if result.RowsAffected != 1 {
				return queryError("cart_items", "delete", ErrCartChanged)
			}
		}
		if err := tx.Create(order).Error; err != nil {
			return queryError("orders", "insert", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)))
	return nil
}

// ListOrders returns the user's orders newest first with items and products.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := c.db.WithContext(ctx).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, queryError("orders", "select", err)
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := c.db.WithContext(ctx).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, queryError("orders", "select", err)
	}
	return &order, nil
}
