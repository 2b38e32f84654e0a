package gateway

import (
	"context"

	"github.com/junaidrashid-git/storefront/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListCartItems returns the user's cart lines joined with their product,
// oldest line first. Lines whose product was deleted keep a nil Product.
func (c *Client) ListCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := c.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, queryError("cart_items", "select", err)
	}
	return items, nil
}

// AddCartQuantity inserts a line with delta items, or adds delta to the
// existing line, in one statement.
func (c *Client) AddCartQuantity(ctx context.Context, userID, productID string, delta int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: delta}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&item).Error
	if err != nil {
		return queryError("cart_items", "upsert", err)
	}
	return nil
}

// SetCartQuantity overwrites the quantity of the user's line for productID.
func (c *Client) SetCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	result := c.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return queryError("cart_items", "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return queryError("cart_items", "update", ErrNotFound)
	}
	return nil
}

// DeleteCartItem removes the user's line for productID if there is one.
func (c *Client) DeleteCartItem(ctx context.Context, userID, productID string) error {
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return queryError("cart_items", "delete", err)
	}
	return nil
}
