package gateway

import (
	"context"

	"github.com/junaidrashid-git/storefront/models"
)

// UserPatch lists the profile fields a user may change; nil fields are left
// untouched.
type UserPatch struct {
	FullName *string `json:"full_name"`
}

func (c *Client) FindUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, queryError("users", "select", err)
	}
	return &user, nil
}

func (c *Client) InsertUser(ctx context.Context, user *models.User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		return queryError("users", "insert", err)
	}
	return nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	updates := make(map[string]interface{})
	if patch.FullName != nil {
		updates["full_name"] = *patch.FullName
	}
	if len(updates) == 0 {
		return nil
	}

	result := c.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return queryError("users", "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return queryError("users", "update", ErrNotFound)
	}
	return nil
}
