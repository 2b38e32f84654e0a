package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/junaidrashid-git/storefront/models"
	"gorm.io/gorm/clause"
)

// ProductQuery filters the catalog listing. Zero values disable a filter.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string // created_at, price or name
	Order    string // asc or desc
}

var productSortColumns = map[string]bool{"created_at": true, "price": true, "name": true}

// ListProducts returns the catalog, newest first unless q says otherwise.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	query := c.db.WithContext(ctx).Model(&models.Product{})

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}

	sortBy := q.SortBy
	if !productSortColumns[sortBy] {
		sortBy = "created_at"
	}
	desc := !strings.EqualFold(q.Order, "asc")

	var products []models.Product
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: desc}).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, queryError("products", "select", err)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, queryError("products", "select", err)
	}
	return &product, nil
}

// SaveProducts inserts products without an ID and updates the ones that carry
// an existing ID. It returns how many rows were created and updated.
func (c *Client) SaveProducts(ctx context.Context, products []models.Product) (created, updated int, err error) {
	db := c.db.WithContext(ctx)
	for i := range products {
		p := &products[i]
		if p.ID != "" {
			result := db.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
				"name":        p.Name,
				"description": p.Description,
				"price":       p.Price,
				"image_url":   p.ImageURL,
				"category":    p.Category,
			})
			if result.Error != nil {
				return created, updated, queryError("products", "update", result.Error)
			}
			if result.RowsAffected > 0 {
				updated++
				continue
			}
		}
		if err := db.Create(p).Error; err != nil {
			return created, updated, queryError("products", "insert", fmt.Errorf("%s: %w", p.Name, err))
		}
		created++
	}
	return created, updated, nil
}
