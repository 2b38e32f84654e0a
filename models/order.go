package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by seller
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping
)

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string      `gorm:"not null;index" json:"-"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

// OrderItem snapshots the unit price at placement time so later catalog price
// changes do not rewrite order history.
type OrderItem struct {
	ID        string   `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string   `gorm:"not null;index" json:"order_id"`
	ProductID string   `gorm:"not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// All lists every model in creation order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Credential{},
		&Session{},
		&User{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
