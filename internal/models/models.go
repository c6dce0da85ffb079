package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPlaced         = "PLACED"
	StatusConfirmed      = "CONFIRMED"
	StatusPreparing      = "PREPARING"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

// OrderStatuses is the full status set in lifecycle order.
var OrderStatuses = []string{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Phone     string    `gorm:"unique;not null"          json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `gorm:"not null"                 json:"created_at"`
}

type MenuItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"unique;not null"             json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool            `gorm:"default:true"                json:"available"`
	Category    string          `json:"category,omitempty"`
}

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerID  uint            `gorm:"index;not null"              json:"customer_id"`
	Status      string          `gorm:"not null"                    json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null"                    json:"created_at"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// UnitPrice is a snapshot of the menu price at order time; later menu price
// changes never touch it.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID    uint            `gorm:"index;not null"              json:"order_id"`
	MenuItemID uint            `gorm:"not null"                    json:"menu_item_id"`
	Quantity   uint            `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
