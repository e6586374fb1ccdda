package models

import "github.com/google/uuid"

// OrderProduct is an order line-item keyed by (order, pizza, size).
type OrderProduct struct {
	OrderID  uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	PizzaID  uuid.UUID `gorm:"column:pizza_id;type:uuid;primaryKey"`
	Size     string    `gorm:"column:size;primaryKey;not null;default:''"`
	Quantity int       `gorm:"column:quantity;not null"`
	Product  *Product  `gorm:"foreignKey:PizzaID;references:PizzaID;constraint:OnDelete:CASCADE"`
}
