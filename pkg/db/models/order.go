package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a customer order; OrderStatus is free text set by staff.
type Order struct {
	OrderID         uuid.UUID      `gorm:"column:order_id;type:uuid;primaryKey"`
	OrderDate       *time.Time     `gorm:"column:order_date"`
	CustomerName    string         `gorm:"column:customer_name;not null;default:''"`
	DeliveryAddress string         `gorm:"column:delivery_address;not null;default:''"`
	OrderStatus     *string        `gorm:"column:order_status"`
	OrderProducts   []OrderProduct `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// Status returns the status text, empty when unset.
func (o Order) Status() string {
	if o.OrderStatus == nil {
		return ""
	}
	return *o.OrderStatus
}
