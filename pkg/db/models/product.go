package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a menu pizza with three optional price tiers.
type Product struct {
	PizzaID          uuid.UUID        `gorm:"column:pizza_id;type:uuid;primaryKey"`
	PizzaName        string           `gorm:"column:pizza_name;not null;default:''"`
	PizzaDescription string           `gorm:"column:pizza_description;not null;default:''"`
	Ingredients      string           `gorm:"column:ingredients;not null;default:''"`
	ImageURL         string           `gorm:"column:image_url;not null;default:''"`
	SmallPrice       *decimal.Decimal `gorm:"column:small_price;type:numeric(10,2)"`
	MediumPrice      *decimal.Decimal `gorm:"column:medium_price;type:numeric(10,2)"`
	LargePrice       *decimal.Decimal `gorm:"column:large_price;type:numeric(10,2)"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
