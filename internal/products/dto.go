package products

import (
	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"github.com/prontopizzas/pronto-backend/pkg/types"
)

// ProductDTO is the public catalog shape.
type ProductDTO struct {
	PizzaID          uuid.UUID    `json:"pizzaId"`
	PizzaName        string       `json:"pizzaName"`
	PizzaDescription string       `json:"pizzaDescription"`
	Ingredients      string       `json:"ingredients"`
	ImageURL         string       `json:"imageUrl"`
	SmallPrice       *types.Money `json:"smallPrice"`
	MediumPrice      *types.Money `json:"mediumPrice"`
	LargePrice       *types.Money `json:"largePrice"`
}

// ProductInput is a validated create/replace payload.
type ProductInput struct {
	PizzaName        string
	PizzaDescription string
	Ingredients      string
	ImageURL         string
	SmallPrice       *types.Money
	MediumPrice      *types.Money
	LargePrice       *types.Money
}

// FromModel maps a row onto the public shape.
func FromModel(p models.Product) ProductDTO {
	return ProductDTO{
		PizzaID:          p.PizzaID,
		PizzaName:        p.PizzaName,
		PizzaDescription: p.PizzaDescription,
		Ingredients:      p.Ingredients,
		ImageURL:         p.ImageURL,
		SmallPrice:       types.MoneyPtr(p.SmallPrice),
		MediumPrice:      types.MoneyPtr(p.MediumPrice),
		LargePrice:       types.MoneyPtr(p.LargePrice),
	}
}

func (in ProductInput) apply(p *models.Product) {
	p.PizzaName = in.PizzaName
	p.PizzaDescription = in.PizzaDescription
	p.Ingredients = in.Ingredients
	p.ImageURL = in.ImageURL
	p.SmallPrice = in.SmallPrice.DecimalPtr()
	p.MediumPrice = in.MediumPrice.DecimalPtr()
	p.LargePrice = in.LargePrice.DecimalPtr()
}
