package products

import (
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// UnitPrice resolves the tier price of product for a size label. Line-item
// sizes are free text; only pricing requires a known tier with a set price.
func UnitPrice(product models.Product, sizeLabel string) (enums.ProductSize, decimal.Decimal, error) {
	size, err := enums.ParseProductSize(sizeLabel)
	if err != nil {
		return "", decimal.Zero, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown size %q", sizeLabel)
	}

	var price *decimal.Decimal
	switch size {
	case enums.ProductSizeSmall:
		price = product.SmallPrice
	case enums.ProductSizeMedium:
		price = product.MediumPrice
	case enums.ProductSizeLarge:
		price = product.LargePrice
	}
	if price == nil {
		return "", decimal.Zero, pkgerrors.Newf(pkgerrors.CodeValidation, "%s is not offered in size %s", product.PizzaName, size)
	}
	return size, *price, nil
}
