package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/repo"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists the product catalog.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Bind(tx)}
}

// List returns the whole catalog ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.DB(ctx).Order("pizza_name ASC").Order("pizza_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("pizza_id = ?", id).First(&product).Error; err != nil {
		return nil, repo.NotFound(err, "product not found")
	}
	return &product, nil
}

// FindByIDs returns the products that exist for ids, keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.DB(ctx).Where("pizza_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PizzaID] = row
	}
	return out, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

// Update overwrites every editable column of an existing product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("pizza_id = ?", product.PizzaID).
		Updates(map[string]any{
			"pizza_name":        product.PizzaName,
			"pizza_description": product.PizzaDescription,
			"ingredients":       product.Ingredients,
			"image_url":         product.ImageURL,
			"small_price":       product.SmallPrice,
			"medium_price":      product.MediumPrice,
			"large_price":       product.LargePrice,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// Delete removes the product and every line-item that references it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.DB(ctx).Where("pizza_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
		return err
	}
	res := r.DB(ctx).Where("pizza_id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
