package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/types"
	"gorm.io/gorm"
)

const menuCacheName = "menu"

// Service exposes catalog reads and staff catalog management.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// MenuCache stores the serialized catalog; a nil cache disables caching.
type MenuCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

type service struct {
	repo  *Repository
	tx    txRunner
	cache MenuCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService constructs the product service.
func NewService(repo *Repository, tx txRunner, cache MenuCache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	if cached, ok := s.cachedMenu(ctx); ok {
		return cached, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}

	s.storeMenu(ctx, out)
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "load product")
	}
	dto := FromModel(*row)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	row := models.Product{PizzaID: uuid.New()}
	input.apply(&row)
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	s.invalidateMenu(ctx)
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	row := models.Product{PizzaID: id}
	input.apply(&row)
	if err := s.repo.Update(ctx, &row); err != nil {
		return nil, wrapRepoErr(err, "update product")
	}
	s.invalidateMenu(ctx)
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return wrapRepoErr(err, "delete product")
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *service) Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}
	return rows, nil
}

func (s *service) cachedMenu(ctx context.Context) ([]ProductDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached []ProductDTO
	found, err := s.cache.GetJSON(ctx, s.cache.CacheKey(menuCacheName), &cached)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "menu cache read failed")
		return nil, false
	}
	return cached, found
}

func (s *service) storeMenu(ctx context.Context, menu []ProductDTO) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.SetJSON(ctx, s.cache.CacheKey(menuCacheName), menu, s.ttl); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "menu cache write failed")
	}
}

func (s *service) invalidateMenu(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey(menuCacheName)); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "menu cache invalidation failed")
	}
}

func (in ProductInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if strings.TrimSpace(in.PizzaName) == "" {
		fields["pizzaName"] = "is required"
	}
	for name, price := range map[string]*types.Money{
		"smallPrice":  in.SmallPrice,
		"mediumPrice": in.MediumPrice,
		"largePrice":  in.LargePrice,
	} {
		if price != nil && price.IsNegative() {
			fields[name] = "must not be negative"
		}
	}
	if len(fields) > 0 {
		return pkgerrors.Validation("invalid product", fields)
	}
	return nil
}

func wrapRepoErr(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
