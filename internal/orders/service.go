package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/events"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/metrics"
	"gorm.io/gorm"
)

// ErrConcurrentUpdate signals that an existing order could not be updated.
var ErrConcurrentUpdate = errors.New("order was modified concurrently")

// Service implements order reads and the order write surfaces.
type Service interface {
	List(ctx context.Context) ([]OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	CreateFromForm(ctx context.Context, input OrderInput) (*OrderDTO, error)
	CreateFromAPI(ctx context.Context, input OrderInput) (*OrderDTO, error)
	Submit(ctx context.Context, input OrderInput) (*OrderDTO, error)
	Update(ctx context.Context, id uuid.UUID, input OrderInput) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups the order service collaborators.
type ServiceParams struct {
	Repo      Repository
	Tx        txRunner
	Catalog   catalog
	Publisher events.Publisher
	Metrics   *metrics.OrderMetrics
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	tx        txRunner
	catalog   catalog
	publisher events.Publisher
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs the order service.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Publisher == nil {
		p.Publisher = events.NoopPublisher{}
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		repo:      p.Repo,
		tx:        p.Tx,
		catalog:   p.Catalog,
		publisher: p.Publisher,
		metrics:   p.Metrics,
		logg:      p.Logger,
		now:       p.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "load order")
	}
	dto := FromModel(*row)
	return &dto, nil
}

// CreateFromForm always assigns a fresh id; the submitted one is ignored.
func (s *service) CreateFromForm(ctx context.Context, input OrderInput) (*OrderDTO, error) {
	input.OrderID = uuid.New()
	return s.create(ctx, input, metrics.SourceForm)
}

// CreateFromAPI keeps a caller id when present and defaults a missing date.
func (s *service) CreateFromAPI(ctx context.Context, input OrderInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		input.OrderID = uuid.New()
	}
	if input.OrderDate == nil {
		now := s.now().UTC()
		input.OrderDate = &now
	}
	return s.create(ctx, input, metrics.SourceAPI)
}

// Submit persists a checkout-built order.
func (s *service) Submit(ctx context.Context, input OrderInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		input.OrderID = uuid.New()
	}
	if input.OrderDate == nil {
		now := s.now().UTC()
		input.OrderDate = &now
	}
	return s.create(ctx, input, metrics.SourceCheckout)
}

func (s *service) create(ctx context.Context, input OrderInput, source string) (*OrderDTO, error) {
	order := models.Order{
		OrderID:         input.OrderID,
		OrderDate:       input.OrderDate,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		OrderStatus:     input.OrderStatus,
	}
	items, origin, err := persistableLineItems(order.OrderID, input.LineItems)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProductsExist(ctx, items, origin); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		exists, err := repo.Exists(ctx, order.OrderID)
		if err != nil {
			return err
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already exists")
		}
		if err := repo.Create(ctx, &order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "order already exists")
			}
			return err
		}
		return repo.CreateLineItems(ctx, items)
	})
	if err != nil {
		return nil, wrapRepoErr(err, "create order")
	}

	s.metrics.IncCreated(source)
	ctx = s.logg.WithOrderID(ctx, order.OrderID.String())
	s.publish(ctx, events.EventOrderCreated, events.OrderCreated{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		Source:       source,
		LineItems:    len(items),
	})
	s.logg.Info(s.logg.WithField(ctx, "source", source), "order created")

	return s.Get(ctx, order.OrderID)
}

// Update overwrites scalars and replaces the whole line-item set.
func (s *service) Update(ctx context.Context, id uuid.UUID, input OrderInput) error {
	if input.OrderID != id {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	items, origin, err := persistableLineItems(id, input.LineItems)
	if err != nil {
		return err
	}
	if err := s.ensureProductsExist(ctx, items, origin); err != nil {
		return err
	}

	var previousStatus string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousStatus = current.Status()

		affected, err := repo.UpdateScalars(ctx, &models.Order{
			OrderID:         id,
			OrderDate:       input.OrderDate,
			CustomerName:    strings.TrimSpace(input.CustomerName),
			DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
			OrderStatus:     input.OrderStatus,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			exists, existsErr := repo.Exists(ctx, id)
			if existsErr != nil {
				return existsErr
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, ErrConcurrentUpdate, "update order")
		}

		if err := repo.DeleteLineItems(ctx, id); err != nil {
			return err
		}
		return repo.CreateLineItems(ctx, items)
	})
	if err != nil {
		return wrapRepoErr(err, "update order")
	}

	ctx = s.logg.WithOrderID(ctx, id.String())
	if status := derefStatus(input.OrderStatus); status != previousStatus {
		s.statusChanged(ctx, id, previousStatus, status)
	}
	s.logg.Info(ctx, "order updated")
	return nil
}

// UpdateStatus persists any non-empty status. An empty status or unknown id is a no-op.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil
	}

	var previousStatus string
	var affected int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				return nil
			}
			return err
		}
		previousStatus = current.Status()
		affected, err = repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return wrapRepoErr(err, "update order status")
	}
	if affected == 0 {
		return nil
	}

	ctx = s.logg.WithOrderID(ctx, id.String())
	s.statusChanged(ctx, id, previousStatus, status)
	s.logg.Info(s.logg.WithField(ctx, "status", status), "order status updated")
	return nil
}

// Delete removes the order and its line-items; an unknown id is a no-op.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteLineItems(ctx, id); err != nil {
			return err
		}
		var err error
		affected, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return wrapRepoErr(err, "delete order")
	}
	if affected == 0 {
		return nil
	}

	ctx = s.logg.WithOrderID(ctx, id.String())
	s.metrics.IncDeleted()
	s.publish(ctx, events.EventOrderDeleted, events.OrderDeleted{OrderID: id})
	s.logg.Info(ctx, "order deleted")
	return nil
}

// ensureProductsExist keys unknown pizzas by their submitted line index.
func (s *service) ensureProductsExist(ctx context.Context, items []models.OrderProduct, origin []int) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PizzaID)
	}
	found, err := s.catalog.Catalog(ctx, ids)
	if err != nil {
		return err
	}
	missing := pkgerrors.FieldErrors{}
	for i, item := range items {
		if _, ok := found[item.PizzaID]; !ok {
			missing[lineItemField(origin[i], "pizzaId")] = "unknown pizza"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.Validation("order references unknown pizzas", missing)
	}
	return nil
}

func (s *service) statusChanged(ctx context.Context, id uuid.UUID, previous, status string) {
	_, err := enums.ParseOrderStatus(status)
	s.metrics.IncStatusChanged(status, err == nil)
	s.publish(ctx, events.EventOrderStatusChanged, events.OrderStatusChanged{
		OrderID:        id,
		PreviousStatus: previous,
		Status:         status,
	})
}

// publish never fails the request; the write has already committed.
func (s *service) publish(ctx context.Context, eventType events.EventType, data any) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "event_type", string(eventType)), "publish order event", err)
	}
}

func derefStatus(status *string) string {
	if status == nil {
		return ""
	}
	return *status
}

func wrapRepoErr(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
