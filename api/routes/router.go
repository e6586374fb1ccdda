package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prontopizzas/pronto-backend/api/controllers"
	cartcontrollers "github.com/prontopizzas/pronto-backend/api/controllers/cart"
	ordercontrollers "github.com/prontopizzas/pronto-backend/api/controllers/orders"
	"github.com/prontopizzas/pronto-backend/api/middleware"
	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/internal/cart"
	"github.com/prontopizzas/pronto-backend/internal/checkout"
	"github.com/prontopizzas/pronto-backend/internal/orders"
	"github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/internal/tracking"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/metrics"
	"github.com/prontopizzas/pronto-backend/pkg/redis"
)

// RateLimitStore backs the shared fixed-window limiter.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (redis.Window, error)
}

// Dependencies are the collaborators the router wires into handlers. Redis
// backed fields are left nil when redis is not configured.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       redis.Pinger
	Idempotency redis.IdempotencyStore
	RateLimits  RateLimitStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Views       ordercontrollers.Renderer
	Products    products.Service
	Orders      orders.Service
	Cart        cart.Service
	Checkout    checkout.Service
	Tracking    tracking.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Authenticate(cfg.JWT, logg),
	)

	var page responses.ErrorPage
	if deps.Views != nil {
		page = deps.Views
	}

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	checkoutPolicy := middleware.NewRateLimitPolicy("checkout", cfg.RateLimit.CheckoutWindow, cfg.RateLimit.CheckoutLimit)
	trackingLimiter := middleware.NewIPLimiter(cfg.RateLimit.TrackingPerSecond, cfg.RateLimit.TrackingBurst)

	r.Route("/api", func(r chi.Router) {
		r.Route("/ProductsApi", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Products, logg))
			r.Get("/{id}", controllers.ProductsGet(deps.Products, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, enums.StaffRoles...))
				r.Post("/", controllers.ProductsCreate(deps.Products, logg))
				r.Put("/{id}", controllers.ProductsUpdate(deps.Products, logg))
				r.Delete("/{id}", controllers.ProductsDelete(deps.Products, logg))
			})
		})

		r.Route("/OrdersApi", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(deps.Orders, logg))
			r.Get("/{id}", ordercontrollers.Detail(deps.Orders, logg))
			r.With(middleware.Idempotency(deps.Idempotency, cfg.Cache.IdempotencyTTL, logg)).Post("/", ordercontrollers.Create(deps.Orders, logg))
		})

		r.Post("/cart/quote", cartcontrollers.CartQuote(deps.Cart, logg))

		r.With(
			middleware.RateLimit(checkoutPolicy, deps.RateLimits, logg),
			middleware.Idempotency(deps.Idempotency, cfg.Cache.IdempotencyTTL, logg),
		).Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.With(trackingLimiter.Middleware("tracking", logg)).Get("/tracking/{orderId}", controllers.TrackOrder(deps.Tracking, logg))
	})

	csrf := middleware.CSRF(cfg.App.CSRFSecret, cfg.App.IsProd(), page, logg)
	cookieAuth := middleware.AuthenticateCookie(cfg.JWT, logg)
	web := ordercontrollers.NewWebHandlers(deps.Orders, deps.Products, deps.Views, logg)

	r.Route("/Orders", func(r chi.Router) {
		r.Use(cookieAuth, csrf)
		r.Get("/", web.Index)
		r.Get("/Details/{id}", web.Details)
		r.Get("/Create", web.CreateForm)
		r.Post("/Create", web.CreateSubmit)
		r.Get("/Edit/{id}", web.EditForm)
		r.Post("/Edit/{id}", web.EditSubmit)
		r.Get("/Delete/{id}", web.DeleteConfirm)
		r.Post("/Delete/{id}", web.DeleteSubmit)
	})

	r.Route("/OrderManagement", func(r chi.Router) {
		r.Use(cookieAuth, middleware.RequireAnyRoleHTML(page, logg, enums.StaffRoles...), csrf)
		r.Get("/", ordercontrollers.ManagementIndex(deps.Orders, deps.Views, logg))
		r.Post("/Update", ordercontrollers.ManagementUpdate(deps.Orders, deps.Views, logg))
		r.Post("/Delete", ordercontrollers.ManagementDelete(deps.Orders, deps.Views, logg))
	})

	return r
}
