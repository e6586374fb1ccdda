package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/prontopizzas/pronto-backend/api/routes"
	"github.com/prontopizzas/pronto-backend/api/views"
	"github.com/prontopizzas/pronto-backend/internal/cart"
	"github.com/prontopizzas/pronto-backend/internal/checkout"
	"github.com/prontopizzas/pronto-backend/internal/orders"
	"github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/internal/tracking"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	"github.com/prontopizzas/pronto-backend/pkg/events"
	"github.com/prontopizzas/pronto-backend/pkg/instance"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/metrics"
	"github.com/prontopizzas/pronto-backend/pkg/migrate"
	"github.com/prontopizzas/pronto-backend/pkg/redis"
)

type closer interface {
	Close() error
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		os.Exit(1)
	}
}

// run owns every resource so deferred closes happen before the process exits.
func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []closer
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i].Close())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		return err
	}
	closers = append(closers, dbClient)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		return err
	}

	// Redis backs the menu cache, idempotency and the checkout limiter. Each
	// of those stays a nil interface when redis is not configured.
	var (
		redisPing   redis.Pinger
		menuCache   products.MenuCache
		idempotency redis.IdempotencyStore
		rateLimits  routes.RateLimitStore
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			return err
		}
		closers = append(closers, redisClient)
		redisPing, menuCache, idempotency, rateLimits = redisClient, redisClient, redisClient, redisClient
	} else {
		logg.Warn(ctx, "redis not configured; caching, idempotency and checkout rate limiting disabled")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(ctx, cfg.Events, logg.Component("events"))
		if err != nil {
			logg.Error(ctx, "failed to bootstrap amqp publisher", err)
			return err
		}
		closers = append(closers, amqpPublisher)
		publisher = amqpPublisher
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient, menuCache, cfg.Cache.MenuTTL, logg)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		return err
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:      orders.NewRepository(dbClient.DB()),
		Tx:        dbClient,
		Catalog:   productService,
		Publisher: publisher,
		Metrics:   metrics.NewOrderMetrics(registry),
		Logger:    logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		return err
	}

	cartService, err := cart.NewService(productService, cfg.Checkout.GSTRate)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		return err
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:          cartService,
		Orders:        orderService,
		Logger:        logg,
		ReadyEstimate: cfg.Checkout.ReadyEstimate,
		InitialStatus: cfg.Checkout.InitialStatus,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		return err
	}

	trackingService, err := tracking.NewService(orderService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create tracking service", err)
		return err
	}

	renderer, err := views.New()
	if err != nil {
		logg.Error(ctx, "failed to parse view templates", err)
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisPing,
			Idempotency: idempotency,
			RateLimits:  rateLimits,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Gatherer:    registry,
			Views:       renderer,
			Products:    productService,
			Orders:      orderService,
			Cart:        cartService,
			Checkout:    checkoutService,
			Tracking:    trackingService,
		}),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownWait)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		return err
	}
	logg.Info(ctx, "api server stopped")
	return nil
}
