package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	RateLimit    RateLimitConfig
	Events       EventsConfig
	Checkout     CheckoutConfig
	Cache        CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string        `envconfig:"PRONTO_APP_ENV" required:"true"`
	Port         string        `envconfig:"PRONTO_APP_PORT" required:"true"`
	LogLevel     string        `envconfig:"PRONTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool          `envconfig:"PRONTO_LOG_WARN_STACK" default:"false"`
	CSRFSecret   string        `envconfig:"PRONTO_CSRF_SECRET" required:"true"`
	CORSOrigins  []string      `envconfig:"PRONTO_CORS_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout  time.Duration `envconfig:"PRONTO_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"PRONTO_HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownWait time.Duration `envconfig:"PRONTO_HTTP_SHUTDOWN_WAIT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRONTO_DB_DSN"`
	Driver string `envconfig:"PRONTO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PRONTO_DB_HOST"`
	Port     int    `envconfig:"PRONTO_DB_PORT" default:"5432"`
	User     string `envconfig:"PRONTO_DB_USER"`
	Password string `envconfig:"PRONTO_DB_PASSWORD"`
	Name     string `envconfig:"PRONTO_DB_NAME"`
	SSLMode  string `envconfig:"PRONTO_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"PRONTO_SQLITE_PATH" default:"pronto.db"`

	MaxOpenConns    int           `envconfig:"PRONTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRONTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRONTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRONTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRONTO_REDIS_URL"`
	Address      string        `envconfig:"PRONTO_REDIS_ADDR"`
	Password     string        `envconfig:"PRONTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRONTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRONTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRONTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRONTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRONTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRONTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// JWTConfig verifies tokens minted by the external identity provider.
type JWTConfig struct {
	Secret            string `envconfig:"PRONTO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PRONTO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PRONTO_JWT_EXPIRATION_MINUTES" default:"60"`
	CookieName        string `envconfig:"PRONTO_JWT_COOKIE" default:"pronto_token"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRONTO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRONTO_AUTO_MIGRATE" default:"false"`
}

type RateLimitConfig struct {
	TrackingPerSecond float64       `envconfig:"PRONTO_RATE_LIMIT_TRACKING_RPS" default:"2"`
	TrackingBurst     int           `envconfig:"PRONTO_RATE_LIMIT_TRACKING_BURST" default:"5"`
	CheckoutWindow    time.Duration `envconfig:"PRONTO_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutLimit     int           `envconfig:"PRONTO_RATE_LIMIT_CHECKOUT_LIMIT" default:"10"`
}

type EventsConfig struct {
	AMQPURL  string `envconfig:"PRONTO_AMQP_URL"`
	Exchange string `envconfig:"PRONTO_AMQP_EXCHANGE" default:"orders_events"`
}

type CheckoutConfig struct {
	GSTRate       string        `envconfig:"PRONTO_CHECKOUT_GST_RATE" default:"0.15"`
	ReadyEstimate time.Duration `envconfig:"PRONTO_CHECKOUT_READY_ESTIMATE" default:"35m"`
	InitialStatus string        `envconfig:"PRONTO_CHECKOUT_INITIAL_STATUS" default:"Ordered"`
}

type CacheConfig struct {
	MenuTTL        time.Duration `envconfig:"PRONTO_CACHE_MENU_TTL" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"PRONTO_IDEMPOTENCY_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
