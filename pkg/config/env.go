package config

const (
	EnvPrefix = "PRONTO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv     = "PRONTO_APP_ENV"
	EnvPort       = "PRONTO_APP_PORT"
	EnvCSRFSecret = "PRONTO_CSRF_SECRET"
	EnvDBDSN      = "PRONTO_DB_DSN"
	EnvDBHost     = "PRONTO_DB_HOST"
	EnvDBUser     = "PRONTO_DB_USER"
	EnvDBName     = "PRONTO_DB_NAME"
	EnvUseSQLite  = "PRONTO_USE_SQLITE"
	EnvRedisURL   = "PRONTO_REDIS_URL"
	EnvJWTSecret  = "PRONTO_JWT_SECRET"
	EnvJWTIssuer  = "PRONTO_JWT_ISSUER"
	EnvAMQPURL    = "PRONTO_AMQP_URL"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
