package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "NEXUS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, spelled out so tests and deploy manifests can
// reference them without string drift.
const (
	EnvAppEnv   = "NEXUS_APP_ENV"
	EnvPort     = "NEXUS_APP_PORT"
	EnvLogLevel = "NEXUS_LOG_LEVEL"

	EnvDBDSN      = "NEXUS_DB_DSN"
	EnvDBHost     = "NEXUS_DB_HOST"
	EnvDBPort     = "NEXUS_DB_PORT"
	EnvDBUser     = "NEXUS_DB_USER"
	EnvDBPassword = "NEXUS_DB_PASSWORD"
	EnvDBName     = "NEXUS_DB_NAME"
	EnvDBSSLMode  = "NEXUS_DB_SSLMODE"

	EnvRedisURL = "NEXUS_REDIS_URL"

	EnvJWTSecret              = "NEXUS_JWT_SECRET"
	EnvJWTIssuer              = "NEXUS_JWT_ISSUER"
	EnvJWTExpMins             = "NEXUS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "NEXUS_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
