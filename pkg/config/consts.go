package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "wastelink"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "WASTELINK_APP_ENV"
	EnvPort                   = "WASTELINK_APP_PORT"
	EnvDBDSN                  = "WASTELINK_DB_DSN"
	EnvDBHost                 = "WASTELINK_DB_HOST"
	EnvDBUser                 = "WASTELINK_DB_USER"
	EnvDBName                 = "WASTELINK_DB_NAME"
	EnvRedisURL               = "WASTELINK_REDIS_URL"
	EnvJWTSecret              = "WASTELINK_JWT_SECRET"
	EnvJWTIssuer              = "WASTELINK_JWT_ISSUER"
	EnvJWTExpMins             = "WASTELINK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "WASTELINK_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
