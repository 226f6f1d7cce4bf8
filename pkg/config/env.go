package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "FLOCKFILMS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "FLOCKFILMS_APP_ENV"
	EnvPort                   = "FLOCKFILMS_APP_PORT"
	EnvDBDSN                  = "FLOCKFILMS_DB_DSN"
	EnvDBHost                 = "FLOCKFILMS_DB_HOST"
	EnvDBUser                 = "FLOCKFILMS_DB_USER"
	EnvDBName                 = "FLOCKFILMS_DB_NAME"
	EnvRedisURL               = "FLOCKFILMS_REDIS_URL"
	EnvJWTSecret              = "FLOCKFILMS_JWT_SECRET"
	EnvJWTIssuer              = "FLOCKFILMS_JWT_ISSUER"
	EnvJWTExpMins             = "FLOCKFILMS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FLOCKFILMS_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
