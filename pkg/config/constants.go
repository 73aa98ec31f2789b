package config

// EnvPrefix scopes every configuration variable read by envconfig.
const EnvPrefix = "HARITHA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "HARITHA_APP_ENV"
	EnvPort      = "HARITHA_APP_PORT"
	EnvDBDSN     = "HARITHA_DB_DSN"
	EnvDBHost    = "HARITHA_DB_HOST"
	EnvDBUser    = "HARITHA_DB_USER"
	EnvDBName    = "HARITHA_DB_NAME"
	EnvRedisURL  = "HARITHA_REDIS_URL"
	EnvJWTSecret = "HARITHA_JWT_SECRET"
	EnvJWTIssuer = "HARITHA_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
