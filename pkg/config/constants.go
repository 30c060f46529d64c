package config

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv        = "FFL_APP_ENV"
	EnvPort          = "FFL_APP_PORT"
	EnvDBDSN         = "FFL_DB_DSN"
	EnvDBHost        = "FFL_DB_HOST"
	EnvDBUser        = "FFL_DB_USER"
	EnvDBName        = "FFL_DB_NAME"
	EnvRedisURL      = "FFL_REDIS_URL"
	EnvJWTSecret     = "FFL_JWT_SECRET"
	EnvJWTIssuer     = "FFL_JWT_ISSUER"
	EnvPublicSiteURL = "FFL_PUBLIC_SITE_URL"
	EnvAdminEmails   = "FFL_ADMIN_EMAILS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
