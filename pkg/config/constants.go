package config

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv          = "CABINET_APP_ENV"
	EnvPort            = "CABINET_APP_PORT"
	EnvDBDSN           = "CABINET_DB_DSN"
	EnvRedisURL        = "CABINET_REDIS_URL"
	EnvJWTSecret       = "CABINET_JWT_SECRET"
	EnvJWTIssuer       = "CABINET_JWT_ISSUER"
	EnvJWTExpMins      = "CABINET_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTL = "CABINET_REFRESH_TOKEN_TTL_MINUTES"
	EnvAnthropicAPIKey = "CABINET_ANTHROPIC_API_KEY"
)
