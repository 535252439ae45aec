package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Anthropic    AnthropicConfig
	CocktailDB   CocktailDBConfig
	Recipes      RecipesConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"CABINET_APP_ENV" required:"true"`
	Port         string   `envconfig:"CABINET_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"CABINET_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"CABINET_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"CABINET_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CABINET_DB_DSN"`
	Driver string `envconfig:"CABINET_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"CABINET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CABINET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CABINET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CABINET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CABINET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CABINET_REDIS_ADDR"`
	Password     string        `envconfig:"CABINET_REDIS_PASSWORD"`
	DB           int           `envconfig:"CABINET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CABINET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CABINET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CABINET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CABINET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CABINET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CABINET_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CABINET_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CABINET_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CABINET_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CABINET_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CABINET_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CABINET_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CABINET_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CABINET_ARGON_KEY_LEN" default:"32"`
}

type AnthropicConfig struct {
	APIKey            string `envconfig:"CABINET_ANTHROPIC_API_KEY" required:"true"`
	IdentifyModel     string `envconfig:"CABINET_AI_IDENTIFY_MODEL" default:"claude-haiku-4-5-20251001"`
	RecipeModel       string `envconfig:"CABINET_AI_RECIPE_MODEL" default:"claude-haiku-4-5-20251001"`
	IdentifyMaxTokens int    `envconfig:"CABINET_AI_IDENTIFY_MAX_TOKENS" default:"1024"`
	RecipeMaxTokens   int    `envconfig:"CABINET_AI_RECIPE_MAX_TOKENS" default:"2048"`
}

type CocktailDBConfig struct {
	BaseURL string `envconfig:"CABINET_COCKTAILDB_BASE_URL" default:"https://www.thecocktaildb.com/api/json/v1/1"`
}

type RecipesConfig struct {
	SuggestionCount int `envconfig:"CABINET_RECIPE_SUGGESTION_COUNT" default:"8"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CABINET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CABINET_AUTO_MIGRATE" default:"false"`
}
