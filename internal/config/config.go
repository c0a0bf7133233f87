package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Auth        AuthConfig        `yaml:"auth"`
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	LLM         LLMConfig         `yaml:"llm"`
	Questions   QuestionsConfig   `yaml:"questions"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"ratelimit"`
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// LLM providers. An empty provider disables suggestions.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects the persistence driver.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"         env-default:"localhost:6379"`
	Username    string        `yaml:"username"     env:"REDIS_USERNAME"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	TLS         bool          `yaml:"tls"          env:"REDIS_TLS"          env-default:"false"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds dashboard session settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"oberyn"`
	SessionTTL       time.Duration `yaml:"session_ttl"        env:"AUTH_SESSION_TTL"        env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// MarketplaceConfig holds MercadoLibre API settings. Credentials may be
// absent at startup; calls then fail with an authorization error.
type MarketplaceConfig struct {
	ClientID          string        `yaml:"client_id"          env:"ML_CLIENT_ID"`
	ClientSecret      string        `yaml:"client_secret"      env:"ML_CLIENT_SECRET"`
	RefreshToken      string        `yaml:"refresh_token"      env:"ML_REFRESH_TOKEN"`
	SellerID          string        `yaml:"seller_id"          env:"ML_SELLER_ID"`
	BaseURL           string        `yaml:"base_url"           env:"ML_BASE_URL"           env-default:"https://api.mercadolibre.com"`
	Timeout           time.Duration `yaml:"timeout"            env:"ML_TIMEOUT"            env-default:"10s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"ML_REQUESTS_PER_SECOND" env-default:"10"`
	SearchLimit       int           `yaml:"search_limit"       env:"ML_SEARCH_LIMIT"       env-default:"100"`
	TitleConcurrency  int           `yaml:"title_concurrency"  env:"ML_TITLE_CONCURRENCY"  env-default:"8"`
}

// HasCredentials reports whether a token refresh can be attempted.
func (c MarketplaceConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// LLMConfig holds answer-suggestion settings.
type LLMConfig struct {
	Provider           string  `yaml:"provider"             env:"LLM_PROVIDER"`
	APIKey             string  `yaml:"api_key"              env:"LLM_API_KEY"`
	Model              string  `yaml:"model"                env:"LLM_MODEL"`
	Temperature        float64 `yaml:"temperature"          env:"LLM_TEMPERATURE"          env-default:"0.7"`
	MaxTokens          int     `yaml:"max_tokens"           env:"LLM_MAX_TOKENS"           env-default:"1000"`
	BaseURL            string  `yaml:"base_url"             env:"LLM_BASE_URL"`
	PromptTemplatePath string  `yaml:"prompt_template_path" env:"LLM_PROMPT_TEMPLATE_PATH"`
	PreviousAnswers    int     `yaml:"previous_answers"     env:"LLM_PREVIOUS_ANSWERS"     env-default:"10"`
}

// Enabled reports whether a completion provider is configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ""
}

// QuestionsConfig holds question workflow settings.
type QuestionsConfig struct {
	MaxBatchSize int `yaml:"max_batch_size" env:"QUESTIONS_MAX_BATCH_SIZE" env-default:"50"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds inbound per-IP rate limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATELIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATELIMIT_PER_MINUTE"       env-default:"120"`
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATELIMIT_AUTH_PER_MINUTE"  env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATELIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
