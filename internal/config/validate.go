package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage driver %q", DriverPostgres)
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for storage driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverRedis, c.Storage.Driver)
	}

	if err := c.Marketplace.validate(); err != nil {
		return fmt.Errorf("marketplace: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Questions.MaxBatchSize <= 0 {
		return fmt.Errorf("questions.max_batch_size must be > 0 (got %d)", c.Questions.MaxBatchSize)
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.AuthPerMinute <= 0) {
		return fmt.Errorf("ratelimit limits must be > 0")
	}

	return nil
}

func (m *MarketplaceConfig) validate() error {
	if m.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	if m.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be > 0 (got %v)", m.RequestsPerSecond)
	}
	if m.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be > 0 (got %d)", m.SearchLimit)
	}
	if m.TitleConcurrency <= 0 {
		return fmt.Errorf("title_concurrency must be > 0 (got %d)", m.TitleConcurrency)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case "":
		return nil
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q, %q or empty (got %q)", ProviderOpenAI, ProviderAnthropic, l.Provider)
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %q", l.Provider)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2] (got %v)", l.Temperature)
	}
	if l.PreviousAnswers < 0 {
		return fmt.Errorf("previous_answers must be >= 0 (got %d)", l.PreviousAnswers)
	}
	return nil
}
