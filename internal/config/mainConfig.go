// Package config main config
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

// MainConfig with init data
type MainConfig struct {
	PostgresPort     string `env:"POSTGRES_PORT,notEmpty" envDefault:"5432"`
	PostgresHost     string `env:"POSTGRES_HOST,notEmpty" envDefault:"localhost"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,notEmpty" envDefault:"postgres"`
	PostgresUser     string `env:"POSTGRES_USER,notEmpty" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB,notEmpty" envDefault:"postgres"`
	Port             string `env:"PORT,notEmpty" envDefault:"5000"`
	Host             string `env:"HOST,notEmpty" envDefault:"localhost"`

	RedisAddr     string        `env:"REDIS_ADDR,notEmpty" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	PriceCacheTTL time.Duration `env:"PRICE_CACHE_TTL" envDefault:"5s"`

	// CacheBackend store of cached analytics: memory or redis
	CacheBackend      string        `env:"CACHE_BACKEND" envDefault:"memory"`
	AnalyticsCacheTTL time.Duration `env:"ANALYTICS_CACHE_TTL" envDefault:"30s"`

	CommissionRate float64 `env:"COMMISSION_RATE" envDefault:"0.001"`
	SlippageRate   float64 `env:"SLIPPAGE_RATE" envDefault:"0.0005"`
	RiskTolerance  string  `env:"RISK_TOLERANCE" envDefault:"medium"`

	SettleMaxRetries uint64        `env:"SETTLE_MAX_RETRIES" envDefault:"3"`
	SettleRetryBase  time.Duration `env:"SETTLE_RETRY_BASE" envDefault:"20ms"`

	AuditSchedule string `env:"AUDIT_SCHEDULE" envDefault:"0 */15 * * * *"`
	WatchSchedule string `env:"WATCH_SCHEDULE" envDefault:"*/10 * * * * *"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// NewMainConfig parsing config from .env file (if present) and environment
func NewMainConfig() (*MainConfig, error) {
	_ = godotenv.Load()

	mainConfig := &MainConfig{}

	err := env.Parse(mainConfig)
	if err != nil {
		return nil, fmt.Errorf("config - NewMainConfig - Parse:%w", err)
	}

	return mainConfig, nil
}

// PostgresURL connection string for pgxpool
func (c *MainConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PostgresUser, c.PostgresPassword,
		c.PostgresHost, c.PostgresPort, c.PostgresDB)
}
