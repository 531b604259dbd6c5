package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "DISHPATCH_APP_ENV"
	EnvPort     = "DISHPATCH_APP_PORT"
	EnvRedisURL = "DISHPATCH_REDIS_URL"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Cart    CartConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DISHPATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"DISHPATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DISHPATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISHPATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"DISHPATCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DISHPATCH_REDIS_ADDR"`
	Password     string        `envconfig:"DISHPATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"DISHPATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DISHPATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DISHPATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DISHPATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DISHPATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DISHPATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig carries the pricing defaults served by the settings provider
// and the retention window for persisted session carts.
type CartConfig struct {
	SessionTTL             time.Duration `envconfig:"DISHPATCH_CART_SESSION_TTL" default:"168h"`
	TaxPercent             float64       `envconfig:"DISHPATCH_CART_TAX_PERCENT" default:"10"`
	DeliveryFeeCents       int64         `envconfig:"DISHPATCH_CART_DELIVERY_FEE_CENTS" default:"500"`
	MaxQuantityPerLineItem int           `envconfig:"DISHPATCH_CART_MAX_QTY_PER_LINE" default:"99"`
}

func (c CartConfig) validate() error {
	if c.TaxPercent < 0 || c.TaxPercent > 100 {
		return fmt.Errorf("%s must be between 0 and 100", "DISHPATCH_CART_TAX_PERCENT")
	}
	if c.DeliveryFeeCents < 0 {
		return fmt.Errorf("%s must be non-negative", "DISHPATCH_CART_DELIVERY_FEE_CENTS")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%s must be positive", "DISHPATCH_CART_SESSION_TTL")
	}
	return nil
}

type CatalogConfig struct {
	SeedPath string `envconfig:"DISHPATCH_CATALOG_SEED_PATH"`
}
