package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Stripe    StripeConfig
	Shipping  ShippingConfig
	Admin     AdminConfig
	Site      SiteConfig
	RateLimit RateLimitConfig
	Features  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FFL_APP_ENV" required:"true"`
	Port         string `envconfig:"FFL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FFL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FFL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FFL_DB_DSN"`
	Driver string `envconfig:"FFL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FFL_DB_HOST"`
	LegacyPort     int    `envconfig:"FFL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FFL_DB_USER"`
	LegacyPassword string `envconfig:"FFL_DB_PASSWORD"`
	LegacyName     string `envconfig:"FFL_DB_NAME"`
	LegacySSLMode  string `envconfig:"FFL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FFL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FFL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FFL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FFL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FFL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FFL_REDIS_ADDR"`
	Password     string        `envconfig:"FFL_REDIS_PASSWORD"`
	DB           int           `envconfig:"FFL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FFL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FFL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FFL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FFL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FFL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FFL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FFL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FFL_JWT_EXPIRATION_MINUTES" default:"60"`
}

type StripeConfig struct {
	APIKey        string `envconfig:"FFL_STRIPE_API_KEY"`
	WebhookSecret string `envconfig:"FFL_STRIPE_WEBHOOK_SECRET"`
	Env           string `envconfig:"FFL_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type ShippingConfig struct {
	FlatRateCents int    `envconfig:"FFL_SHIPPING_FLAT_RATE_CENTS" default:"799"`
	Label         string `envconfig:"FFL_SHIPPING_LABEL" default:"Standard Shipping (5-7 business days)"`
}

type AdminConfig struct {
	// Emails is the operator allowlist; every address is lowercased on load.
	Emails []string `envconfig:"FFL_ADMIN_EMAILS"`
}

// IsAdmin reports whether the email is on the operator allowlist.
func (a AdminConfig) IsAdmin(email string) bool {
	candidate := strings.ToLower(strings.TrimSpace(email))
	if candidate == "" {
		return false
	}
	for _, allowed := range a.Emails {
		if strings.ToLower(strings.TrimSpace(allowed)) == candidate {
			return true
		}
	}
	return false
}

type RateLimitConfig struct {
	SubscribeWindow time.Duration `envconfig:"FFL_RATE_LIMIT_SUBSCRIBE_WINDOW" default:"1m"`
	SubscribeLimit  int           `envconfig:"FFL_RATE_LIMIT_SUBSCRIBE_LIMIT" default:"10"`
}

type SiteConfig struct {
	PublicURL string `envconfig:"FFL_PUBLIC_SITE_URL" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FFL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
