package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every envconfig tag carries the full
// PRODEX_-prefixed variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and ops tooling.
const (
	EnvAppEnv   = "PRODEX_APP_ENV"
	EnvPort     = "PRODEX_APP_PORT"
	EnvDBDSN    = "PRODEX_DB_DSN"
	EnvDBHost   = "PRODEX_DB_HOST"
	EnvDBUser   = "PRODEX_DB_USER"
	EnvDBName   = "PRODEX_DB_NAME"
	EnvRedisURL = "PRODEX_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App            AppConfig
	Service        ServiceConfig
	DB             DBConfig
	Redis          RedisConfig
	WriteRateLimit WriteRateLimitConfig
	Idempotency    IdempotencyConfig
	FeatureFlags   FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:prodex_dev?mode=memory&cache=shared"
		}
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRODEX_APP_ENV" required:"true"`
	Port         string `envconfig:"PRODEX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRODEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRODEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PRODEX_SERVICE_KIND" default:"api"`
}

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type DBConfig struct {
	DSN    string `envconfig:"PRODEX_DB_DSN"`
	Driver string `envconfig:"PRODEX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRODEX_DB_HOST"`
	LegacyPort     int    `envconfig:"PRODEX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRODEX_DB_USER"`
	LegacyPassword string `envconfig:"PRODEX_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRODEX_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRODEX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRODEX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRODEX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRODEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRODEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRODEX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRODEX_REDIS_ADDR"`
	Password     string        `envconfig:"PRODEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRODEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRODEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRODEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRODEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRODEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRODEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WriteRateLimitConfig throttles the mutating professional endpoints per
// client IP. A zero window or limit disables the middleware.
type WriteRateLimitConfig struct {
	Window  time.Duration `envconfig:"PRODEX_WRITE_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"PRODEX_WRITE_RATE_LIMIT_IP_LIMIT" default:"60"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"PRODEX_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRODEX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRODEX_AUTO_MIGRATE" default:"false"`
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
