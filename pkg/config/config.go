package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for every flightboard variable.
const EnvPrefix = "FLIGHTBOARD"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv   = "FLIGHTBOARD_APP_ENV"
	EnvPort     = "FLIGHTBOARD_APP_PORT"
	EnvDBDSN    = "FLIGHTBOARD_DB_DSN"
	EnvDBHost   = "FLIGHTBOARD_DB_HOST"
	EnvDBUser   = "FLIGHTBOARD_DB_USER"
	EnvDBName   = "FLIGHTBOARD_DB_NAME"
	EnvRedisURL = "FLIGHTBOARD_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	Bootstrap     BootstrapConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"FLIGHTBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"FLIGHTBOARD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLIGHTBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLIGHTBOARD_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"FLIGHTBOARD_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FLIGHTBOARD_DB_DSN"`

	LegacyHost     string `envconfig:"FLIGHTBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"FLIGHTBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLIGHTBOARD_DB_USER"`
	LegacyPassword string `envconfig:"FLIGHTBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLIGHTBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLIGHTBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLIGHTBOARD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLIGHTBOARD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLIGHTBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLIGHTBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLIGHTBOARD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FLIGHTBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"FLIGHTBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLIGHTBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLIGHTBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLIGHTBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLIGHTBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLIGHTBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLIGHTBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig shapes the session cookie pair.
type SessionConfig struct {
	CookieDomain string `envconfig:"FLIGHTBOARD_SESSION_COOKIE_DOMAIN"`
	CookieSecure bool   `envconfig:"FLIGHTBOARD_SESSION_COOKIE_SECURE" default:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FLIGHTBOARD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FLIGHTBOARD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FLIGHTBOARD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FLIGHTBOARD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FLIGHTBOARD_ARGON_KEY_LEN" default:"32"`
}

// BootstrapConfig controls the explicit first-run owner seed. The default
// credentials exist for first deployment only and are logged loudly when used;
// set FLIGHTBOARD_BOOTSTRAP_OWNER=false once a real owner account exists.
type BootstrapConfig struct {
	SeedOwner     bool   `envconfig:"FLIGHTBOARD_BOOTSTRAP_OWNER" default:"true"`
	OwnerUsername string `envconfig:"FLIGHTBOARD_BOOTSTRAP_OWNER_USERNAME" default:"rex"`
	OwnerPassword string `envconfig:"FLIGHTBOARD_BOOTSTRAP_OWNER_PASSWORD" default:"887719"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FLIGHTBOARD_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"FLIGHTBOARD_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FLIGHTBOARD_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FLIGHTBOARD_AUTO_MIGRATE" default:"false"`
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
