package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Locator       LocatorConfig
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
	Env          string `envconfig:"WASTELINK_APP_ENV" required:"true"`
	Port         string `envconfig:"WASTELINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WASTELINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WASTELINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WASTELINK_DB_DSN"`
	Driver string `envconfig:"WASTELINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WASTELINK_DB_HOST"`
	LegacyPort     int    `envconfig:"WASTELINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WASTELINK_DB_USER"`
	LegacyPassword string `envconfig:"WASTELINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"WASTELINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"WASTELINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WASTELINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WASTELINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WASTELINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WASTELINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WASTELINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WASTELINK_REDIS_ADDR"`
	Password     string        `envconfig:"WASTELINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"WASTELINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WASTELINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WASTELINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WASTELINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WASTELINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WASTELINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WASTELINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WASTELINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WASTELINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WASTELINK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WASTELINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WASTELINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WASTELINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WASTELINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WASTELINK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WASTELINK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WASTELINK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WASTELINK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"WASTELINK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"WASTELINK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"WASTELINK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WASTELINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WASTELINK_AUTO_MIGRATE" default:"false"`
}

// LocatorConfig tunes the nearby-company ranking placeholder.
type LocatorConfig struct {
	ResultCount  int     `envconfig:"WASTELINK_LOCATOR_RESULT_COUNT" default:"5"`
	JitterKM     float64 `envconfig:"WASTELINK_LOCATOR_JITTER_KM" default:"3"`
	DistanceUnit string  `envconfig:"WASTELINK_LOCATOR_DISTANCE_UNIT" default:"km"`
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
