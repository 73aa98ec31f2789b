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
	Media         MediaConfig
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
	Env          string `envconfig:"HARITHA_APP_ENV" required:"true"`
	Port         string `envconfig:"HARITHA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HARITHA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HARITHA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HARITHA_DB_DSN"`
	Driver string `envconfig:"HARITHA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HARITHA_DB_HOST"`
	LegacyPort     int    `envconfig:"HARITHA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HARITHA_DB_USER"`
	LegacyPassword string `envconfig:"HARITHA_DB_PASSWORD"`
	LegacyName     string `envconfig:"HARITHA_DB_NAME"`
	LegacySSLMode  string `envconfig:"HARITHA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HARITHA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HARITHA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HARITHA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HARITHA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HARITHA_REDIS_URL"`
	Address      string        `envconfig:"HARITHA_REDIS_ADDR"`
	Password     string        `envconfig:"HARITHA_REDIS_PASSWORD"`
	DB           int           `envconfig:"HARITHA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HARITHA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HARITHA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HARITHA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HARITHA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HARITHA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret          string `envconfig:"HARITHA_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"HARITHA_JWT_ISSUER" required:"true"`
	ExpirationHours int    `envconfig:"HARITHA_JWT_EXPIRATION_HOURS" default:"24"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HARITHA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HARITHA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HARITHA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HARITHA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HARITHA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HARITHA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HARITHA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HARITHA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"HARITHA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HARITHA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HARITHA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type MediaConfig struct {
	UploadDir      string `envconfig:"HARITHA_MEDIA_UPLOAD_DIR" default:"uploads"`
	PublicPrefix   string `envconfig:"HARITHA_MEDIA_PUBLIC_PREFIX" default:"/uploads"`
	MaxUploadMB    int    `envconfig:"HARITHA_MEDIA_MAX_UPLOAD_MB" default:"50"`
	ImageMaxWidth  int    `envconfig:"HARITHA_MEDIA_IMAGE_MAX_WIDTH" default:"1920"`
	ImageMaxHeight int    `envconfig:"HARITHA_MEDIA_IMAGE_MAX_HEIGHT" default:"1080"`
	ImageQuality   int    `envconfig:"HARITHA_MEDIA_IMAGE_QUALITY" default:"80"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HARITHA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HARITHA_AUTO_MIGRATE" default:"false"`
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
