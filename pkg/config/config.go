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
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cloudinary    CloudinaryConfig
	Ads           AdsConfig
	Stripe        StripeConfig
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
	Env          string `envconfig:"CRUNCHPERKS_APP_ENV" required:"true"`
	Port         string `envconfig:"CRUNCHPERKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CRUNCHPERKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRUNCHPERKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CRUNCHPERKS_DB_DSN"`
	Driver string `envconfig:"CRUNCHPERKS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CRUNCHPERKS_DB_HOST"`
	LegacyPort     int    `envconfig:"CRUNCHPERKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CRUNCHPERKS_DB_USER"`
	LegacyPassword string `envconfig:"CRUNCHPERKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CRUNCHPERKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CRUNCHPERKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRUNCHPERKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRUNCHPERKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRUNCHPERKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRUNCHPERKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRUNCHPERKS_REDIS_URL"`
	Address      string        `envconfig:"CRUNCHPERKS_REDIS_ADDR"`
	Password     string        `envconfig:"CRUNCHPERKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRUNCHPERKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRUNCHPERKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRUNCHPERKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRUNCHPERKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRUNCHPERKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRUNCHPERKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"CRUNCHPERKS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CRUNCHPERKS_JWT_ISSUER" required:"true"`
	// Partner sessions are valid for seven days.
	ExpirationMinutes int `envconfig:"CRUNCHPERKS_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CRUNCHPERKS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CRUNCHPERKS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CRUNCHPERKS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CRUNCHPERKS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CRUNCHPERKS_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig provisions the operations login used for application review and
// ad moderation. The hash is an encoded argon2id string.
type AdminConfig struct {
	Email        string `envconfig:"CRUNCHPERKS_ADMIN_EMAIL"`
	PasswordHash string `envconfig:"CRUNCHPERKS_ADMIN_PASSWORD_HASH"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow       time.Duration `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit   int           `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit      int           `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
	ApplicationWindow  time.Duration `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_APPLICATION_WINDOW" default:"5m"`
	ApplicationIPLimit int           `envconfig:"CRUNCHPERKS_AUTH_RATE_LIMIT_APPLICATION_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	// AutoApproveApplications flips freshly submitted applications straight to
	// approved. Testing convenience only, never a production default.
	AutoApproveApplications bool `envconfig:"CRUNCHPERKS_AUTO_APPROVE_APPLICATIONS" default:"false"`
	UseSQLite               bool `envconfig:"CRUNCHPERKS_USE_SQLITE" default:"false"`
	AutoMigrate             bool `envconfig:"CRUNCHPERKS_AUTO_MIGRATE" default:"false"`
}

type CloudinaryConfig struct {
	CloudName    string `envconfig:"CRUNCHPERKS_CLOUDINARY_CLOUD_NAME"`
	APIKey       string `envconfig:"CRUNCHPERKS_CLOUDINARY_API_KEY"`
	APISecret    string `envconfig:"CRUNCHPERKS_CLOUDINARY_API_SECRET"`
	UploadFolder string `envconfig:"CRUNCHPERKS_CLOUDINARY_UPLOAD_FOLDER" default:"crunch-perks/ads"`
}

type AdsConfig struct {
	ImageWidth  int `envconfig:"CRUNCHPERKS_ADS_IMAGE_WIDTH" default:"1920"`
	ImageHeight int `envconfig:"CRUNCHPERKS_ADS_IMAGE_HEIGHT" default:"1080"`
	MaxUploadMB int `envconfig:"CRUNCHPERKS_ADS_MAX_UPLOAD_MB" default:"5"`
}

type StripeConfig struct {
	APIKey string `envconfig:"CRUNCHPERKS_STRIPE_API_KEY"`
	Env    string `envconfig:"CRUNCHPERKS_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
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
