package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ApprovalMode selects how admin approval reaches the active status.
const (
	// ApprovalModeDirect: admin approval transitions a coupon straight to active.
	ApprovalModeDirect = "direct"
	// ApprovalModeTwoStep: admin approval yields approved; the owning creator
	// activates separately via PUT /api/coupons/:id/activate.
	ApprovalModeTwoStep = "two_step"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	QR     QRConfig
	Coupon CouponConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// DBConfig holds database-related configuration.
// WARNING: Default password is for local development only.
// In production, always set DB_PASSWORD via environment variable.
// In production, set DB_SSLMODE to "require" or "verify-full".
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name     string `envconfig:"DB_NAME" default:"coupon_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"` // Use "require" in production
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// AuthConfig holds token-signing configuration.
// WARNING: the default secret is for local development only.
type AuthConfig struct {
	JWTSecret    string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"` // CHANGE IN PRODUCTION
	TokenTTLMins int    `envconfig:"TOKEN_TTL_MINUTES" default:"60"`
}

// QRConfig holds QR artifact generation configuration.
type QRConfig struct {
	Dir        string `envconfig:"QR_DIR" default:"public/qrcodes"`
	PublicPath string `envconfig:"QR_PUBLIC_PATH" default:"/qrcodes"`
}

// CouponConfig holds coupon lifecycle configuration.
type CouponConfig struct {
	ApprovalMode string `envconfig:"APPROVAL_MODE" default:"direct"`
}

// Validate checks cross-field constraints that envconfig cannot express.
func (c *Config) Validate() error {
	if c.Coupon.ApprovalMode != ApprovalModeDirect && c.Coupon.ApprovalMode != ApprovalModeTwoStep {
		return fmt.Errorf("invalid APPROVAL_MODE %q: must be %q or %q",
			c.Coupon.ApprovalMode, ApprovalModeDirect, ApprovalModeTwoStep)
	}
	if c.Auth.TokenTTLMins <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.Auth.TokenTTLMins)
	}
	return nil
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
