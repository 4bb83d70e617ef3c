package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Billing   BillingConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogSQL   bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

type BillingConfig struct {
	// DefaultCurrency is reported when a tenant has no currency configured
	DefaultCurrency string
	// SeedTenantSlug creates a tenant with this slug on startup when set
	SeedTenantSlug string
	SeedTenantName string
}

type MetricsConfig struct {
	Enabled bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			LogSQL:   viper.GetBool("DB_LOG_SQL"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Billing: BillingConfig{
			DefaultCurrency: strings.ToUpper(viper.GetString("BILLING_DEFAULT_CURRENCY")),
			SeedTenantSlug:  viper.GetString("SEED_TENANT_SLUG"),
			SeedTenantName:  viper.GetString("SEED_TENANT_NAME"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "lumiso-billing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "lumiso")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_LOG_SQL", false)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("BILLING_DEFAULT_CURRENCY", "TRY")
	viper.SetDefault("METRICS_ENABLED", true)
}

// splitList reads comma separated env values such as CORS_ALLOWED_ORIGINS
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
