package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Auth      AuthConfig
	Cache     CacheConfig
	Events    EventsConfig
	Uploads   UploadConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	GinMode       string
	AllowedOrigin string
}

type DatabaseConfig struct {
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Required  bool

	// AdminEmails lists the register accounts allowed to log in.
	AdminEmails []string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type EventsConfig struct {
	KafkaBrokers []string
	OrderTopic   string
}

type UploadConfig struct {
	Dir     string
	BaseURL string
}

type AnalyticsConfig struct {
	RecentSignupWindow time.Duration
	UserReportLimit    int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "5000"),
			ReadTimeout:   getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:  getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			GinMode:       getEnv("GIN_MODE", "release"),
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "utensils"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("JWT_TTL", 72*time.Hour),
			Required:  getEnvBool("AUTH_REQUIRED", false),

			AdminEmails: splitCSV(getEnv("ADMIN_EMAILS", "")),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       getEnvDuration("ANALYTICS_CACHE_TTL", time.Minute),
		},
		Events: EventsConfig{
			KafkaBrokers: splitCSV(getEnv("KAFKA_BROKERS", "")),
			OrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "admin.order.status"),
		},
		Uploads: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL: getEnv("BASE_URL", "http://localhost:5000"),
		},
		Analytics: AnalyticsConfig{
			RecentSignupWindow: getEnvDuration("RECENT_SIGNUP_WINDOW", 30*24*time.Hour),
			UserReportLimit:    getEnvInt("USER_REPORT_LIMIT", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %q: must be a number between 1 and 65535", c.Server.Port)
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_REQUIRED is set but JWT_SECRET is empty")
	}
	if c.Auth.Required && len(c.Auth.AdminEmails) == 0 {
		return fmt.Errorf("AUTH_REQUIRED is set but ADMIN_EMAILS is empty")
	}
	if c.Analytics.UserReportLimit <= 0 {
		return fmt.Errorf("USER_REPORT_LIMIT must be positive")
	}
	return nil
}

// MySQLDSN returns DB_DSN when set, otherwise a DSN assembled from the DB_* parts.
// parseTime is required to scan DATETIME columns into time.Time, and clientFoundRows
// makes an UPDATE that matches a row report it as affected even when nothing changed.
func (d DatabaseConfig) MySQLDSN() (string, error) {
	var cfg *mysql.Config
	if d.DSN != "" {
		parsed, err := mysql.ParseDSN(d.DSN)
		if err != nil {
			return "", fmt.Errorf("parse DB_DSN: %w", err)
		}
		cfg = parsed
	} else {
		cfg = mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		cfg.DBName = d.Name
	}

	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		fmt.Fprintf(os.Stderr, "Warning: invalid duration for %s, using default\n", key)
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
