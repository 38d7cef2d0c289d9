package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type AppConfig struct {
	Name           string        `mapstructure:"name"`
	Env            string        `mapstructure:"env"`
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RateLimit      int           `mapstructure:"rate_limit"`
	Seed           bool          `mapstructure:"seed"`
	SeedDir        string        `mapstructure:"seed_dir"`
}

type DatabaseConfig struct {
	Host             string        `mapstructure:"host"`
	Port             string        `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	DBName           string        `mapstructure:"dbname"`
	SSLMode          string        `mapstructure:"sslmode"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	MaxOpenConns     int           `mapstructure:"max_open_conns"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	AutoMigrate      bool          `mapstructure:"auto_migrate"`
	SlowThreshold    time.Duration `mapstructure:"slow_threshold"`
}

type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type MetricsConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	BacklogSchedule string `mapstructure:"backlog_schedule"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// LoadConfig membaca ENV (setelah LoadEnv) ke Config bertipe.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "bhashaflow")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.request_timeout", "5s")
	v.SetDefault("app.rate_limit", 100)
	v.SetDefault("app.seed_dir", "internals/seeds/data")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "require")
	v.SetDefault("database.statement_timeout", "3s")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.slow_threshold", "200ms")
	v.SetDefault("jwt.access_ttl", "12h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.backlog_schedule", "@every 1m")

	v.AutomaticEnv()

	binds := map[string]string{
		"app.name":                   "APP_NAME",
		"app.env":                    "APP_ENV",
		"app.port":                   "PORT",
		"app.request_timeout":        "REQUEST_TIMEOUT",
		"app.cors_origins":           "CORS_ORIGINS",
		"app.rate_limit":             "RATE_LIMIT_PER_MIN",
		"app.seed":                   "SEED",
		"app.seed_dir":               "SEED_DIR",
		"database.host":              "DB_HOST",
		"database.port":              "DB_PORT",
		"database.user":              "DB_USER",
		"database.password":          "DB_PASSWORD",
		"database.dbname":            "DB_NAME",
		"database.sslmode":           "DB_SSLMODE",
		"database.statement_timeout": "DB_STATEMENT_TIMEOUT",
		"database.max_open_conns":    "DB_MAX_OPEN_CONNS",
		"database.max_idle_conns":    "DB_MAX_IDLE_CONNS",
		"database.auto_migrate":      "DB_AUTO_MIGRATE",
		"database.slow_threshold":    "DB_SLOW_THRESHOLD",
		"jwt.secret":                 "JWT_SECRET",
		"jwt.access_ttl":             "JWT_ACCESS_TTL",
		"log.level":                  "LOG_LEVEL",
		"log.format":                 "LOG_FORMAT",
		"log.file":                   "LOG_FILE",
		"log.max_size_mb":            "LOG_MAX_SIZE_MB",
		"log.max_backups":            "LOG_MAX_BACKUPS",
		"log.max_age_days":           "LOG_MAX_AGE_DAYS",
		"metrics.enabled":            "METRICS_ENABLED",
		"metrics.backlog_schedule":   "METRICS_BACKLOG_SCHEDULE",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.App.CORSOrigins = splitList(cfg.App.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate: tanpa JWT secret / host DB service tidak boleh start.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET belum diset"))
	}
	if strings.TrimSpace(c.Database.Host) == "" {
		errs = append(errs, errors.New("DB_HOST belum diset"))
	}
	if c.JWT.AccessTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL harus > 0"))
	}
	return errors.Join(errs...)
}

func (c *DatabaseConfig) DSN(appName string) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, appName)
	if c.StatementTimeout > 0 {
		dsn += fmt.Sprintf("&options=-c%%20statement_timeout%%3D%d", c.StatementTimeout.Milliseconds())
	}
	return dsn
}

// splitList: ENV "a, b" datang sebagai satu elemen.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
