package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"orbit-expenses/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort           string
	Env                string
	CORSOrigins        []string
	CategoriesCacheTTL time.Duration
	Log                LogConfig
	DB                 DBConfig
	Supabase           SupabaseConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SupabaseConfig struct {
	URL            string
	PublishableKey string
	AuthTimeout    time.Duration
	TokenCacheTTL  time.Duration
	SkipAuth       bool
	MockUserID     string
	MockUserEmail  string
	MockUserName   string
	MockUserAvatar string
}

// Load reads configuration from the environment, an optional .env file and
// any flags already bound to v. A nil v uses a fresh viper instance.
func Load(log logger.Logger, v *viper.Viper) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:           v.GetString("http_port"),
		Env:                v.GetString("env"),
		CORSOrigins:        splitList(v.GetString("cors_origins")),
		CategoriesCacheTTL: v.GetDuration("categories_cache_ttl"),
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
			DSN:             v.GetString("db_dsn"),
			Host:            v.GetString("db_host"),
			Port:            v.GetString("db_port"),
			User:            v.GetString("db_user"),
			Password:        v.GetString("db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_sslmode"),
			TimeZone:        v.GetString("db_timezone"),
			SQLitePath:      v.GetString("db_sqlite_path"),
			AutoMigrate:     v.GetBool("db_auto_migrate"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		},
		Supabase: SupabaseConfig{
			URL:            v.GetString("supabase_url"),
			PublishableKey: firstNonEmpty(v.GetString("supabase_publishable_key"), v.GetString("vite_supabase_publishable_key")),
			AuthTimeout:    v.GetDuration("supabase_auth_timeout"),
			TokenCacheTTL:  v.GetDuration("supabase_token_cache_ttl"),
			SkipAuth:       v.GetBool("auth_skip"),
			MockUserID:     v.GetString("auth_mock_user_id"),
			MockUserEmail:  v.GetString("auth_mock_user_email"),
			MockUserName:   v.GetString("auth_mock_user_name"),
			MockUserAvatar: v.GetString("auth_mock_user_avatar_url"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("categories_cache_ttl", time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "orbit")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")
	v.SetDefault("db_sqlite_path", "orbit.db")
	v.SetDefault("db_auto_migrate", false)
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 30*time.Minute)

	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_publishable_key", "")
	v.SetDefault("vite_supabase_publishable_key", "")
	v.SetDefault("supabase_auth_timeout", 5*time.Second)
	v.SetDefault("supabase_token_cache_ttl", 30*time.Second)
	v.SetDefault("auth_skip", false)
	v.SetDefault("auth_mock_user_id", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("auth_mock_user_email", "")
	v.SetDefault("auth_mock_user_name", "")
	v.SetDefault("auth_mock_user_avatar_url", "")
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %q: must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %d: must be between 1 and 65535", port))
	}

	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DSN == "" && (c.DB.Host == "" || c.DB.Name == "") {
			problems = append(problems, "DB_HOST and DB_NAME are required when DB_DSN is empty")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.DB.SQLitePath) == "" {
			problems = append(problems, "DB_SQLITE_PATH cannot be empty when DB_DRIVER=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER %q: must be %s or %s", c.DB.Driver, DriverPostgres, DriverSQLite))
	}

	if c.DB.MaxOpenConns < 0 || c.DB.MaxIdleConns < 0 {
		problems = append(problems, "DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS cannot be negative")
	}
	if c.CategoriesCacheTTL < 0 {
		problems = append(problems, "CATEGORIES_CACHE_TTL cannot be negative")
	}

	if c.Supabase.SkipAuth {
		if strings.TrimSpace(c.Supabase.MockUserID) == "" {
			problems = append(problems, "AUTH_MOCK_USER_ID is required when AUTH_SKIP is set")
		}
	} else if c.Env == "production" && (c.Supabase.URL == "" || c.Supabase.PublishableKey == "") {
		problems = append(problems, "SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required in production")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c DBConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		if c.DSN != "" {
			return c.DSN
		}
		return "file:" + c.SQLitePath + "?_foreign_keys=on"
	}
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
