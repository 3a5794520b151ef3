package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"orbit-expenses/pkg/logger"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load(logger.Nop(), viper.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.DB.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.DB.Driver)
	}
	if cfg.CategoriesCacheTTL != time.Minute {
		t.Fatalf("expected 1m cache ttl, got %s", cfg.CategoriesCacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "data/orbit.db")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CATEGORIES_CACHE_TTL", "30s")

	cfg, err := Load(logger.Nop(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", cfg.DB.Driver)
	}
	if got := cfg.DB.GetDSN(); got != "file:data/orbit.db?_foreign_keys=on" {
		t.Fatalf("unexpected sqlite dsn %s", got)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 cors origins, got %v", cfg.CORSOrigins)
	}
	if cfg.CategoriesCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", cfg.CategoriesCacheTTL)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := chdirTemp(t)
	contents := "HTTP_PORT=7070\nDB_NAME=from_file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("HTTP_PORT", "6060")
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg, err := Load(logger.Nop(), viper.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "6060" {
		t.Fatalf("expected env to win, got %s", cfg.HTTPPort)
	}
	if cfg.DB.Name != "from_file" {
		t.Fatalf("expected DB_NAME from .env, got %s", cfg.DB.Name)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		HTTPPort: "8080",
		DB:       DBConfig{Driver: DriverPostgres, Host: "localhost", Name: "orbit"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.HTTPPort = "http" }, wantErr: "invalid HTTP_PORT"},
		{name: "port range", mutate: func(c *Config) { c.HTTPPort = "70000" }, wantErr: "between 1 and 65535"},
		{name: "driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: "invalid DB_DRIVER"},
		{name: "sqlite path", mutate: func(c *Config) { c.DB.Driver = DriverSQLite }, wantErr: "DB_SQLITE_PATH"},
		{name: "mock user", mutate: func(c *Config) { c.Supabase.SkipAuth = true }, wantErr: "AUTH_MOCK_USER_ID"},
		{name: "production auth", mutate: func(c *Config) { c.Env = "production" }, wantErr: "SUPABASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Config{HTTPPort: "x", DB: DBConfig{Driver: "oracle"}}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") || !strings.Contains(err.Error(), "DB_DRIVER") {
		t.Fatalf("expected both problems in %q", err.Error())
	}
}
