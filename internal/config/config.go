package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicURL   string `yaml:"public_url" env:"SERVER_PUBLIC_URL"`
	} `yaml:"server"`

	// Storage is the on-device key-value store that replaces browser local storage
	Storage struct {
		LocalDBPath string `yaml:"local_db_path" env:"STORAGE_LOCAL_DB_PATH"`
	} `yaml:"storage"`

	// Database is the hosted Postgres backend used for auth and remote profiles
	Database struct {
		Enabled         bool   `yaml:"enabled" env:"DB_ENABLED"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		ExchangeCodeExpiration string `yaml:"exchange_code_expiration" env:"JWT_EXCHANGE_CODE_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// App is the hybrid-app packaging manifest consumed by the native shell
	App struct {
		ID     string `yaml:"id" env:"APP_ID"`
		Name   string `yaml:"name" env:"APP_NAME"`
		WebDir string `yaml:"web_dir" env:"APP_WEB_DIR"`
	} `yaml:"app"`

	Calendar struct {
		TimeZone        string `yaml:"time_zone" env:"CALENDAR_TIME_ZONE"`
		DefaultDuration string `yaml:"default_duration" env:"CALENDAR_DEFAULT_DURATION"`
	} `yaml:"calendar"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; defaults plus env are enough to boot locally
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Storage.LocalDBPath = "data/local.db"

	config.Database.Enabled = false
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "diasporahub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.ExchangeCodeExpiration = "5m"
	config.JWT.Issuer = "diasporahub.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.App.ID = "app.diasporahub.mobile"
	config.App.Name = "Diaspora Hub"
	config.App.WebDir = "dist"

	config.Calendar.TimeZone = "Local"
	config.Calendar.DefaultDuration = "2h"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Storage.LocalDBPath == "" {
		return fmt.Errorf("local storage path is required")
	}

	if config.App.ID == "" || config.App.WebDir == "" {
		return fmt.Errorf("app id and web dir are required")
	}

	if _, err := time.LoadLocation(config.Calendar.TimeZone); err != nil {
		return fmt.Errorf("invalid calendar time zone: %w", err)
	}

	if _, err := time.ParseDuration(config.Calendar.DefaultDuration); err != nil {
		return fmt.Errorf("invalid calendar default duration: %w", err)
	}

	// Backend settings only matter once the hosted backend is switched on
	if !config.Database.Enabled {
		return nil
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, value := range map[string]string{
		"access token":  config.JWT.AccessTokenExpiration,
		"refresh token": config.JWT.RefreshTokenExpiration,
		"exchange code": config.JWT.ExchangeCodeExpiration,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid JWT %s expiration format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// CalendarLocation returns the zone naive event times are read in
func (c *Config) CalendarLocation() *time.Location {
	loc, err := time.LoadLocation(c.Calendar.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
