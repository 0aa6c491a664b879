package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for enumerated settings.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StoreStatic = "static"
	StoreDB     = "db"
)

const (
	envPrefix        = "BOOKS"
	defaultSecretKey = "your-secret-key" // override via BOOKS_AUTH_SECRET outside of demos
)

// Config is the full runtime configuration of the service.
type Config struct {
	Port string    `mapstructure:"port"`
	Log  LogConfig `mapstructure:"log"`
	DB   DBConfig  `mapstructure:"db"`
	Auth Auth      `mapstructure:"auth"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DBConfig describes the relational store.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`    // file path for sqlite, URL for postgres
	// ResetOnStart wipes all stored data before the schema is created.
	ResetOnStart bool `mapstructure:"reset_on_start"`
}

// Auth holds token signing and credential settings.
type Auth struct {
	Secret          string `mapstructure:"secret"`
	Algorithm       string `mapstructure:"algorithm"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
	Store           string `mapstructure:"store"` // static | db
	Admin           Admin  `mapstructure:"admin"`
}

// Admin is the single provisioned user.
type Admin struct {
	Username     string `mapstructure:"username"`
	FullName     string `mapstructure:"full_name"`
	Email        string `mapstructure:"email"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// TokenTTL returns the access token lifetime.
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "books.db")
	v.SetDefault("db.reset_on_start", false)
	v.SetDefault("auth.secret", defaultSecretKey)
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.token_ttl_minutes", 30)
	v.SetDefault("auth.store", StoreStatic)
	v.SetDefault("auth.admin.username", "admin")
	v.SetDefault("auth.admin.full_name", "Administrator")
	v.SetDefault("auth.admin.email", "admin@example.com")
	v.SetDefault("auth.admin.password", "password")
	v.SetDefault("auth.admin.password_hash", "")
}

// Load reads configuration into a Config. If file is empty, configs/config.yml
// is used when present; a missing default file is not an error.
// Environment variables such as BOOKS_DB_DSN override file values.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("db.dsn is empty")
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is empty")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.token_ttl_minutes must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	switch c.Auth.Store {
	case StoreStatic, StoreDB:
	default:
		return fmt.Errorf("unsupported auth.store %q", c.Auth.Store)
	}
	if c.Auth.Admin.Username == "" {
		return errors.New("auth.admin.username is empty")
	}
	if c.Auth.Admin.Password == "" && c.Auth.Admin.PasswordHash == "" {
		return errors.New("auth.admin.password or auth.admin.password_hash must be set")
	}
	return nil
}
