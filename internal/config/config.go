package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	Auth     AuthConfig
	Google   GoogleConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level string
}

type OrderConfig struct {
	TxTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret    string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether federated login is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UploadURLTTL    time.Duration
	DownloadURLTTL  time.Duration
}

// Load reads configuration from the environment, layered over an optional YAML
// file named by CONFIG_FILE. Keys in the file use the same names as the
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "editmarket")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "editmarket")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORDER_TX_TIMEOUT", "5s")
	v.SetDefault("AUTH_SESSION_TTL", "720h")
	v.SetDefault("AUTH_COOKIE_NAME", "editmarket_session")
	v.SetDefault("AUTH_COOKIE_SECURE", true)
	v.SetDefault("STORAGE_REGION", "auto")
	v.SetDefault("STORAGE_UPLOAD_URL_TTL", "1h")
	v.SetDefault("STORAGE_DOWNLOAD_URL_TTL", "1h")

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"DB_CONN_MAX_LIFETIME",
		"ORDER_TX_TIMEOUT",
		"AUTH_SESSION_TTL",
		"STORAGE_UPLOAD_URL_TTL",
		"STORAGE_DOWNLOAD_URL_TTL",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			TxTimeout: durations["ORDER_TX_TIMEOUT"],
		},
		Auth: AuthConfig{
			JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
			SessionTTL:   durations["AUTH_SESSION_TTL"],
			CookieName:   v.GetString("AUTH_COOKIE_NAME"),
			CookieSecure: v.GetBool("AUTH_COOKIE_SECURE"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		},
		Storage: StorageConfig{
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
			Bucket:          v.GetString("STORAGE_BUCKET"),
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			UploadURLTTL:    durations["STORAGE_UPLOAD_URL_TTL"],
			DownloadURLTTL:  durations["STORAGE_DOWNLOAD_URL_TTL"],
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Order.TxTimeout <= 0 {
		return fmt.Errorf("ORDER_TX_TIMEOUT must be positive")
	}
	return nil
}
