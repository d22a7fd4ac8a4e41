package config

import (
	"fmt"
	"time"

	"locdir/internal/db"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
	LogLevel       string
}

// GeocoderConfig holds the external provider settings.
type GeocoderConfig struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	Timeout      time.Duration
}

// Config aggregates all application configuration.
type Config struct {
	Server   ServerConfig
	Database db.Config
	Geocoder GeocoderConfig
}

// DefaultConfig returns the configuration used when no file or env vars are
// present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxUploadBytes: 10 << 20,
			LogLevel:       "info",
		},
		Database: db.DefaultConfig(),
		Geocoder: GeocoderConfig{
			BaseURL:      "https://nominatim.openstreetmap.org",
			UserAgent:    "locdir/1.0",
			CountryCodes: "ie",
			Timeout:      10 * time.Second,
		},
	}
}

// Load reads config.yaml from configPath with environment overrides.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()      // allow environment overrides
	v.SetEnvPrefix("APP") // map env vars like APP_DATABASE.HOST

	v.BindEnv("server.addr")
	v.BindEnv("server.log_level")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("geocoder.base_url")
	v.BindEnv("geocoder.user_agent")
	v.BindEnv("geocoder.country_codes")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("server.max_upload_bytes") {
		cfg.Server.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	if v.IsSet("server.log_level") {
		cfg.Server.LogLevel = v.GetString("server.log_level")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	if v.IsSet("geocoder.base_url") {
		cfg.Geocoder.BaseURL = v.GetString("geocoder.base_url")
	}
	if v.IsSet("geocoder.user_agent") {
		cfg.Geocoder.UserAgent = v.GetString("geocoder.user_agent")
	}
	if v.IsSet("geocoder.country_codes") {
		cfg.Geocoder.CountryCodes = v.GetString("geocoder.country_codes")
	}
	if v.IsSet("geocoder.timeout") {
		cfg.Geocoder.Timeout = v.GetDuration("geocoder.timeout")
	}

	return cfg, nil
}
