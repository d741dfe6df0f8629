package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Port           string
	DBDriver       string
	DBURL          string
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
	LogLevel       string
	SlowRequest    time.Duration
	Timezone       string

	AdminUsername string
	AdminPassword string

	Twilio TwilioSettings

	// client side
	APIBaseURL     string
	APIToken       string
	APITimeout     time.Duration
	HealthInterval time.Duration
}

type TwilioSettings struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// Enabled reports whether enough credentials are present to send messages.
func (t TwilioSettings) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && (t.PhoneNumber != "" || t.WhatsAppNumber != "")
}

var AppConfig *Settings

// Location resolves the configured timezone, falling back to UTC.
func (s *Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "timezone", s.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// LoadSettings reads .env, an optional config.yaml and the environment, in
// increasing order of precedence. The result is also stored in AppConfig.
func LoadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("./config/")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("jwt_expiry_hours", 24)
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("slow_request_ms", 200)
	v.SetDefault("timezone", "")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("api_timeout_seconds", 10)
	v.SetDefault("health_interval", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	interval, err := time.ParseDuration(v.GetString("health_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_INTERVAL: %w", err)
	}

	s := &Settings{
		Port:           v.GetString("port"),
		DBDriver:       strings.ToLower(v.GetString("db_driver")),
		DBURL:          v.GetString("db_url"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTExpiry:      time.Duration(v.GetInt("jwt_expiry_hours")) * time.Hour,
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		LogLevel:       v.GetString("log_level"),
		SlowRequest:    time.Duration(v.GetInt("slow_request_ms")) * time.Millisecond,
		Timezone:       v.GetString("timezone"),
		AdminUsername:  v.GetString("admin_username"),
		AdminPassword:  v.GetString("admin_password"),
		Twilio: TwilioSettings{
			AccountSID:     v.GetString("twilio_account_sid"),
			AuthToken:      v.GetString("twilio_auth_token"),
			PhoneNumber:    v.GetString("twilio_phone_number"),
			WhatsAppNumber: v.GetString("twilio_whatsapp_number"),
		},
		APIBaseURL:     v.GetString("api_base_url"),
		APIToken:       v.GetString("api_token"),
		APITimeout:     time.Duration(v.GetInt("api_timeout_seconds")) * time.Second,
		HealthInterval: interval,
	}

	AppConfig = s
	return s, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
