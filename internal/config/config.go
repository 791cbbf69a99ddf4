package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const defaultAllowedOrigin = "https://open-doors.ca"

type HTTPConfig struct {
	Host string
	Port int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	CORS        CORSConfig
	Twilio      TwilioConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Twilio: TwilioConfig{
			AccountSID:     strings.TrimSpace(v.GetString("TWILIO_ACCOUNT_SID")),
			AuthToken:      strings.TrimSpace(v.GetString("TWILIO_AUTH_TOKEN")),
			PhoneNumber:    strings.TrimSpace(v.GetString("TWILIO_PHONE_NUMBER")),
			WhatsAppNumber: strings.TrimSpace(v.GetString("TWILIO_WHATSAPP_NUMBER")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	// Heroku-style platforms only set PORT.
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = v.GetInt("PORT")
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{defaultAllowedOrigin}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AllowAllOrigins reports whether the CORS origin list is the wildcard.
func (c CORSConfig) AllowAllOrigins() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func validate(cfg *Config) error {
	if cfg.Twilio.AccountSID == "" {
		return fmt.Errorf("TWILIO_ACCOUNT_SID is required")
	}
	if cfg.Twilio.AuthToken == "" {
		return fmt.Errorf("TWILIO_AUTH_TOKEN is required")
	}
	if cfg.Twilio.PhoneNumber == "" {
		return fmt.Errorf("TWILIO_PHONE_NUMBER is required")
	}
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", cfg.HTTP.Port)
	}
	if cfg.CORS.AllowAllOrigins() {
		return nil
	}
	for _, origin := range cfg.CORS.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS entry %q must start with http:// or https://", origin)
		}
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
