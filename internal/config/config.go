package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries every environment-derived setting the server needs.
// Secrets (SMTP, Twilio, OpenAI) stay empty when unset; the wiring in
// cmd/server degrades the matching feature instead of failing boot.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins string

	// Mail transport for low-stock alerts and the manager report.
	SMTPServer       string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	SMTPAuthDisabled bool
	AlertFrom        string

	// SMS provider for low-stock alerts.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Vision model for item recognition.
	OpenAIAPIKey string
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),

		SMTPServer:       os.Getenv("SMTP_SERVER"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASS"),
		SMTPAuthDisabled: os.Getenv("SMTP_AUTH_DISABLED") != "",
		AlertFrom:        os.Getenv("ALERT_FROM"),

		TwilioAccountSID: strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")),
		TwilioAuthToken:  strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
		TwilioFromNumber: strings.TrimSpace(os.Getenv("TWILIO_FROM_NUMBER")),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

// Address is the listen address for the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// SMTPAddr is the host:port dial address for the mail transport.
func (c Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%s", c.SMTPServer, c.SMTPPort)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
