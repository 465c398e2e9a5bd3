package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_AUTH_DISABLED", "")

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.SMTPPort != "587" {
		t.Errorf("expected default SMTP port 587, got %q", cfg.SMTPPort)
	}
	if cfg.SMTPAuthDisabled {
		t.Error("SMTPAuthDisabled should default to false")
	}
	if cfg.Address() != ":8000" {
		t.Errorf("expected address :8000, got %q", cfg.Address())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_AUTH_DISABLED", "1")
	t.Setenv("TWILIO_ACCOUNT_SID", "  AC123  ")

	cfg := Load()
	if cfg.Address() != ":9001" {
		t.Errorf("expected :9001, got %q", cfg.Address())
	}
	if cfg.SMTPAddr() != "smtp.example.com:2525" {
		t.Errorf("expected smtp.example.com:2525, got %q", cfg.SMTPAddr())
	}
	if !cfg.SMTPAuthDisabled {
		t.Error("SMTP_AUTH_DISABLED=1 should disable auth")
	}
	if cfg.TwilioAccountSID != "AC123" {
		t.Errorf("expected trimmed SID, got %q", cfg.TwilioAccountSID)
	}
}
