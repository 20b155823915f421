package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "EMAIL_USER", "EMAIL_PASS", "SMTP_HOST", "SMTP_PORT", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("expected driver postgres, got %q", cfg.Store.Driver)
	}
	if cfg.Store.SQLitePath != "contact.db" {
		t.Errorf("expected sqlite path contact.db, got %q", cfg.Store.SQLitePath)
	}
	if cfg.Mail.Host != "smtp.gmail.com" || cfg.Mail.Port != 587 {
		t.Errorf("unexpected smtp defaults: %s:%d", cfg.Mail.Host, cfg.Mail.Port)
	}
	if cfg.Mail.Enabled() {
		t.Error("expected mail to be disabled without credentials")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("EMAIL_USER", "me@example.com")
	t.Setenv("EMAIL_PASS", "secret")
	t.Setenv("SMTP_PORT", "2525")

	cfg := FromEnv()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("expected driver sqlite, got %q", cfg.Store.Driver)
	}
	if !cfg.Mail.Enabled() {
		t.Error("expected mail to be enabled")
	}
	if cfg.Mail.Port != 2525 {
		t.Errorf("expected smtp port 2525, got %d", cfg.Mail.Port)
	}
}

func TestFromEnv_InvalidSMTPPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "abc")
	if got := FromEnv().Mail.Port; got != 587 {
		t.Errorf("expected fallback 587, got %d", got)
	}
}

func TestMailConfig_EnabledNeedsBoth(t *testing.T) {
	if (MailConfig{User: "me@example.com"}).Enabled() {
		t.Error("expected disabled without password")
	}
	if (MailConfig{Pass: "secret"}).Enabled() {
		t.Error("expected disabled without user")
	}
}
