package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("AUTH_USERNAME", "operator")
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("AUTH_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("Database.SSLMode = %s, want disable", cfg.Database.SSLMode)
	}
	if cfg.TLS.Enabled {
		t.Error("TLS.Enabled = true, want false by default")
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false by default")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"Missing username", "AUTH_USERNAME"},
		{"Missing password hash", "AUTH_PASSWORD_HASH"},
		{"Missing secret", "AUTH_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded without %s", tt.unset)
			}
		})
	}
}

func TestLoad_InvalidDBPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted invalid DB_PORT")
	}
}

func TestLoad_AllowedHosts(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_HOSTS", "ledger.example.com, localhost , ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"ledger.example.com", "localhost"}
	if len(cfg.Server.AllowedHosts) != len(want) {
		t.Fatalf("AllowedHosts = %v, want %v", cfg.Server.AllowedHosts, want)
	}
	for i, h := range want {
		if cfg.Server.AllowedHosts[i] != h {
			t.Errorf("AllowedHosts[%d] = %s, want %s", i, cfg.Server.AllowedHosts[i], h)
		}
	}
}

func TestLoad_TLSRequiresPaths(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TLS_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted TLS_ENABLED=true without cert/key paths")
	}
}

func TestConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "ledger",
		Password: "s3cret",
		DBName:   "ledger",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=ledger password=s3cret dbname=ledger sslmode=require"
	if got := c.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
