package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "72h")
	t.Setenv("STATS_TIMEZONE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTTTL != 72*time.Hour {
		t.Errorf("JWTTTL = %v, want 72h", cfg.JWTTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.StatsLocation != time.Local {
		t.Errorf("StatsLocation = %v, want Local", cfg.StatsLocation)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "mathquest")
	t.Setenv("DB_PASSWORD", "mathquest")
	t.Setenv("DB_NAME", "quiz")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("JWT_TTL", "1h30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("STATS_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.JWTTTL != 90*time.Minute {
		t.Errorf("JWTTTL = %v, want 1h30m", cfg.JWTTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.StatsLocation.String() != "UTC" {
		t.Errorf("StatsLocation = %v, want UTC", cfg.StatsLocation)
	}

	want := "host=db.internal port=5432 user=mathquest password=mathquest dbname=quiz sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid JWT_TTL")
	}

	t.Setenv("JWT_TTL", "1h")
	t.Setenv("STATS_TIMEZONE", "Not/AZone")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid STATS_TIMEZONE")
	}
}
