package config

import (
	"testing"
	"time"

	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/ports/auth"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "REDIS_ADDR", "NOTIFY_CHANNEL", "DEV_USERS", "ODIN_BASE_URL", "ODIN_API_KEY", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "8080" || cfg.Redis.Channel != "lab-semillas.workflow" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Log.Level != logger.Info || cfg.OdinEnabled() || len(cfg.DevUsers) != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ODIN_BASE_URL", "http://odin")
	t.Setenv("ODIN_API_KEY", "k")
	t.Setenv("ODIN_TIMEOUT", "2s")
	t.Setenv("DEV_USERS", "ana:analista, jefe:ADMIN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" || cfg.Redis.DB != 3 || !cfg.OdinEnabled() || cfg.Odin.Timeout != 2*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.DevUsers) != 2 {
		t.Fatalf("expected 2 dev users, got %d", len(cfg.DevUsers))
	}
	if u := cfg.DevUsers[0]; u.ID != 1 || u.Username != "ana" || u.Rol != auth.RolAnalista || !u.Activo {
		t.Fatalf("unexpected first user: %+v", u)
	}
	if u := cfg.DevUsers[1]; u.ID != 2 || u.Rol != auth.RolAdmin {
		t.Fatalf("unexpected second user: %+v", u)
	}
}

func TestParseDevUsers_Invalid(t *testing.T) {
	for _, raw := range []string{"ana", "ana:JEFE", ":ADMIN", "ana:ADMIN,ANA:ANALISTA"} {
		if _, err := ParseDevUsers(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
