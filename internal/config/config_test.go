package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_DefaultsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
server:
  port: "9090"
backend:
  base_url: "https://api.example.com"
geo:
  default_radius_km: 20
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFRESH_TIMEOUT", "5s")
	t.Setenv("BACKEND_ALLOW_OPAQUE_TOKENS", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != ":9090" || cfg.Backend.BaseURL != "https://api.example.com" || cfg.Geo.DefaultRadiusKm != 20 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Refresh.Timeout != 5*time.Second || !cfg.Backend.AllowOpaque {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Storage.Driver != DriverMemory || cfg.CloudinaryEnabled() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Origins()) != 3 {
		t.Fatalf("expected default origins, got %v", cfg.Origins())
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error: postgres without dsn")
	}

	t.Setenv("STORAGE_DRIVER", "mongo")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error: unknown driver")
	}

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("GEO_DEFAULT_RADIUS_KM", "abc")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error: bad float")
	}
}
