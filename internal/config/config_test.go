package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("server.read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("database.conn_max_lifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Diagnostics.ExposeStoreErrors {
		t.Error("store errors must not be exposed by default")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("cors.allowed_origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Password.Memory != 64*1024 || cfg.Password.Threads != 4 {
		t.Errorf("unexpected argon2 defaults: %+v", cfg.Password)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DIAGNOSTICS_EXPOSE_STORE_ERRORS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("database.host = %q, want db.internal", cfg.Database.Host)
	}
	if !cfg.Diagnostics.ExposeStoreErrors {
		t.Error("expected diagnostics.expose_store_errors from env")
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Name: "worker_db", SSLMode: "disable", ConnectTimeout: 5,
	}
	want := "postgres://u:p@localhost:5432/worker_db?sslmode=disable&connect_timeout=5"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
