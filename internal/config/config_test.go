package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"torresapp/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "abc"
  owner_chat_id: 42
http:
  addr: ":8080"
storage:
  backend: postgres
  postgres_dsn: "postgres://localhost/torresapp"
metrics:
  enabled: true
`)
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Telegram.OwnerChatID != 42 {
		t.Errorf("owner_chat_id = %d, want 42", c.Telegram.OwnerChatID)
	}
	if c.Storage.Backend != "postgres" || c.Storage.PostgresDSN == "" {
		t.Errorf("storage = %+v", c.Storage)
	}
	if !c.Metrics.Enabled {
		t.Errorf("metrics not enabled")
	}
}

func TestLoadDefaultsToSQLite(t *testing.T) {
	path := writeConfig(t, `
app:
  env: prod
`)
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Storage.Backend != "sqlite" || c.Storage.SQLitePath == "" {
		t.Errorf("storage defaults = %+v", c.Storage)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: cassandra
`)
	if _, err := config.Load(path); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}
