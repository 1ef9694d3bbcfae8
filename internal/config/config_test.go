package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/test.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.ListenAddr != ":8000" {
		t.Errorf("API.ListenAddr = %q, want :8000", cfg.API.ListenAddr)
	}
	if cfg.Remote.Timeout != 5*time.Second {
		t.Errorf("Remote.Timeout = %v, want 5s", cfg.Remote.Timeout)
	}
	if cfg.Sync.Strategy != "best_effort" {
		t.Errorf("Sync.Strategy = %q, want best_effort", cfg.Sync.Strategy)
	}
	if cfg.Suggest.Latency != 1200*time.Millisecond {
		t.Errorf("Suggest.Latency = %v, want 1.2s", cfg.Suggest.Latency)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /data/studio.db
remote:
  base_url: http://localhost:8000
  api_key: secret
  timeout: 2s
sync:
  strategy: queued_retry
  retry_interval: 10s
  max_retries: 5
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.BaseURL != "http://localhost:8000" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Sync.Strategy != "queued_retry" || cfg.Sync.MaxRetries != 5 {
		t.Errorf("Sync = %+v", cfg.Sync)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad strategy", "storage:\n  path: /tmp/x.db\nsync:\n  strategy: hope\n"},
		{"bad log level", "storage:\n  path: /tmp/x.db\nlogging:\n  level: verbose\n"},
		{"bad log format", "storage:\n  path: /tmp/x.db\nlogging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load() should fail for %s", tt.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail for missing file")
	}
}
