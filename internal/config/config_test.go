package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load or create: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, DefaultDBName) || cfg.LogPath != filepath.Join(dir, DefaultLogName) {
		t.Fatalf("paths not resolved against config dir: %+v", cfg)
	}
	if cfg.Keys.Quit != "q" || cfg.ItemHeight != 1 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if !strings.Contains(string(data), "db_path") || !strings.Contains(string(data), DefaultDBName) {
		t.Fatalf("unexpected config file:\n%s", data)
	}
}

func TestLoadOrCreateReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
db_path = '/var/lib/tasklog/data.db'
locale = 'de'
item_height = 3

[planner]
model = 'local-model'

[keys]
quit = 'ctrl+q'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/var/lib/tasklog/data.db" || cfg.Locale != "de" || cfg.ItemHeight != 3 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.Planner.Model != "local-model" || cfg.Keys.Quit != "ctrl+q" {
		t.Fatalf("unexpected nested values: %+v", cfg)
	}
	if cfg.Keys.New != "n" || cfg.SchedulerBuffer != 64 {
		t.Fatalf("missing fields not defaulted: %+v", cfg)
	}
	if cfg.LogPath != filepath.Join(dir, DefaultLogName) {
		t.Fatalf("unexpected log path: %s", cfg.LogPath)
	}
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("db_path = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TASKLOG_DB_PATH", "/tmp/x.db")
	t.Setenv("TASKLOG_LOCALE", "fr")
	t.Setenv("TASKLOG_PLANNER_URL", "http://localhost:8080/v1/chat/completions")
	t.Setenv("TASKLOG_PLANNER_API_KEY", "k")
	t.Setenv("TASKLOG_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("TASKLOG_ITEM_HEIGHT", "2")
	t.Setenv("TASKLOG_SCHEDULER_BUFFER", "-5")

	cfg := FromEnv(Default())
	if cfg.DBPath != "/tmp/x.db" || cfg.Locale != "fr" || !cfg.DesktopNotifications {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Planner.URL == "" || cfg.Planner.APIKey != "k" || cfg.Planner.Model != "" {
		t.Fatalf("unexpected planner overrides: %+v", cfg.Planner)
	}
	if cfg.ItemHeight != 2 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TASKLOG_DESKTOP_NOTIFICATIONS", "maybe")
	t.Setenv("TASKLOG_ITEM_HEIGHT", "tall")
	base := Default()
	base.DesktopNotifications = true
	cfg := FromEnv(base)
	if !cfg.DesktopNotifications || cfg.ItemHeight != 1 {
		t.Fatalf("garbage values changed config: %+v", cfg)
	}
}
