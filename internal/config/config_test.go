package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMustLoadDefaults(t *testing.T) {
	cfg := MustLoad("")
	if cfg.DatabasePath != "task_manager.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ProcessInterval != time.Minute {
		t.Errorf("ProcessInterval = %v", cfg.ProcessInterval)
	}
	if cfg.AgendaTime != "09:00" {
		t.Errorf("AgendaTime = %q", cfg.AgendaTime)
	}
}

func TestMustLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "database_path: /tmp/custom.db\nprocess_interval: 30s\nagenda_time: \"07:30\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := MustLoad(path)
	if cfg.DatabasePath != "/tmp/custom.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ProcessInterval != 30*time.Second {
		t.Errorf("ProcessInterval = %v", cfg.ProcessInterval)
	}
	if cfg.AgendaTime != "07:30" {
		t.Errorf("AgendaTime = %q", cfg.AgendaTime)
	}
}

func TestMustLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("TASK_MANAGER_DB", "env.db")

	cfg := MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.DatabasePath != "env.db" {
		t.Errorf("DatabasePath = %q, want env override", cfg.DatabasePath)
	}
}
