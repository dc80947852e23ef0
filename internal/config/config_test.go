package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.DBFile != "taskboard.db" {
		t.Errorf("db_file default: got %q", cfg.DBFile)
	}
	if cfg.NotifyDebounceMS != 250 {
		t.Errorf("notify_debounce_ms default: got %d", cfg.NotifyDebounceMS)
	}
	if cfg.DataDir == "" {
		t.Error("data_dir default should not be empty")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{
		DataDir:          "/tmp/boards",
		DBFile:           "b.db",
		NotifyDebounceMS: 500,
		LogLevel:         "debug",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data", DBFile: "x.db"}
	if cfg.DBPath() != filepath.Join("/data", "x.db") {
		t.Errorf("DBPath: got %q", cfg.DBPath())
	}
	if cfg.KeyringDir() != filepath.Join("/data", "keyring") {
		t.Errorf("KeyringDir: got %q", cfg.KeyringDir())
	}
}
