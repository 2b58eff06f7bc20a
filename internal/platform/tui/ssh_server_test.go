package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHostKeyPath_Explicit(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyPath(want)
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if got != want {
		t.Errorf("hostKeyPath() = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestHostKeyPath_DefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := hostKeyPath("")
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if want := filepath.Join(home, ".stage", "host_key"); got != want {
		t.Errorf("hostKeyPath() = %q, expected %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(home, ".stage")); err != nil {
		t.Errorf(".stage directory not created: %v", err)
	}
}

func TestNewSSHServer_WithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(blocker, "runs.db") // parent is a file

	srv, err := NewSSHServer(cfg, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.store != nil {
		t.Error("store opened under a file path")
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", srv.Addr(), cfg.Address)
	}
	srv.closeStore()
}
