package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.MaxStack != 100000 || d.MaxDump != 10000 || d.MaxHeap != 0 {
		t.Fatalf("Defaults() = %+v", d)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if m != Defaults() {
		t.Fatalf("Load(\"\") = %+v, want defaults", m)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", m)
	}
}

func TestLoadOverlaysNonZeroFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corelang.yaml")
	if err := os.WriteFile(path, []byte("max_stack: 500\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.MaxStack != 500 {
		t.Fatalf("MaxStack = %d, want 500 (overridden)", m.MaxStack)
	}
	if m.MaxDump != Defaults().MaxDump {
		t.Fatalf("MaxDump = %d, want unchanged default %d", m.MaxDump, Defaults().MaxDump)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_stack: [this is not an int\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
