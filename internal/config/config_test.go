package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Convert.OutputDir != "./converted" {
		t.Errorf("OutputDir = %q, want ./converted", cfg.Convert.OutputDir)
	}
	if cfg.Convert.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Convert.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	// An explicit path that does not exist is a load error; only the
	// standard search locations tolerate absence.
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("Load with missing explicit path succeeded, want error")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poftools.yaml")

	content := `data:
  archives:
    - /opt/game/root.vp
    - /opt/game/models.vp
convert:
  output_dir: /tmp/out
  workers: 4
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Data.Archives) != 2 {
		t.Errorf("Archives = %v, want 2 entries", cfg.Data.Archives)
	}
	if cfg.Convert.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", cfg.Convert.OutputDir)
	}
	if cfg.Convert.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Convert.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poftools.yaml")

	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Convert.OutputDir != "./converted" {
		t.Errorf("OutputDir = %q, want default preserved", cfg.Convert.OutputDir)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poftools.yaml")

	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML succeeded, want error")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "poftools.yaml")

	cfg := Default()
	cfg.Convert.OutputDir = "/data/converted"
	cfg.Data.Archives = []string{"a.vp"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Convert.OutputDir != "/data/converted" {
		t.Errorf("OutputDir = %q after round trip", loaded.Convert.OutputDir)
	}
	if len(loaded.Data.Archives) != 1 || loaded.Data.Archives[0] != "a.vp" {
		t.Errorf("Archives = %v after round trip", loaded.Data.Archives)
	}
}
