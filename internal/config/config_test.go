package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vendorrag/internal/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "vectordb: /data/index\nk: 3\nuse_mmr: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VectorDB != "/data/index" || cfg.K != 3 || cfg.UseMMR {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Model != ModelFast || cfg.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("omitted fields lost their defaults: %+v", cfg)
	}
}

func TestResolveAPIKey_Env(t *testing.T) {
	t.Setenv("TEST_VENDOR_KEY", "  sk-from-env \n")
	key, err := ResolveAPIKey("TEST_VENDOR_KEY", "does-not-exist.txt")
	if err != nil {
		t.Fatal(err)
	}
	if key != "sk-from-env" {
		t.Errorf("key = %q", key)
	}
}

func TestResolveAPIKey_FileFallback(t *testing.T) {
	t.Setenv("TEST_VENDOR_KEY", "")
	path := filepath.Join(t.TempDir(), "API.txt")
	if err := os.WriteFile(path, []byte("sk-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	key, err := ResolveAPIKey("TEST_VENDOR_KEY", path)
	if err != nil {
		t.Fatal(err)
	}
	if key != "sk-from-file" {
		t.Errorf("key = %q", key)
	}
}

func TestResolveAPIKey_Neither(t *testing.T) {
	t.Setenv("TEST_VENDOR_KEY", "")
	_, err := ResolveAPIKey("TEST_VENDOR_KEY", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, domain.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestValidModel(t *testing.T) {
	if !ValidModel(ModelFast) || !ValidModel(ModelQuality) {
		t.Error("built-in models must validate")
	}
	if ValidModel("gpt-9000") {
		t.Error("unknown model must not validate")
	}
}
