package node

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateConfigOK(t *testing.T) {
	cfg := DefaultConfig()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigRejectsEmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = " "
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigRejectsInvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigAcceptsMixedCaseLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = " WARN "
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigRejectsUnknownHashAlgo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HashAlgo = "md5"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigRejectsBadCodeHash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CodeHashHex = "abcd"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateConfigRejectsBadHashType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HashType = "data9"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConfigCodeHashAcceptsPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CodeHashHex = "0x" + DefaultCodeHashHex
	h, err := cfg.CodeHash()
	if err != nil {
		t.Fatalf("CodeHash: %v", err)
	}
	if h[0] != 0x5e || h[31] != 0xd5 {
		t.Fatalf("unexpected code hash %x", h)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level":"debug","hash_algo":"sha3"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.HashAlgo != "sha3" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.DataDir != DefaultDataDir() {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"peers":["x"]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error")
	}
}
