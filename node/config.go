package node

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sudt.dev/validator/crypto"
)

type Config struct {
	DataDir         string `json:"data_dir"`
	LogLevel        string `json:"log_level"`
	LogFile         string `json:"log_file,omitempty"`
	HashAlgo        string `json:"hash_algo"`
	CodeHashHex     string `json:"code_hash"`
	HashType        string `json:"hash_type"`
	MetricsTextfile string `json:"metrics_textfile,omitempty"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultCodeHashHex identifies the sUDT script when no code hash is
// configured.
const DefaultCodeHashHex = "5e7a36a77e68eecc013dfa2fe6a23f3b6c344b04005808694ae6dd45eea4cfd5"

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".sudt"
	}
	return filepath.Join(home, ".sudt")
}

func DefaultConfig() Config {
	return Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    "info",
		HashAlgo:    crypto.HashBlake2b256,
		CodeHashHex: DefaultCodeHashHex,
		HashType:    "type",
	}
}

// LoadConfig reads a JSON config file over DefaultConfig. Unknown fields are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := readFileByPath(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config json: %w", err)
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if _, err := crypto.ProviderByName(cfg.HashAlgo); err != nil {
		return fmt.Errorf("invalid hash_algo: %w", err)
	}
	if _, err := cfg.CodeHash(); err != nil {
		return err
	}
	if _, err := ParseHashType(cfg.HashType); err != nil {
		return fmt.Errorf("invalid hash_type: %w", err)
	}
	return nil
}

// CodeHash decodes the configured sUDT code hash.
func (cfg Config) CodeHash() ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(strings.TrimPrefix(cfg.CodeHashHex, "0x"))
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("invalid code_hash %q", cfg.CodeHashHex)
	}
	copy(out[:], b)
	return out, nil
}
