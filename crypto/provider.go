package crypto

import (
	"fmt"
	"strings"
)

// HashProvider is the narrow hashing interface used to derive script hashes.
// The validation rule itself never hashes; only the host does.
type HashProvider interface {
	Name() string
	Sum256(input []byte) [32]byte
}

const (
	HashBlake2b256 = "blake2b"
	HashSHA3_256   = "sha3"
)

// ProviderByName resolves a configured hash algorithm name.
func ProviderByName(name string) (HashProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case HashBlake2b256, "":
		return Blake2bProvider{}, nil
	case HashSHA3_256:
		return SHA3Provider{}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", name)
	}
}
