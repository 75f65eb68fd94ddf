package crypto

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Blake2bProvider hashes with unkeyed BLAKE2b-256.
type Blake2bProvider struct{}

func (Blake2bProvider) Name() string { return HashBlake2b256 }

func (Blake2bProvider) Sum256(input []byte) [32]byte {
	return blake2b.Sum256(input)
}

// SHA3Provider hashes with SHA3-256.
type SHA3Provider struct{}

func (SHA3Provider) Name() string { return HashSHA3_256 }

func (SHA3Provider) Sum256(input []byte) [32]byte {
	h := sha3.New256()
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
