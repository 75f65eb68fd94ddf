package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudt.dev/validator/crypto"
)

func TestScriptBytesLayout(t *testing.T) {
	s := Script{CodeHash: [32]byte{0x01}, HashType: HashTypeData1, Args: []byte{0xaa, 0xbb}}
	b := s.Bytes()
	require.Len(t, b, 32+1+4+2)
	assert.Equal(t, byte(0x01), b[0])
	assert.Equal(t, byte(2), b[32])
	assert.Equal(t, []byte{2, 0, 0, 0}, b[33:37])
	assert.Equal(t, []byte{0xaa, 0xbb}, b[37:])
}

func TestScriptHashDependsOnProviderAndArgs(t *testing.T) {
	a := lockScript(1)
	b := lockScript(2)
	assert.NotEqual(t, a.Hash(testHasher), b.Hash(testHasher))
	assert.NotEqual(t, a.Hash(crypto.Blake2bProvider{}), a.Hash(crypto.SHA3Provider{}))
	assert.Equal(t, a.Hash(testHasher), a.Hash(testHasher))
}

func TestParseHashType(t *testing.T) {
	for _, h := range []HashType{HashTypeData, HashTypeType, HashTypeData1, HashTypeData2} {
		got, err := ParseHashType(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}
	_, err := ParseHashType("data3")
	assert.Error(t, err)
	assert.Equal(t, "hash_type(9)", HashType(9).String())
}

func TestScriptIs(t *testing.T) {
	s := tokenScript(lockScript(1))
	assert.True(t, s.Is(testCodeHash, HashTypeType))
	assert.False(t, s.Is(testCodeHash, HashTypeData))
	assert.False(t, s.Is(lockCodeHash, HashTypeType))
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFile = t.TempDir() + "/sudt.log"
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
