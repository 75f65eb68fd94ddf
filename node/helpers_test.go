package node

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"sudt.dev/validator/consensus"
	"sudt.dev/validator/crypto"
)

var (
	testHasher   = crypto.Blake2bProvider{}
	testCodeHash = [32]byte{0x5e, 0x7a}
	lockCodeHash = [32]byte{0x9b, 0xd7}
)

func lockScript(tag byte) Script {
	return Script{CodeHash: lockCodeHash, HashType: HashTypeType, Args: []byte{tag}}
}

func tokenScript(owner Script) *Script {
	h := owner.Hash(testHasher)
	return &Script{CodeHash: testCodeHash, HashType: HashTypeType, Args: h[:]}
}

func tokenCell(t *testing.T, lock Script, token *Script, amount uint64) Cell {
	t.Helper()
	data, err := consensus.EncodeAmount(uint256.NewInt(amount))
	require.NoError(t, err)
	return Cell{
		Output: CellOutput{Capacity: 142, Lock: lock, Type: token},
		Data:   data,
	}
}

func plainCell(lock Script) Cell {
	return Cell{Output: CellOutput{Capacity: 61, Lock: lock}}
}

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(testCodeHash, HashTypeType, testHasher, nil, nil)
	require.NoError(t, err)
	return e
}
