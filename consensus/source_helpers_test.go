package consensus

import (
	"testing"

	"github.com/holiman/uint256"
)

// memSource is an in-memory host. failAt injects a host error at the given
// index of a channel; reads counts every channel access.
type memSource struct {
	args    []byte
	argsErr error
	data    map[Source][][]byte
	locks   [][]byte
	failAt  map[Source]map[int]error
	reads   int
}

func (m *memSource) LoadScriptArgs() ([]byte, error) {
	if m.argsErr != nil {
		return nil, m.argsErr
	}
	return m.args, nil
}

func (m *memSource) fail(index int, source Source) error {
	if byIdx, ok := m.failAt[source]; ok {
		return byIdx[index]
	}
	return nil
}

func (m *memSource) LoadCellData(index int, source Source) ([]byte, error) {
	m.reads++
	if err := m.fail(index, source); err != nil {
		return nil, err
	}
	recs := m.data[source]
	if index >= len(recs) {
		return nil, ErrIndexOutOfBound
	}
	return recs[index], nil
}

func (m *memSource) LoadCellLockHash(index int, source Source) ([]byte, error) {
	m.reads++
	if err := m.fail(index, source); err != nil {
		return nil, err
	}
	if source != SourceInput {
		return nil, &SysError{Kind: SysItemMissing}
	}
	if index >= len(m.locks) {
		return nil, ErrIndexOutOfBound
	}
	return m.locks[index], nil
}

func hash32(b byte) []byte {
	out := make([]byte, CredentialHashSize)
	for i := range out {
		out[i] = b
	}
	return out
}

func amountBytes(t *testing.T, v *uint256.Int) []byte {
	t.Helper()
	b, err := EncodeAmount(v)
	if err != nil {
		t.Fatalf("EncodeAmount(%s): %v", v.Dec(), err)
	}
	return b
}

func u64Amounts(t *testing.T, vs ...uint64) [][]byte {
	t.Helper()
	out := make([][]byte, 0, len(vs))
	for _, v := range vs {
		out = append(out, amountBytes(t, uint256.NewInt(v)))
	}
	return out
}

func pow2(n uint) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), n)
}

func wantCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	te, ok := err.(*TxError)
	if !ok {
		t.Fatalf("expected *TxError %s, got %T (%v)", code, err, err)
	}
	if te.Code != code {
		t.Fatalf("code=%s, want %s (%v)", te.Code, code, err)
	}
}
