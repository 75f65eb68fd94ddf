package consensus

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// AmountSize is the on-chain width of a token amount: u128 little-endian.
const AmountSize = 16

const amountBits = 128

// MaxAmount returns 2^128-1.
func MaxAmount() *uint256.Int {
	return &uint256.Int{^uint64(0), ^uint64(0), 0, 0}
}

// DecodeAmount reads a 16-byte little-endian record. Records of any other
// length are rejected, never truncated or padded.
func DecodeAmount(b []byte) (*uint256.Int, error) {
	if len(b) != AmountSize {
		return nil, txerr(TX_ERR_ENCODING, fmt.Sprintf("amount must be %d bytes, got %d", AmountSize, len(b)))
	}
	return &uint256.Int{
		binary.LittleEndian.Uint64(b[0:8]),
		binary.LittleEndian.Uint64(b[8:16]),
		0,
		0,
	}, nil
}

// EncodeAmount is the inverse of DecodeAmount.
func EncodeAmount(v *uint256.Int) ([]byte, error) {
	if v == nil {
		return nil, txerr(TX_ERR_ENCODING, "nil amount")
	}
	if v.BitLen() > amountBits {
		return nil, txerr(TX_ERR_OVERFLOW, "amount exceeds u128")
	}
	out := make([]byte, AmountSize)
	binary.LittleEndian.PutUint64(out[0:8], v[0])
	binary.LittleEndian.PutUint64(out[8:16], v[1])
	return out, nil
}

// AddAmount returns a+b, or TX_ERR_OVERFLOW when the sum leaves the u128
// range. Both operands must already be u128 values.
func AddAmount(a, b *uint256.Int) (*uint256.Int, error) {
	if a.BitLen() > amountBits || b.BitLen() > amountBits {
		return nil, txerr(TX_ERR_OVERFLOW, "operand exceeds u128")
	}
	sum := new(uint256.Int).Add(a, b)
	if sum.BitLen() > amountBits {
		return nil, txerr(TX_ERR_OVERFLOW, "u128 overflow")
	}
	return sum, nil
}
