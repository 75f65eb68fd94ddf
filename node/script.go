package node

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"sudt.dev/validator/crypto"
)

type HashType uint8

const (
	HashTypeData  HashType = 0
	HashTypeType  HashType = 1
	HashTypeData1 HashType = 2
	HashTypeData2 HashType = 4
)

func (h HashType) String() string {
	switch h {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	case HashTypeData2:
		return "data2"
	default:
		return fmt.Sprintf("hash_type(%d)", uint8(h))
	}
}

func ParseHashType(s string) (HashType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data":
		return HashTypeData, nil
	case "type":
		return HashTypeType, nil
	case "data1":
		return HashTypeData1, nil
	case "data2":
		return HashTypeData2, nil
	default:
		return 0, fmt.Errorf("unknown hash_type %q", s)
	}
}

// Script names a lock or type condition: the code to run and its args.
type Script struct {
	CodeHash [32]byte
	HashType HashType
	Args     []byte
}

// Bytes is the canonical serialization hashed into a script hash:
// code_hash 32 | hash_type u8 | args_len u32le | args.
func (s Script) Bytes() []byte {
	out := make([]byte, 0, 32+1+4+len(s.Args))
	out = append(out, s.CodeHash[:]...)
	out = append(out, byte(s.HashType))
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(s.Args))) // #nosec G115 -- args are bounded by transaction size.
	out = append(out, tmp[:]...)
	out = append(out, s.Args...)
	return out
}

// Hash is the 32-byte credential hash of the script.
func (s Script) Hash(p crypto.HashProvider) [32]byte {
	return p.Sum256(s.Bytes())
}

func (s Script) Equal(o Script) bool {
	return s.CodeHash == o.CodeHash && s.HashType == o.HashType && bytes.Equal(s.Args, o.Args)
}

// Is reports whether s runs the code identified by codeHash and hashType,
// regardless of args.
func (s Script) Is(codeHash [32]byte, hashType HashType) bool {
	return s.CodeHash == codeHash && s.HashType == hashType
}

type OutPoint struct {
	TxHash [32]byte
	Index  uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%x:%d", o.TxHash, o.Index)
}

type CellOutput struct {
	Capacity uint64
	Lock     Script
	Type     *Script
}

// Cell is a resolved cell: its output, its data, and where it lives. Output
// cells of a transaction under validation have a zero OutPoint.
type Cell struct {
	OutPoint OutPoint
	Output   CellOutput
	Data     []byte
}

// Transaction is a transaction whose inputs are already resolved to cells.
type Transaction struct {
	Inputs  []Cell
	Outputs []Cell
}

// Hash identifies tx by the out points it spends and the cells it creates.
// Newly created cells are stored under (Hash, output index).
func (tx *Transaction) Hash(p crypto.HashProvider) [32]byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs))) // #nosec G115 -- bounded by transaction size.
	for _, in := range tx.Inputs {
		buf = append(buf, in.OutPoint.TxHash[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.OutPoint.Index)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs))) // #nosec G115 -- bounded by transaction size.
	for _, out := range tx.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, out.Output.Capacity)
		buf = append(buf, out.Output.Lock.Bytes()...)
		if out.Output.Type != nil {
			buf = append(buf, 1)
			buf = append(buf, out.Output.Type.Bytes()...)
		} else {
			buf = append(buf, 0)
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(out.Data))) // #nosec G115 -- bounded by transaction size.
		buf = append(buf, out.Data...)
	}
	return p.Sum256(buf)
}
