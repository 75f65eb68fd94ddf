package store

import (
	"encoding/binary"
	"fmt"

	"sudt.dev/validator/node"
)

func encodeOutPointKey(p node.OutPoint) []byte {
	// tx_hash(32) || index(u32 little-endian)
	out := make([]byte, 32+4)
	copy(out[0:32], p.TxHash[:])
	binary.LittleEndian.PutUint32(out[32:36], p.Index)
	return out
}

func decodeOutPointKey(b []byte) (node.OutPoint, error) {
	if len(b) != 36 {
		return node.OutPoint{}, fmt.Errorf("outpoint: expected 36 bytes, got %d", len(b))
	}
	var txHash [32]byte
	copy(txHash[:], b[0:32])
	return node.OutPoint{TxHash: txHash, Index: binary.LittleEndian.Uint32(b[32:36])}, nil
}

// Cell value layout:
// capacity u64le | lock script | has_type u8 | [type script] | data_len u32le | data
// script: code_hash 32 | hash_type u8 | args_len u32le | args
func encodeCell(c node.Cell) ([]byte, error) {
	if uint64(len(c.Data)) > 0xffffffff {
		return nil, fmt.Errorf("cell: data too large")
	}
	out := make([]byte, 0, 8+64+1+4+len(c.Data))
	out = binary.LittleEndian.AppendUint64(out, c.Output.Capacity)
	out = append(out, c.Output.Lock.Bytes()...)
	if c.Output.Type != nil {
		out = append(out, 1)
		out = append(out, c.Output.Type.Bytes()...)
	} else {
		out = append(out, 0)
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(c.Data))) // #nosec G115 -- bounded above.
	out = append(out, c.Data...)
	return out, nil
}

func decodeCell(p node.OutPoint, b []byte) (node.Cell, error) {
	c := node.Cell{OutPoint: p}
	off := 0
	if len(b) < 8 {
		return c, fmt.Errorf("cell: truncated capacity")
	}
	c.Output.Capacity = binary.LittleEndian.Uint64(b[0:8])
	off += 8

	lock, err := decodeScript(b, &off)
	if err != nil {
		return c, fmt.Errorf("cell: lock: %w", err)
	}
	c.Output.Lock = lock

	if off+1 > len(b) {
		return c, fmt.Errorf("cell: truncated has_type")
	}
	hasType := b[off]
	off++
	switch hasType {
	case 0:
	case 1:
		typ, err := decodeScript(b, &off)
		if err != nil {
			return c, fmt.Errorf("cell: type: %w", err)
		}
		c.Output.Type = &typ
	default:
		return c, fmt.Errorf("cell: bad has_type %d", hasType)
	}

	data, err := readLenPrefixed(b, &off)
	if err != nil {
		return c, fmt.Errorf("cell: data: %w", err)
	}
	if off != len(b) {
		return c, fmt.Errorf("cell: %d trailing bytes", len(b)-off)
	}
	c.Data = data
	return c, nil
}

func decodeScript(b []byte, off *int) (node.Script, error) {
	var s node.Script
	if *off+33 > len(b) {
		return s, fmt.Errorf("truncated script")
	}
	copy(s.CodeHash[:], b[*off:*off+32])
	s.HashType = node.HashType(b[*off+32])
	*off += 33
	args, err := readLenPrefixed(b, off)
	if err != nil {
		return s, fmt.Errorf("args: %w", err)
	}
	s.Args = args
	return s, nil
}

func readLenPrefixed(b []byte, off *int) ([]byte, error) {
	if *off+4 > len(b) {
		return nil, fmt.Errorf("truncated length")
	}
	n := binary.LittleEndian.Uint32(b[*off : *off+4])
	*off += 4
	if uint64(*off)+uint64(n) > uint64(len(b)) {
		return nil, fmt.Errorf("length %d exceeds remaining %d bytes", n, len(b)-*off)
	}
	out := append([]byte(nil), b[*off:*off+int(n)]...)
	*off += int(n)
	return out, nil
}
