package node

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"sudt.dev/validator/consensus"
)

type ScriptJSON struct {
	CodeHash string `json:"code_hash"`
	HashType string `json:"hash_type"`
	Args     string `json:"args"`
}

type OutPointJSON struct {
	TxHash string `json:"tx_hash"`
	Index  uint32 `json:"index"`
}

// CellJSON is the interchange form of a cell. Amount is a decimal
// convenience for sUDT cells and is only used when Data is empty.
type CellJSON struct {
	OutPoint *OutPointJSON `json:"out_point,omitempty"`
	Capacity uint64        `json:"capacity"`
	Lock     ScriptJSON    `json:"lock"`
	Type     *ScriptJSON   `json:"type,omitempty"`
	Data     string        `json:"data,omitempty"`
	Amount   string        `json:"amount,omitempty"`
}

// InputJSON is either a resolved cell or a reference to a stored cell.
type InputJSON struct {
	PreviousOutput *OutPointJSON `json:"previous_output,omitempty"`
	Cell           *CellJSON     `json:"cell,omitempty"`
}

type TxJSON struct {
	Inputs  []InputJSON `json:"inputs"`
	Outputs []CellJSON  `json:"outputs"`
}

// CellResolver looks up live cells by out point.
type CellResolver interface {
	ResolveInputs(points []OutPoint) ([]Cell, error)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	return hex.DecodeString(s)
}

func decodeHex32(s string, name string) ([32]byte, error) {
	var out [32]byte
	b, err := decodeHex(s)
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("%s: expected 32 bytes, got %d", name, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func (j ScriptJSON) Script() (Script, error) {
	codeHash, err := decodeHex32(j.CodeHash, "code_hash")
	if err != nil {
		return Script{}, err
	}
	hashType, err := ParseHashType(j.HashType)
	if err != nil {
		return Script{}, err
	}
	args, err := decodeHex(j.Args)
	if err != nil {
		return Script{}, fmt.Errorf("args: %w", err)
	}
	return Script{CodeHash: codeHash, HashType: hashType, Args: args}, nil
}

func ScriptToJSON(s Script) ScriptJSON {
	return ScriptJSON{
		CodeHash: "0x" + hex.EncodeToString(s.CodeHash[:]),
		HashType: s.HashType.String(),
		Args:     "0x" + hex.EncodeToString(s.Args),
	}
}

func (j OutPointJSON) OutPoint() (OutPoint, error) {
	txHash, err := decodeHex32(j.TxHash, "tx_hash")
	if err != nil {
		return OutPoint{}, err
	}
	return OutPoint{TxHash: txHash, Index: j.Index}, nil
}

func OutPointToJSON(o OutPoint) OutPointJSON {
	return OutPointJSON{TxHash: "0x" + hex.EncodeToString(o.TxHash[:]), Index: o.Index}
}

func (j CellJSON) Cell() (Cell, error) {
	var c Cell
	if j.OutPoint != nil {
		op, err := j.OutPoint.OutPoint()
		if err != nil {
			return c, fmt.Errorf("out_point: %w", err)
		}
		c.OutPoint = op
	}
	c.Output.Capacity = j.Capacity
	lock, err := j.Lock.Script()
	if err != nil {
		return c, fmt.Errorf("lock: %w", err)
	}
	c.Output.Lock = lock
	if j.Type != nil {
		typ, err := j.Type.Script()
		if err != nil {
			return c, fmt.Errorf("type: %w", err)
		}
		c.Output.Type = &typ
	}
	data, err := decodeHex(j.Data)
	if err != nil {
		return c, fmt.Errorf("data: %w", err)
	}
	if len(data) == 0 && j.Amount != "" {
		v, err := uint256.FromDecimal(j.Amount)
		if err != nil {
			return c, fmt.Errorf("amount: %w", err)
		}
		data, err = consensus.EncodeAmount(v)
		if err != nil {
			return c, fmt.Errorf("amount: %w", err)
		}
	}
	c.Data = data
	return c, nil
}

func CellToJSON(c Cell) CellJSON {
	op := OutPointToJSON(c.OutPoint)
	j := CellJSON{
		OutPoint: &op,
		Capacity: c.Output.Capacity,
		Lock:     ScriptToJSON(c.Output.Lock),
		Data:     "0x" + hex.EncodeToString(c.Data),
	}
	if c.Output.Type != nil {
		t := ScriptToJSON(*c.Output.Type)
		j.Type = &t
	}
	return j
}

// Transaction builds the transaction, resolving out point inputs through r.
// r may be nil when every input carries its cell inline.
func (j TxJSON) Transaction(r CellResolver) (*Transaction, error) {
	tx := &Transaction{
		Inputs:  make([]Cell, len(j.Inputs)),
		Outputs: make([]Cell, 0, len(j.Outputs)),
	}
	var pending []OutPoint
	var pendingIdx []int
	// A cell may be spent once per transaction; listing it twice would count
	// its amount twice.
	spent := make(map[OutPoint]int, len(j.Inputs))
	spend := func(i int, op OutPoint) error {
		if first, ok := spent[op]; ok {
			return fmt.Errorf("input %d: out point %s already spent by input %d", i, op, first)
		}
		spent[op] = i
		return nil
	}
	for i, in := range j.Inputs {
		switch {
		case in.Cell != nil:
			c, err := in.Cell.Cell()
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}
			if in.Cell.OutPoint != nil {
				if err := spend(i, c.OutPoint); err != nil {
					return nil, err
				}
			}
			tx.Inputs[i] = c
		case in.PreviousOutput != nil:
			op, err := in.PreviousOutput.OutPoint()
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}
			if err := spend(i, op); err != nil {
				return nil, err
			}
			pending = append(pending, op)
			pendingIdx = append(pendingIdx, i)
		default:
			return nil, fmt.Errorf("input %d: needs cell or previous_output", i)
		}
	}
	if len(pending) > 0 {
		if r == nil {
			return nil, errors.New("inputs reference stored cells but no cell store is open")
		}
		cells, err := r.ResolveInputs(pending)
		if err != nil {
			return nil, fmt.Errorf("resolve inputs: %w", err)
		}
		for k, idx := range pendingIdx {
			tx.Inputs[idx] = cells[k]
		}
	}
	for i, out := range j.Outputs {
		c, err := out.Cell()
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, c)
	}
	return tx, nil
}
