package node

import (
	"sudt.dev/validator/consensus"
	"sudt.dev/validator/crypto"
)

// TxView exposes one transaction to the validation rule as executed by one
// type script. Group channels hold the cells whose type script equals it.
type TxView struct {
	tx     *Transaction
	script Script
	hasher crypto.HashProvider

	groupInputs  []int
	groupOutputs []int
}

func NewTxView(tx *Transaction, script Script, hasher crypto.HashProvider) *TxView {
	v := &TxView{tx: tx, script: script, hasher: hasher}
	for i, c := range tx.Inputs {
		if c.Output.Type != nil && c.Output.Type.Equal(script) {
			v.groupInputs = append(v.groupInputs, i)
		}
	}
	for i, c := range tx.Outputs {
		if c.Output.Type != nil && c.Output.Type.Equal(script) {
			v.groupOutputs = append(v.groupOutputs, i)
		}
	}
	return v
}

func (v *TxView) LoadScriptArgs() ([]byte, error) {
	return append([]byte(nil), v.script.Args...), nil
}

func (v *TxView) LoadCellData(index int, source consensus.Source) ([]byte, error) {
	c, err := v.cell(index, source)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), c.Data...), nil
}

func (v *TxView) LoadCellLockHash(index int, source consensus.Source) ([]byte, error) {
	c, err := v.cell(index, source)
	if err != nil {
		return nil, err
	}
	h := c.Output.Lock.Hash(v.hasher)
	return h[:], nil
}

// GroupSize returns the number of group input and output cells.
func (v *TxView) GroupSize() (int, int) {
	return len(v.groupInputs), len(v.groupOutputs)
}

func (v *TxView) cell(index int, source consensus.Source) (*Cell, error) {
	if index < 0 {
		return nil, consensus.ErrIndexOutOfBound
	}
	switch source {
	case consensus.SourceInput:
		return pick(v.tx.Inputs, index)
	case consensus.SourceOutput:
		return pick(v.tx.Outputs, index)
	case consensus.SourceGroupInput:
		return pickGroup(v.tx.Inputs, v.groupInputs, index)
	case consensus.SourceGroupOutput:
		return pickGroup(v.tx.Outputs, v.groupOutputs, index)
	default:
		return nil, &consensus.SysError{Kind: consensus.SysItemMissing}
	}
}

func pick(cells []Cell, index int) (*Cell, error) {
	if index >= len(cells) {
		return nil, consensus.ErrIndexOutOfBound
	}
	return &cells[index], nil
}

func pickGroup(cells []Cell, group []int, index int) (*Cell, error) {
	if index >= len(group) {
		return nil, consensus.ErrIndexOutOfBound
	}
	return &cells[group[index]], nil
}
