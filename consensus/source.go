package consensus

import (
	"errors"
	"fmt"
)

// Source selects one of the record channels a host exposes to the rule.
type Source uint8

const (
	// SourceInput is every input of the transaction.
	SourceInput Source = iota + 1
	// SourceOutput is every output of the transaction.
	SourceOutput
	// SourceGroupInput is the inputs carrying the executing token script.
	SourceGroupInput
	// SourceGroupOutput is the outputs carrying the executing token script.
	SourceGroupOutput
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceOutput:
		return "output"
	case SourceGroupInput:
		return "group_input"
	case SourceGroupOutput:
		return "group_output"
	default:
		return fmt.Sprintf("source(%d)", uint8(s))
	}
}

// RecordSource is the host side of the rule. Every method is a read of data
// the host holds for one transaction. Reads past the end of a channel must
// return a *SysError of kind SysIndexOutOfBound.
type RecordSource interface {
	LoadScriptArgs() ([]byte, error)
	LoadCellData(index int, source Source) ([]byte, error)
	LoadCellLockHash(index int, source Source) ([]byte, error)
}

type SysErrorKind uint8

const (
	SysIndexOutOfBound SysErrorKind = iota + 1
	SysItemMissing
	SysLengthNotEnough
	SysEncoding
	SysUnknown
)

func (k SysErrorKind) String() string {
	switch k {
	case SysIndexOutOfBound:
		return "index out of bound"
	case SysItemMissing:
		return "item missing"
	case SysLengthNotEnough:
		return "length not enough"
	case SysEncoding:
		return "encoding"
	case SysUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("sys_error_kind(%d)", uint8(k))
	}
}

// SysError is a failure reported by the host. Code carries the raw host
// status for SysUnknown and the missing length for SysLengthNotEnough.
type SysError struct {
	Kind SysErrorKind
	Code uint64
}

func (e *SysError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Kind == SysUnknown || e.Kind == SysLengthNotEnough {
		return fmt.Sprintf("sys error: %s (%d)", e.Kind, e.Code)
	}
	return "sys error: " + e.Kind.String()
}

// ErrIndexOutOfBound is the end-of-sequence signal hosts return past the last
// record of a channel.
var ErrIndexOutOfBound = &SysError{Kind: SysIndexOutOfBound}

// IsEndOfSequence reports whether err is the host end-of-sequence signal.
func IsEndOfSequence(err error) bool {
	var se *SysError
	return errors.As(err, &se) && se.Kind == SysIndexOutOfBound
}
