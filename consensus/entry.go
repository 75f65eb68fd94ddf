package consensus

import (
	"errors"
	"fmt"
)

// ExitCode maps the result of Validate to the status returned to the host.
// An unrecognised host failure is fatal and panics; errors outside the rule's
// taxonomy panic as well.
func ExitCode(err error) int8 {
	if err == nil {
		return StatusOK
	}
	var te *TxError
	if errors.As(err, &te) {
		if s, ok := te.Code.Status(); ok {
			return s
		}
		panic(fmt.Sprintf("unmapped error code %s", te.Code))
	}
	var se *SysError
	if errors.As(err, &se) {
		switch se.Kind {
		case SysIndexOutOfBound:
			return StatusIndexOutOfBound
		case SysItemMissing:
			return StatusItemMissing
		case SysLengthNotEnough:
			return StatusLengthNotEnough
		case SysEncoding:
			return StatusEncoding
		default:
			panic(fmt.Sprintf("unexpected sys error %d", se.Code))
		}
	}
	panic(fmt.Sprintf("unexpected error: %v", err))
}

// ProgramEntry runs one validation pass and returns its exit status.
func ProgramEntry(src RecordSource, opts ...Option) int8 {
	_, err := Validate(src, opts...)
	return ExitCode(err)
}
