package consensus

import "fmt"

type ErrorCode string

const (
	// The first three mirror the host SysError kinds for the status table;
	// the rule itself reports host failures as *SysError.
	TX_ERR_INDEX_OUT_OF_BOUND ErrorCode = "TX_ERR_INDEX_OUT_OF_BOUND"
	TX_ERR_ITEM_MISSING       ErrorCode = "TX_ERR_ITEM_MISSING"
	TX_ERR_LENGTH_NOT_ENOUGH  ErrorCode = "TX_ERR_LENGTH_NOT_ENOUGH"
	TX_ERR_ENCODING           ErrorCode = "TX_ERR_ENCODING"
	TX_ERR_AMOUNT             ErrorCode = "TX_ERR_AMOUNT"
	TX_ERR_OVERFLOW           ErrorCode = "TX_ERR_OVERFLOW"
	TX_ERR_ARGS_LEN           ErrorCode = "TX_ERR_ARGS_LEN"
)

// Exit statuses reported to the host. Deployed callers match on these
// numbers; 1..5 are shared with the on-chain sUDT contract and must never be
// renumbered.
const (
	StatusOK              int8 = 0
	StatusIndexOutOfBound int8 = 1
	StatusItemMissing     int8 = 2
	StatusLengthNotEnough int8 = 3
	StatusEncoding        int8 = 4
	StatusAmount          int8 = 5
	StatusOverflow        int8 = 6
	StatusArgsLen         int8 = 7
)

var statusByCode = map[ErrorCode]int8{
	TX_ERR_INDEX_OUT_OF_BOUND: StatusIndexOutOfBound,
	TX_ERR_ITEM_MISSING:       StatusItemMissing,
	TX_ERR_LENGTH_NOT_ENOUGH:  StatusLengthNotEnough,
	TX_ERR_ENCODING:           StatusEncoding,
	TX_ERR_AMOUNT:             StatusAmount,
	TX_ERR_OVERFLOW:           StatusOverflow,
	TX_ERR_ARGS_LEN:           StatusArgsLen,
}

// Status returns the exit status assigned to code, or false for codes that
// have no stable number.
func (c ErrorCode) Status() (int8, bool) {
	s, ok := statusByCode[c]
	return s, ok
}

type TxError struct {
	Code ErrorCode
	Msg  string
}

func (e *TxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func txerr(code ErrorCode, msg string) error {
	return &TxError{Code: code, Msg: msg}
}
