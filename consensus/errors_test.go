package consensus

import (
	"fmt"
	"testing"
)

func TestTxError_ErrorFormatting(t *testing.T) {
	var e *TxError
	if got := e.Error(); got != "<nil>" {
		t.Fatalf("nil receiver: %q", got)
	}

	e = &TxError{Code: TX_ERR_ENCODING, Msg: ""}
	if got := e.Error(); got != "TX_ERR_ENCODING" {
		t.Fatalf("empty msg: %q", got)
	}

	e = &TxError{Code: TX_ERR_ENCODING, Msg: "bad"}
	if got := e.Error(); got != "TX_ERR_ENCODING: bad" {
		t.Fatalf("with msg: %q", got)
	}
}

func TestTxerrReturnsTxError(t *testing.T) {
	err := txerr(TX_ERR_AMOUNT, "x")
	te, ok := err.(*TxError)
	if !ok {
		t.Fatalf("expected *TxError, got %T", err)
	}
	if te.Code != TX_ERR_AMOUNT || te.Msg != "x" {
		t.Fatalf("unexpected fields: %#v", te)
	}
}

func TestErrorCodeStatusIsStable(t *testing.T) {
	want := map[ErrorCode]int8{
		TX_ERR_INDEX_OUT_OF_BOUND: 1,
		TX_ERR_ITEM_MISSING:       2,
		TX_ERR_LENGTH_NOT_ENOUGH:  3,
		TX_ERR_ENCODING:           4,
		TX_ERR_AMOUNT:             5,
		TX_ERR_OVERFLOW:           6,
		TX_ERR_ARGS_LEN:           7,
	}
	for code, status := range want {
		got, ok := code.Status()
		if !ok || got != status {
			t.Fatalf("%s: status=%d ok=%v, want %d", code, got, ok, status)
		}
	}
	if _, ok := ErrorCode("TX_ERR_NOPE").Status(); ok {
		t.Fatalf("unknown code must not map")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int8
	}{
		{nil, 0},
		{txerr(TX_ERR_ENCODING, ""), 4},
		{txerr(TX_ERR_AMOUNT, ""), 5},
		{txerr(TX_ERR_OVERFLOW, ""), 6},
		{txerr(TX_ERR_ARGS_LEN, ""), 7},
		{&SysError{Kind: SysIndexOutOfBound}, 1},
		{&SysError{Kind: SysItemMissing}, 2},
		{&SysError{Kind: SysLengthNotEnough, Code: 4}, 3},
		{&SysError{Kind: SysEncoding}, 4},
		{fmt.Errorf("wrapped: %w", &SysError{Kind: SysItemMissing}), 2},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestExitCodePanicsOnUnknownSysError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if msg, _ := r.(string); msg != "unexpected sys error 99" {
			t.Fatalf("panic=%v", r)
		}
	}()
	ExitCode(&SysError{Kind: SysUnknown, Code: 99})
}

func TestSysErrorFormatting(t *testing.T) {
	var e *SysError
	if got := e.Error(); got != "<nil>" {
		t.Fatalf("nil receiver: %q", got)
	}
	if got := ErrIndexOutOfBound.Error(); got != "sys error: index out of bound" {
		t.Fatalf("got %q", got)
	}
	if got := (&SysError{Kind: SysUnknown, Code: 7}).Error(); got != "sys error: unknown (7)" {
		t.Fatalf("got %q", got)
	}
	if !IsEndOfSequence(fmt.Errorf("x: %w", ErrIndexOutOfBound)) {
		t.Fatalf("wrapped end-of-sequence not recognised")
	}
	if IsEndOfSequence(&SysError{Kind: SysItemMissing}) {
		t.Fatalf("item missing is not end-of-sequence")
	}
}
