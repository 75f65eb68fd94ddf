package consensus

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestGatherAmountEmptyChannelIsZero(t *testing.T) {
	src := &memSource{}
	sum, err := GatherAmount(src, SourceGroupInput)
	if err != nil {
		t.Fatalf("GatherAmount: %v", err)
	}
	if !sum.IsZero() {
		t.Fatalf("sum=%s, want 0", sum.Dec())
	}
	if src.reads != 1 {
		t.Fatalf("reads=%d, want 1", src.reads)
	}
}

func TestGatherAmountSums(t *testing.T) {
	src := &memSource{data: map[Source][][]byte{
		SourceGroupOutput: u64Amounts(t, 1, 2, 3, 1<<63),
	}}
	sum, err := GatherAmount(src, SourceGroupOutput)
	if err != nil {
		t.Fatalf("GatherAmount: %v", err)
	}
	want := new(uint256.Int).Add(uint256.NewInt(6), uint256.NewInt(1<<63))
	if !sum.Eq(want) {
		t.Fatalf("sum=%s, want %s", sum.Dec(), want.Dec())
	}
}

func TestGatherAmountMalformedRecordAnywhere(t *testing.T) {
	for pos := 0; pos < 3; pos++ {
		recs := u64Amounts(t, 5, 6, 7)
		recs[pos] = recs[pos][:15]
		src := &memSource{data: map[Source][][]byte{SourceGroupInput: recs}}
		_, err := GatherAmount(src, SourceGroupInput)
		wantCode(t, err, TX_ERR_ENCODING)
		if src.reads != pos+1 {
			t.Fatalf("pos=%d: reads=%d, want abort right after the bad record", pos, src.reads)
		}
	}
}

func TestGatherAmountOverflow(t *testing.T) {
	src := &memSource{data: map[Source][][]byte{
		SourceGroupInput: {amountBytes(t, pow2(127)), amountBytes(t, pow2(127))},
	}}
	sum, err := GatherAmount(src, SourceGroupInput)
	wantCode(t, err, TX_ERR_OVERFLOW)
	if sum != nil {
		t.Fatalf("partial sum leaked: %s", sum.Dec())
	}
}

func TestGatherAmountMaxWithoutOverflow(t *testing.T) {
	src := &memSource{data: map[Source][][]byte{
		SourceGroupInput: {amountBytes(t, MaxAmount()), amountBytes(t, uint256.NewInt(0))},
	}}
	sum, err := GatherAmount(src, SourceGroupInput)
	if err != nil {
		t.Fatalf("GatherAmount: %v", err)
	}
	if !sum.Eq(MaxAmount()) {
		t.Fatalf("sum=%s", sum.Dec())
	}
}

func TestGatherAmountPropagatesHostError(t *testing.T) {
	hostErr := &SysError{Kind: SysItemMissing}
	src := &memSource{
		data:   map[Source][][]byte{SourceGroupInput: u64Amounts(t, 1, 2, 3)},
		failAt: map[Source]map[int]error{SourceGroupInput: {1: hostErr}},
	}
	_, err := GatherAmount(src, SourceGroupInput)
	if !errors.Is(err, hostErr) {
		t.Fatalf("err=%v, want host error verbatim", err)
	}
}
