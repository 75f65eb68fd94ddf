package consensus

import (
	"fmt"

	"github.com/holiman/uint256"
)

// GatherAmount sums the token amounts stored in every cell of source. The
// first malformed record or overflowing addition aborts the walk; no partial
// sum is returned.
func GatherAmount(src RecordSource, source Source) (*uint256.Int, error) {
	sum := new(uint256.Int)
	i := 0
	for data, err := range queryIter(src.LoadCellData, source) {
		if err != nil {
			return nil, err
		}
		amount, err := DecodeAmount(data)
		if err != nil {
			return nil, txerr(TX_ERR_ENCODING, fmt.Sprintf("%s cell %d: amount must be %d bytes, got %d", source, i, AmountSize, len(data)))
		}
		sum, err = AddAmount(sum, amount)
		if err != nil {
			return nil, txerr(TX_ERR_OVERFLOW, fmt.Sprintf("%s cell %d: sum exceeds u128", source, i))
		}
		i++
	}
	return sum, nil
}
