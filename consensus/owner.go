package consensus

import "bytes"

// CheckOwnerMode reports whether any transaction input is locked by the
// credential hash in args. The first byte-exact match wins.
func CheckOwnerMode(src RecordSource, args []byte) (bool, error) {
	for lockHash, err := range queryIter(src.LoadCellLockHash, SourceInput) {
		if err != nil {
			return false, err
		}
		if bytes.Equal(lockHash, args) {
			return true, nil
		}
	}
	return false, nil
}
