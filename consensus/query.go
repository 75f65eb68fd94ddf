package consensus

import "iter"

type loadFunc func(index int, source Source) ([]byte, error)

// queryIter walks a channel from index 0 until the host reports
// end-of-sequence. Any other host error is yielded once and ends the walk.
func queryIter(load loadFunc, source Source) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for i := 0; ; i++ {
			rec, err := load(i, source)
			if err != nil {
				if IsEndOfSequence(err) {
					return
				}
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
