package encode

import (
	"errors"
	"fmt"
)

// ErrInputMissing is returned when the input file cannot be opened or is
// empty.
var ErrInputMissing = errors.New("encode: input missing or empty")

// ErrOutputIO is returned when the output file cannot be created or
// written.
var ErrOutputIO = errors.New("encode: output i/o error")

// ChunkEncodeFailedError reports that a worker failed to produce a valid
// encoded chunk. The encode pipeline aborts after the current barrier on
// the first such failure; the partially written output file is left on
// disk for the caller to remove.
type ChunkEncodeFailedError struct {
	Index uint32
}

func (e *ChunkEncodeFailedError) Error() string {
	return fmt.Sprintf("encode: chunk %d failed", e.Index)
}
