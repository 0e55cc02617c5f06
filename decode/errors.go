package decode

import (
	"errors"
	"fmt"
)

// ErrOutputIO is returned when the output file cannot be created or
// written. Pre-sizing the output is best-effort and its failure is not
// reported.
var ErrOutputIO = errors.New("decode: output i/o error")

// ErrChecksumMismatch is returned (alongside a successfully written
// output file) when Verify is set, a checksum block is present, and the
// recomputed digest does not match the stored one.
var ErrChecksumMismatch = errors.New("decode: checksum mismatch")

// ChunkDecodeFailedError reports that a worker failed to decode a chunk
// (short read, codec failure, or a length mismatch against orig_len).
// The decode pipeline aborts after the current barrier on the first such
// failure.
type ChunkDecodeFailedError struct {
	Index uint32
}

func (e *ChunkDecodeFailedError) Error() string {
	return fmt.Sprintf("decode: chunk %d failed", e.Index)
}
