// Package posio wraps the offset-parameterized read primitive used by the
// encode and decode pipelines, so that every payload read goes through
// the same full-or-error contract regardless of which goroutine issues
// it, and provides best-effort pre-sizing of output files. Writes are not
// wrapped here; the pipelines write through *os.File directly.
package posio

import (
	"fmt"
	"io"
)

// ReadFull reads exactly len(buf) bytes from r starting at off. A short
// read (including EOF before buf is full) is treated as failure, per the
// positional-read contract: callers never see partial chunk payloads.
func ReadFull(r io.ReaderAt, buf []byte, off int64) error {
	got := 0
	for got < len(buf) {
		n, err := r.ReadAt(buf[got:], off+int64(got))
		got += n
		if err != nil {
			if err == io.EOF && got == len(buf) {
				break
			}
			return fmt.Errorf("posio: short read at offset %d: %w", off, err)
		}
	}
	return nil
}

// Preallocator is satisfied by *os.File; it lets PreallocateFile avoid an
// import of os in callers that only need the Truncate behavior.
type Preallocator interface {
	Truncate(size int64) error
}

// PreallocateFile best-effort pre-sizes f to size bytes before decode
// writes begin. Failure is non-fatal: callers should ignore the error and
// proceed, since positional writes will still extend the file as needed.
func PreallocateFile(f Preallocator, size int64) error {
	return f.Truncate(size)
}
