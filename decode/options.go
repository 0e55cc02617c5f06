// Package decode implements the parallel decode pipeline: table-driven
// dispatch, per-chunk codec decode, ordered output writing, and optional
// end-to-end checksum verification.
package decode

// Options configures a single Decode call.
type Options struct {
	// Threads is the number of worker goroutines. Values < 1 are
	// treated as 1.
	Threads int
	// Verify enables end-to-end xxh64 verification against a checksum
	// block, if the container has one.
	Verify bool
	// Verbose prints a one-line summary to stderr after decode
	// completes.
	Verbose bool
}

func (o Options) threads() int {
	if o.Threads < 1 {
		return 1
	}
	return o.Threads
}
