package encode

import "github.com/falk/warp/internal/codec"

// AutoMode selects the scoring rule used to pick the locked algorithm
// after the warm-up phase.
type AutoMode int

const (
	// Balanced weighs throughput and ratio together (the default).
	Balanced AutoMode = iota
	// Throughput picks the algorithm with the highest measured
	// throughput.
	Throughput
	// Ratio picks the algorithm with the best compression ratio.
	Ratio
)

// ChecksumKind selects the optional end-to-end checksum written at
// encode time.
type ChecksumKind int

const (
	// ChecksumNone omits the checksum block.
	ChecksumNone ChecksumKind = iota
	// ChecksumXXH64 streams the input through xxh64 and stores an
	// 8-byte digest.
	ChecksumXXH64
)

// Options configures a single Encode call. The zero value is not a valid
// Options; use DefaultOptions to obtain the documented defaults.
type Options struct {
	// Threads is the number of worker goroutines. Values < 1 are
	// treated as 1.
	Threads int
	// Level is the codec compression level (meaningfully used by zstd
	// only). Values < 1 are treated as 1.
	Level int
	// Algo pins a codec, skipping warm-up and auto selection. Zero
	// means auto.
	Algo codec.Algo
	// ChunkBytes overrides the chunk-size policy. Zero means consult
	// the policy.
	ChunkBytes uint32
	// AutoMode selects the warm-up scoring rule, used only when Algo is
	// zero.
	AutoMode AutoMode
	// AutoLock is the number of leading chunks sampled during warm-up
	// (clamped to the total chunk count). Values < 1 are treated as 4.
	AutoLock int
	// DoIndex writes the optional redundant index block.
	DoIndex bool
	// ChkKind selects the optional checksum block.
	ChkKind ChecksumKind
	// Verify is accepted for symmetry with decode.Options but has no
	// effect on Encode.
	Verify bool
	// Verbose prints a one-line summary to stderr after the encode
	// completes.
	Verbose bool
}

// DefaultOptions returns the documented defaults: threads=1, level=1,
// algo=auto, chunk_bytes=policy, auto_mode=balanced, auto_lock=4,
// do_index=true, chk_kind=none.
func DefaultOptions() Options {
	return Options{
		Threads:  1,
		Level:    1,
		AutoMode: Balanced,
		AutoLock: 4,
		DoIndex:  true,
	}
}

func (o Options) threads() int {
	if o.Threads < 1 {
		return 1
	}
	return o.Threads
}

func (o Options) level() int {
	if o.Level < 1 {
		return 1
	}
	return o.Level
}

func (o Options) autoLock() int {
	if o.AutoLock < 1 {
		return 4
	}
	return o.AutoLock
}
