// Package codec provides a uniform compress/decompress/bound contract
// over the compression algorithms a .warp chunk may be stored with, plus
// a fixed tag-to-codec dispatch table matching the on-disk format.
package codec

import "fmt"

// Algo identifies a per-chunk algorithm. Values are part of the on-disk
// wire format (see the format package) and must never change.
type Algo uint8

const (
	// Zstd compresses a chunk with zstd.
	Zstd Algo = 1
	// Lz4 compresses a chunk with lz4 (block format, no frame header).
	Lz4 Algo = 2
	// Snappy compresses a chunk with a snappy-compatible codec.
	Snappy Algo = 3
	// Copy stores a chunk verbatim; comp_len == orig_len.
	Copy Algo = 4
	// Zero marks a chunk whose bytes are all zero; no payload is stored.
	Zero Algo = 5
)

func (a Algo) String() string {
	switch a {
	case Zstd:
		return "zstd"
	case Lz4:
		return "lz4"
	case Snappy:
		return "snappy"
	case Copy:
		return "copy"
	case Zero:
		return "zero"
	default:
		return fmt.Sprintf("algo(%d)", uint8(a))
	}
}

// Codec is a named compression algorithm with an upper bound on encoded
// size, and compress/decompress operations over caller-supplied buffers.
//
// Compress and Decompress return 0 to signal failure instead of an error
// in the cases the reference implementation treats as recoverable (the
// encode pipeline falls back to Copy on a 0 return); genuine I/O-level
// errors are still returned via err.
type Codec interface {
	// Name is the algorithm's human-readable name.
	Name() string
	// Tag is the algorithm's on-disk tag.
	Tag() Algo
	// Bound returns an upper bound on the encoded size of a source of
	// srcLen bytes.
	Bound(srcLen int) int
	// Compress appends the compressed form of src into dst[:0] and
	// returns the number of bytes written, or (0, nil) on failure.
	Compress(src, dst []byte, level int) (int, error)
	// Decompress decompresses src into dst, which must be exactly the
	// expected decompressed length, and returns the number of bytes
	// written, or (0, nil) on failure.
	Decompress(src, dst []byte) (int, error)
}

// ErrCodecUnavailable is returned by Lookup when the requested tag has no
// registered codec (e.g. the decoder encountered a tag from a build that
// compiled in more algorithms than this one does).
type ErrCodecUnavailable struct {
	Tag Algo
}

func (e *ErrCodecUnavailable) Error() string {
	return fmt.Sprintf("codec %s not available", e.Tag)
}

// registry is a small fixed table keyed by tag, built once at package
// initialization from a literal list — never mutated, and never
// populated via import-order-dependent init() side effects in other
// files, to avoid the initialization-order hazards a mutable global
// registry would invite.
var registry = map[Algo]Codec{
	Zstd:   newZstdCodec(),
	Lz4:    newLz4Codec(),
	Snappy: newSnappyCodec(),
	Copy:   copyCodec{},
}

// Lookup returns the codec registered for tag, or ErrCodecUnavailable.
// Zero is never registered: it is a pipeline-level fast path, not a
// selectable codec.
func Lookup(tag Algo) (Codec, error) {
	c, ok := registry[tag]
	if !ok {
		return nil, &ErrCodecUnavailable{Tag: tag}
	}
	return c, nil
}

// Candidates returns the codecs eligible for per-chunk selection during
// encode, in the fixed tie-break order zstd < lz4 < snappy.
func Candidates() []Codec {
	return []Codec{registry[Zstd], registry[Lz4], registry[Snappy]}
}

// MaxBound returns the largest Bound(srcLen) across every real (non-Copy,
// non-Zero) registered codec, used to size the shared output buffer pool.
func MaxBound(srcLen int) int {
	max := srcLen
	for _, c := range Candidates() {
		if b := c.Bound(srcLen); b > max {
			max = b
		}
	}
	return max
}
