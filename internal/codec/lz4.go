package codec

import "github.com/pierrec/lz4/v4"

// lz4Codec wraps pierrec/lz4's block-level (frame-less) API: a .warp
// chunk already carries its own orig_len/comp_len in the chunk table, so
// there is no need for lz4's own frame headers or checksums.
type lz4Codec struct{}

func newLz4Codec() *lz4Codec { return &lz4Codec{} }

func (lz4Codec) Name() string { return "lz4" }
func (lz4Codec) Tag() Algo    { return Lz4 }

func (lz4Codec) Bound(srcLen int) int {
	return lz4.CompressBlockBound(srcLen)
}

func (lz4Codec) Compress(src, dst []byte, level int) (int, error) {
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst[:cap(dst)])
	if err != nil {
		return 0, nil
	}
	// CompressBlock returns 0 when the input is incompressible and the
	// compressed form would not fit; treat that as a soft failure so the
	// pipeline falls back to Copy, same as a 0-byte codec failure.
	return n, nil
}

func (lz4Codec) Decompress(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, nil
	}
	if n != len(dst) {
		return 0, nil
	}
	return n, nil
}
