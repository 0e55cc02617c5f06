package codec

import "github.com/klauspost/compress/s2"

// snappyCodec exposes klauspost/compress/s2's snappy-compatible block
// encoding under the container format's "snappy" tag. s2.EncodeSnappy
// produces wire-compatible Snappy framing; s2's decoder auto-detects and
// decodes it, which is the same approach Sneller's own compr package
// takes for its "s2" codec.
type snappyCodec struct{}

func newSnappyCodec() *snappyCodec { return &snappyCodec{} }

func (snappyCodec) Name() string { return "snappy" }
func (snappyCodec) Tag() Algo    { return Snappy }

func (snappyCodec) Bound(srcLen int) int {
	return s2.MaxEncodedLen(srcLen) + 32
}

func (snappyCodec) Compress(src, dst []byte, level int) (int, error) {
	tail := dst[:0:cap(dst)]
	out := s2.EncodeSnappy(tail, src)
	if len(out) == 0 {
		return 0, nil
	}
	if cap(out) != cap(tail) || &out[:1][0] != &tail[:1][0] {
		if cap(dst) < len(out) {
			return 0, nil
		}
		copy(dst[:len(out)], out)
	}
	return len(out), nil
}

func (snappyCodec) Decompress(src, dst []byte) (int, error) {
	out, err := s2.Decode(dst[:0:len(dst)], src)
	if err != nil {
		return 0, nil
	}
	if len(out) != len(dst) {
		return 0, nil
	}
	if &out[0] != &dst[0] {
		copy(dst, out)
	}
	return len(out), nil
}
