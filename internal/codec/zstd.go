package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec wraps klauspost/compress/zstd behind the Codec interface,
// pooling encoders by level the way the teacher's pkg/zstd package pools
// them, so repeated per-chunk compress calls don't pay encoder setup
// cost each time.
type zstdCodec struct {
	dec *zstd.Decoder

	mu    sync.Mutex
	byLvl map[int]*sync.Pool
}

func newZstdCodec() *zstdCodec {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	return &zstdCodec{
		dec:   dec,
		byLvl: make(map[int]*sync.Pool),
	}
}

func (z *zstdCodec) Name() string { return "zstd" }
func (z *zstdCodec) Tag() Algo    { return Zstd }

// Bound is a conservative upper bound; zstd's worst-case expansion on
// incompressible input is a small fraction of the source size, well
// under what this formula allows.
func (z *zstdCodec) Bound(srcLen int) int {
	return srcLen + srcLen/2 + 4096
}

func (z *zstdCodec) encoderPool(level int) *sync.Pool {
	z.mu.Lock()
	defer z.mu.Unlock()
	if p, ok := z.byLvl[level]; ok {
		return p
	}
	p := &sync.Pool{
		New: func() any {
			lvl := zstd.EncoderLevelFromZstd(level)
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(lvl),
				zstd.WithEncoderConcurrency(1),
			)
			if err != nil {
				panic(err)
			}
			return enc
		},
	}
	z.byLvl[level] = p
	return p
}

func (z *zstdCodec) Compress(src, dst []byte, level int) (int, error) {
	if level <= 0 {
		level = 1
	}
	pool := z.encoderPool(level)
	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	out := enc.EncodeAll(src, dst[:0])
	if len(out) == 0 {
		return 0, nil
	}
	if &out[0] != &dst[:1][0] {
		// the encoder had to grow the buffer past its capacity; copy the
		// result back into the caller's buffer if it fits, otherwise
		// report failure so the pipeline falls back to Copy.
		if cap(dst) < len(out) {
			return 0, nil
		}
		copy(dst[:len(out)], out)
	}
	return len(out), nil
}

func (z *zstdCodec) Decompress(src, dst []byte) (int, error) {
	out, err := z.dec.DecodeAll(src, dst[:0])
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
