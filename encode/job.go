package encode

import (
	"io"
	"math"
	"time"

	"github.com/falk/warp/internal/bufpool"
	"github.com/falk/warp/internal/codec"
	"github.com/falk/warp/internal/posio"
)

// compressJob is one chunk's unit of work, owned by the worker pool while
// it runs and read exclusively by the driver after the barrier.
type compressJob struct {
	idx        uint32
	offset     int64
	length     uint32
	preferAlgo codec.Algo // 0 means try every candidate
	level      int

	inPool  *bufpool.Pool
	outPool *bufpool.Pool

	// results, valid only after ok is observed true past the barrier.
	// payload is an owned slice (not pool-backed): it must survive past
	// the barrier until the driver's ordered drain writes it, and the
	// output pool is sized for in-flight scratch space, not for holding
	// every chunk of a phase at once.
	inBuf   []byte
	payload []byte
	algo    codec.Algo
	compLen int
	secs    float64
	ok      bool
}

func (j *compressJob) run(in io.ReaderAt) {
	inBuf, err := j.inPool.Acquire()
	if err != nil {
		j.ok = false
		return
	}
	j.inBuf = inBuf[:j.length]

	if err := posio.ReadFull(in, j.inBuf, j.offset); err != nil {
		j.inPool.Release(inBuf)
		j.ok = false
		return
	}

	if isAllZero(j.inBuf) {
		j.inPool.Release(j.inBuf)
		j.inBuf = nil
		j.algo = codec.Zero
		j.compLen = 0
		j.ok = true
		return
	}

	outBuf, err := j.outPool.Acquire()
	if err != nil {
		j.ok = false
		return
	}

	var candidates []codec.Codec
	if j.preferAlgo == 0 {
		candidates = codec.Candidates()
	} else if c, err := codec.Lookup(j.preferAlgo); err == nil {
		candidates = []codec.Codec{c}
	}

	var best []byte
	bestAlgo := codec.Copy
	bestSecs := 0.0
	bestMbps := math.Inf(-1)

	for _, c := range candidates {
		start := time.Now()
		n, err := c.Compress(j.inBuf, outBuf, j.level)
		secs := time.Since(start).Seconds()
		if err != nil || n == 0 {
			continue
		}
		mbps := mibPerSec(len(j.inBuf), secs)
		if mbps > bestMbps {
			bestMbps = mbps
			bestAlgo = c.Tag()
			bestSecs = secs
			// outBuf is shared scratch reused by every candidate, so the
			// winner's bytes must be copied out into an owned slice
			// before the next candidate's Compress overwrites it.
			best = append(best[:0], outBuf[:n]...)
		}
	}

	// COPY fallback: every candidate failed, or the winner didn't save
	// at least ~1.5% over the verbatim size.
	threshold := len(j.inBuf) - len(j.inBuf)/64
	if len(best) == 0 || len(best) >= threshold {
		cp, _ := codec.Lookup(codec.Copy)
		n, _ := cp.Compress(j.inBuf, outBuf, 0)
		bestAlgo = codec.Copy
		best = append(best[:0], outBuf[:n]...)
		bestSecs = 0
	}

	j.outPool.Release(outBuf)

	j.algo = bestAlgo
	j.payload = best
	j.compLen = len(best)
	j.secs = bestSecs
	j.ok = true

	j.inPool.Release(j.inBuf)
	j.inBuf = nil
}

func mibPerSec(n int, secs float64) float64 {
	if secs <= 0 {
		return 0
	}
	return (float64(n) / (1024 * 1024)) / secs
}

// isAllZero reports whether b consists entirely of zero bytes, checked
// in 8-byte words with a scalar remainder, matching the normative
// word-at-a-time detector the format's encode throughput depends on for
// large inputs.
func isAllZero(b []byte) bool {
	n := len(b)
	i := 0
	for ; i+8 <= n; i += 8 {
		w := uint64(b[i]) | uint64(b[i+1])<<8 | uint64(b[i+2])<<16 | uint64(b[i+3])<<24 |
			uint64(b[i+4])<<32 | uint64(b[i+5])<<40 | uint64(b[i+6])<<48 | uint64(b[i+7])<<56
		if w != 0 {
			return false
		}
	}
	for ; i < n; i++ {
		if b[i] != 0 {
			return false
		}
	}
	return true
}
