package decode

import (
	"github.com/falk/warp/format"
	"github.com/falk/warp/internal/codec"
	"github.com/falk/warp/internal/posio"
)

// decodeJob is one chunk's decode unit of work.
type decodeJob struct {
	idx   uint32
	entry format.ChunkEntry

	// buf is an owned slice (not pool-backed): it must survive past the
	// barrier until the driver's ordered write, and a pool sized for
	// in-flight work can't hold every chunk of a container at once.
	buf []byte
	ok  bool
}

type reader interface {
	ReadAt(p []byte, off int64) (int, error)
}

func (j *decodeJob) run(in reader) {
	j.buf = make([]byte, j.entry.OrigLen)

	algo := codec.Algo(j.entry.Algo)
	if algo == codec.Zero {
		// make already returns zeroed memory.
		j.ok = true
		return
	}

	if algo == codec.Copy {
		if err := posio.ReadFull(in, j.buf, int64(j.entry.Offset)); err != nil {
			j.ok = false
			return
		}
		j.ok = true
		return
	}

	c, err := codec.Lookup(algo)
	if err != nil {
		j.ok = false
		return
	}

	scratch := make([]byte, j.entry.CompLen)
	if err := posio.ReadFull(in, scratch, int64(j.entry.Offset)); err != nil {
		j.ok = false
		return
	}

	n, err := c.Decompress(scratch, j.buf)
	if err != nil || n != len(j.buf) {
		j.ok = false
		return
	}
	j.ok = true
}
