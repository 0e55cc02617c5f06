// Package encode implements the parallel encode pipeline: chunking,
// per-chunk algorithm selection with a warm-up phase, worker scheduling,
// pooled buffer management, and deterministic chunk-table assembly.
package encode

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/falk/warp/format"
	"github.com/falk/warp/internal/bufpool"
	"github.com/falk/warp/internal/chunksize"
	"github.com/falk/warp/internal/codec"
	"github.com/falk/warp/internal/workerpool"
)

// Encode compresses the file at inPath into the .warp container at
// outPath, according to opts.
func Encode(ctx context.Context, inPath, outPath string, opts Options) error {
	fi, err := os.Stat(inPath)
	if err != nil || fi.Size() == 0 {
		return ErrInputMissing
	}
	total := fi.Size()

	chunkSize := opts.ChunkBytes
	if chunkSize == 0 {
		chunkSize = chunksize.Pick(total)
	}
	chunkCount := uint32((total + int64(chunkSize) - 1) / int64(chunkSize))

	inFile, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputMissing, err)
	}
	defer inFile.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	defer outFile.Close()

	outCap := codec.MaxBound(int(chunkSize))
	blocks := opts.threads() * 2
	inPool := bufpool.New(int(chunkSize), blocks)
	outPool := bufpool.New(outCap, blocks)

	baseAlgo := opts.Algo
	hdr := format.Header{
		Magic:      format.Magic,
		Version:    format.Version,
		ChunkSize:  chunkSize,
		ChunkCount: chunkCount,
		OrigSize:   uint64(total),
	}
	if baseAlgo != 0 {
		hdr.BaseAlgo = uint8(baseAlgo)
	} else {
		hdr.BaseAlgo = uint8(codec.Zstd)
	}

	if err := format.WriteHeader(outFile, hdr); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	table := make([]format.ChunkEntry, chunkCount)
	if err := format.WriteTable(outFile, table); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}

	payloadPos, err := outFile.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}

	pool := workerpool.New(opts.threads())
	defer pool.Close()

	lockedAlgo := baseAlgo
	var warmN uint32
	if baseAlgo == 0 {
		warmN = uint32(opts.autoLock())
		if warmN > chunkCount {
			warmN = chunkCount
		}
	}

	var compSize uint64

	if warmN > 0 {
		jobs := makeJobs(0, warmN, chunkSize, total, 0, opts, inPool, outPool)
		runJobs(pool, inFile, jobs)
		if err := checkJobs(jobs); err != nil {
			return err
		}
		lockedAlgo = lockAlgorithm(jobs, opts.AutoMode)
		written, err := drainJobs(outFile, table, jobs, payloadPos)
		if err != nil {
			return err
		}
		compSize += written
		payloadPos += int64(written)
	}

	if warmN < chunkCount {
		prefer := lockedAlgo
		if prefer == 0 {
			prefer = codec.Zstd
		}
		jobs := makeJobs(warmN, chunkCount, chunkSize, total, prefer, opts, inPool, outPool)
		runJobs(pool, inFile, jobs)
		if err := checkJobs(jobs); err != nil {
			return err
		}
		written, err := drainJobs(outFile, table, jobs, payloadPos)
		if err != nil {
			return err
		}
		compSize += written
		payloadPos += int64(written)
	}

	hdr.CompSize = compSize
	if lockedAlgo != 0 {
		hdr.BaseAlgo = uint8(lockedAlgo)
	}

	if _, err := outFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	if err := format.WriteHeader(outFile, hdr); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	if err := format.WriteTable(outFile, table); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	if _, err := outFile.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}

	var wixOff, chkOff uint64
	if opts.DoIndex {
		pos, err := outFile.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputIO, err)
		}
		wixOff = uint64(pos)
		if err := format.WriteIndex(outFile, table); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputIO, err)
		}
	}

	if opts.ChkKind == ChecksumXXH64 {
		digest, err := hashFileXXH64(inPath)
		if err != nil {
			// best-effort: an I/O failure re-reading the input for the
			// checksum pass is logged and the checksum block is simply
			// omitted for this run, rather than failing the whole encode.
			fmt.Fprintf(os.Stderr, "warp: checksum pass failed, omitting checksum block: %v\n", err)
		} else {
			pos, err := outFile.Seek(0, io.SeekCurrent)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrOutputIO, err)
			}
			chkOff = uint64(pos)
			if err := format.WriteChecksum(outFile, format.ChecksumKindXXH64, digest); err != nil {
				return fmt.Errorf("%w: %v", ErrOutputIO, err)
			}
		}
	}

	footer := format.Footer{Magic: format.FooterMagic, WixOff: wixOff, ChkOff: chkOff}
	if err := format.WriteFooter(outFile, footer); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}

	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "compressed %d -> %d bytes in %d chunks (locked algo=%s)\n",
			total, hdr.CompSize, chunkCount, codec.Algo(hdr.BaseAlgo))
	}
	return nil
}

func makeJobs(from, to, chunkSize uint32, total int64, prefer codec.Algo, opts Options, inPool, outPool *bufpool.Pool) []compressJob {
	jobs := make([]compressJob, to-from)
	for j := range jobs {
		idx := from + uint32(j)
		off := int64(idx) * int64(chunkSize)
		length := chunkSize
		if off+int64(length) > total {
			length = uint32(total - off)
		}
		jobs[j] = compressJob{
			idx:        idx,
			offset:     off,
			length:     length,
			preferAlgo: prefer,
			level:      opts.level(),
			inPool:     inPool,
			outPool:    outPool,
		}
	}
	return jobs
}

func runJobs(pool *workerpool.Pool, in *os.File, jobs []compressJob) {
	for i := range jobs {
		j := &jobs[i]
		pool.Submit(func() { j.run(in) })
	}
	pool.Barrier()
}

func checkJobs(jobs []compressJob) error {
	for i := range jobs {
		if !jobs[i].ok {
			return &ChunkEncodeFailedError{Index: jobs[i].idx}
		}
	}
	return nil
}

// drainJobs writes each job's payload to out in chunk-index order and
// records its table entry. The driver owns this step exclusively: it
// runs after the barrier, single-threaded, so on-disk offsets come out
// monotonically increasing with chunk index. Each job's payload is an
// owned slice (see compressJob.run), not pool-backed, so there is
// nothing to release here.
func drainJobs(out *os.File, table []format.ChunkEntry, jobs []compressJob, payloadPos int64) (uint64, error) {
	if _, err := out.Seek(payloadPos, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	var written uint64
	for i := range jobs {
		j := &jobs[i]
		entry := format.ChunkEntry{OrigLen: j.length, Algo: uint8(j.algo)}
		if j.algo != codec.Zero {
			entry.Offset = uint64(payloadPos) + written
			entry.CompLen = uint32(j.compLen)
			if _, err := out.Write(j.payload); err != nil {
				return written, fmt.Errorf("%w: %v", ErrOutputIO, err)
			}
			written += uint64(j.compLen)
		}
		table[j.idx] = entry
	}
	return written, nil
}
