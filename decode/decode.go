package decode

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/falk/warp/format"
	"github.com/falk/warp/internal/posio"
	"github.com/falk/warp/internal/workerpool"
)

// Decode decompresses the .warp container at inPath into outPath,
// according to opts.
func Decode(ctx context.Context, inPath, outPath string, opts Options) error {
	inFile, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", format.ErrBadHeader, err)
	}
	defer inFile.Close()

	hdr, err := format.ReadHeader(inFile)
	if err != nil {
		return err
	}
	table, err := format.ReadTable(inFile, hdr.ChunkCount)
	if err != nil {
		return err
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputIO, err)
	}
	defer outFile.Close()
	_ = posio.PreallocateFile(outFile, int64(hdr.OrigSize)) // best-effort

	pool := workerpool.New(opts.threads())
	defer pool.Close()

	jobs := make([]decodeJob, hdr.ChunkCount)
	for i := range jobs {
		jobs[i] = decodeJob{idx: uint32(i), entry: table[i]}
		j := &jobs[i]
		pool.Submit(func() { j.run(inFile) })
	}
	pool.Barrier()

	for i := range jobs {
		if !jobs[i].ok {
			return &ChunkDecodeFailedError{Index: jobs[i].idx}
		}
	}

	var chk format.ChecksumBlock
	var hasher *xxhash.Digest
	if opts.Verify {
		if c, ok := readChecksumBlock(inFile); ok {
			chk = c
			hasher = xxhash.New()
		}
	}

	var off uint64
	for i := range jobs {
		j := &jobs[i]
		if _, err := outFile.WriteAt(j.buf, int64(off)); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputIO, err)
		}
		if hasher != nil {
			hasher.Write(j.buf)
		}
		off += uint64(j.entry.OrigLen)
	}

	var mismatch error
	if hasher != nil {
		have := hasher.Sum64()
		want := binary.LittleEndian.Uint64(chk.Digest)
		if have != want {
			mismatch = ErrChecksumMismatch
		}
	}

	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "decompressed %d chunks -> %d bytes\n", hdr.ChunkCount, hdr.OrigSize)
	}
	return mismatch
}

// readChecksumBlock looks at the footer (if present and well-formed) and
// reads the checksum block it points to, if any. Any failure here is
// treated as "no checksum available" rather than a hard error: a
// container's footer/checksum block is optional metadata, not required
// for decode to succeed.
func readChecksumBlock(f *os.File) (format.ChecksumBlock, bool) {
	fi, err := f.Stat()
	if err != nil || fi.Size() < format.FooterSize {
		return format.ChecksumBlock{}, false
	}
	footerBuf := make([]byte, format.FooterSize)
	if err := posio.ReadFull(f, footerBuf, fi.Size()-format.FooterSize); err != nil {
		return format.ChecksumBlock{}, false
	}
	footer, err := format.ReadFooter(bytes.NewReader(footerBuf))
	if err != nil || footer.ChkOff == 0 {
		return format.ChecksumBlock{}, false
	}
	if _, err := f.Seek(int64(footer.ChkOff), io.SeekStart); err != nil {
		return format.ChecksumBlock{}, false
	}
	chk, err := format.ReadChecksum(f)
	if err != nil || chk.Kind != format.ChecksumKindXXH64 || len(chk.Digest) != 8 {
		return format.ChecksumBlock{}, false
	}
	return chk, true
}
