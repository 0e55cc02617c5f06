package decode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/falk/warp/encode"
	"github.com/falk/warp/format"
	"github.com/falk/warp/internal/codec"
)

func roundTrip(t *testing.T, data []byte, encOpts encode.Options, decOpts Options) []byte {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	warp := filepath.Join(dir, "out.warp")
	out := filepath.Join(dir, "out.bin")

	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := encode.Encode(context.Background(), in, warp, encOpts); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := Decode(context.Background(), warp, out, decOpts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return got
}

func TestDecodeRoundTripMixedContent(t *testing.T) {
	// 1 MiB of zeros, 1 MiB of pseudo-random bytes, then text, so the
	// chunks go through the Zero, Copy and compressed paths.
	const mib = 1 << 20
	data := make([]byte, 5*mib)
	x := uint32(2463534242)
	for i := mib; i < 2*mib; i++ {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		data[i] = byte(x)
	}
	text := []byte("the quick brown fox jumps over the lazy dog. ")
	for i := 2 * mib; i < len(data); i++ {
		data[i] = text[i%len(text)]
	}
	opts := encode.DefaultOptions()
	opts.ChunkBytes = 1 << 20
	opts.Threads = 4

	got := roundTrip(t, data, opts, Options{Threads: 4})
	if len(got) != len(data) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte mismatch at %d: got %d want %d", i, got[i], data[i])
		}
	}
}

func TestDecodeRoundTripAllZero(t *testing.T) {
	data := make([]byte, 3*1024*1024)
	opts := encode.DefaultOptions()
	opts.ChunkBytes = 1 << 20

	got := roundTrip(t, data, opts, Options{})
	if len(got) != len(data) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(data))
	}
	for i := range got {
		if got[i] != 0 {
			t.Fatalf("non-zero byte at %d", i)
		}
	}
}

func TestDecodeRoundTripTinyASCII(t *testing.T) {
	data := []byte("hello, warp!")
	opts := encode.DefaultOptions()

	got := roundTrip(t, data, opts, Options{})
	if string(got) != string(data) {
		t.Fatalf("got %q want %q", got, data)
	}
}

func TestDecodeRoundTripPinnedAlgoWithChecksum(t *testing.T) {
	data := make([]byte, 2*1024*1024)
	for i := range data {
		data[i] = byte((i / 97) % 256)
	}
	opts := encode.DefaultOptions()
	opts.ChunkBytes = 512 * 1024
	opts.Algo = codec.Zstd
	opts.ChkKind = encode.ChecksumXXH64

	got := roundTrip(t, data, opts, Options{Verify: true})
	if len(got) != len(data) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte mismatch at %d", i)
		}
	}
}

func TestDecodeDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	warp := filepath.Join(dir, "out.warp")
	out := filepath.Join(dir, "out.bin")

	data := make([]byte, 1<<20)
	for i := range data {
		data[i] = byte(i % 17)
	}
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	opts := encode.DefaultOptions()
	opts.ChunkBytes = 256 * 1024
	opts.Algo = codec.Zstd
	if err := encode.Encode(context.Background(), in, warp, opts); err != nil {
		t.Fatalf("encode: %v", err)
	}

	f, err := os.OpenFile(warp, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open warp: %v", err)
	}
	// Overwrite chunk 0's comp_len field with a bogus, oversized value.
	// Chunk 0 is zstd-compressed (the algo is pinned and the data is
	// repetitive), so the decode worker reads comp_len bytes at its offset;
	// that positional read runs past EOF and fails deterministically.
	compLenOff := int64(format.HeaderSize + 12)
	if _, err := f.WriteAt([]byte{0xFF, 0xFF, 0xFF, 0x7F}, compLenOff); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	f.Close()

	err = Decode(context.Background(), warp, out, Options{})
	if err == nil {
		t.Fatalf("expected decode to report a failure on corrupted payload")
	}
}
