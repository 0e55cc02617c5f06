package codec

import (
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, tag Algo, data []byte) {
	t.Helper()
	c, err := Lookup(tag)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, c.Bound(len(data)))
	n, err := c.Compress(data, dst, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatalf("%s: compress returned 0 for %d bytes", c.Name(), len(data))
	}
	comp := dst[:n]

	out := make([]byte, len(data))
	got, err := c.Decompress(comp, out)
	if err != nil {
		t.Fatal(err)
	}
	if got != len(data) {
		t.Fatalf("%s: decompress returned %d, want %d", c.Name(), got, len(data))
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("%s: round trip mismatch", c.Name())
	}
}

func TestRoundTripAllCodecs(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 4096)
	for _, tag := range []Algo{Zstd, Lz4, Snappy, Copy} {
		roundTrip(t, tag, data)
	}
}

func TestLookupUnavailable(t *testing.T) {
	_, err := Lookup(Zero)
	if err == nil {
		t.Fatal("expected Zero to be unavailable as a selectable codec")
	}
	var unavail *ErrCodecUnavailable
	if ok := asErrCodecUnavailable(err, &unavail); !ok {
		t.Fatalf("unexpected error type: %v", err)
	}
}

func asErrCodecUnavailable(err error, target **ErrCodecUnavailable) bool {
	e, ok := err.(*ErrCodecUnavailable)
	if !ok {
		return false
	}
	*target = e
	return true
}

func TestCandidatesOrder(t *testing.T) {
	cands := Candidates()
	want := []Algo{Zstd, Lz4, Snappy}
	if len(cands) != len(want) {
		t.Fatalf("len(Candidates()) = %d, want %d", len(cands), len(want))
	}
	for i, c := range cands {
		if c.Tag() != want[i] {
			t.Fatalf("Candidates()[%d].Tag() = %v, want %v", i, c.Tag(), want[i])
		}
	}
}

func TestMaxBoundAtLeastSrcLen(t *testing.T) {
	if b := MaxBound(1024); b < 1024 {
		t.Fatalf("MaxBound(1024) = %d, want >= 1024", b)
	}
}
