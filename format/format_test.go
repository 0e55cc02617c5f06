package format

import (
	"bytes"
	"testing"
)

func TestHeaderSize(t *testing.T) {
	var buf bytes.Buffer
	h := Header{
		Magic:      Magic,
		Version:    Version,
		BaseAlgo:   1,
		ChunkSize:  1 << 20,
		ChunkCount: 3,
		OrigSize:   100,
		CompSize:   42,
	}
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != HeaderSize {
		t.Fatalf("header wire size = %d, want %d", buf.Len(), HeaderSize)
	}
	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestMagicBytes(t *testing.T) {
	var buf bytes.Buffer
	binaryWriteMagic(t, &buf, Magic)
	want := []byte{0x57, 0x41, 0x52, 0x50} // "WARP"
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("magic bytes = % x, want % x", buf.Bytes(), want)
	}
}

func binaryWriteMagic(t *testing.T, buf *bytes.Buffer, magic uint32) {
	t.Helper()
	if err := WriteHeader(buf, Header{Magic: magic, Version: Version}); err != nil {
		t.Fatal(err)
	}
	buf.Truncate(4)
}

func TestBadHeaderMagic(t *testing.T) {
	var buf bytes.Buffer
	WriteHeader(&buf, Header{Magic: 0xdeadbeef, Version: Version})
	if _, err := ReadHeader(&buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestChunkTableRoundTrip(t *testing.T) {
	entries := []ChunkEntry{
		{Offset: 32, OrigLen: 1024, CompLen: 900, Algo: 1},
		{Offset: 932, OrigLen: 1024, CompLen: 0, Algo: 5},
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, entries); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != len(entries)*ChunkEntrySize {
		t.Fatalf("table wire size = %d, want %d", buf.Len(), len(entries)*ChunkEntrySize)
	}
	got, err := ReadTable(&buf, uint32(len(entries)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Fatalf("entry %d mismatch: got %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	entries := []ChunkEntry{
		{Offset: 32, OrigLen: 10, CompLen: 10, Algo: 4},
	}
	var buf bytes.Buffer
	if err := WriteIndex(&buf, entries); err != nil {
		t.Fatal(err)
	}
	got, err := ReadIndex(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PayloadOff != 32 || got[0].Algo != 4 {
		t.Fatalf("index mismatch: %+v", got)
	}
}

func TestChecksumRoundTrip(t *testing.T) {
	digest := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	var buf bytes.Buffer
	if err := WriteChecksum(&buf, ChecksumKindXXH64, digest); err != nil {
		t.Fatal(err)
	}
	got, err := ReadChecksum(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != ChecksumKindXXH64 || !bytes.Equal(got.Digest, digest) {
		t.Fatalf("checksum mismatch: %+v", got)
	}
}

func TestFooterRoundTrip(t *testing.T) {
	f := Footer{Magic: FooterMagic, WixOff: 100, ChkOff: 200}
	var buf bytes.Buffer
	if err := WriteFooter(&buf, f); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != FooterSize {
		t.Fatalf("footer wire size = %d, want %d", buf.Len(), FooterSize)
	}
	got, err := ReadFooter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, f)
	}
}
