// Package format implements bit-exact (de)serialization of the .warp
// container: file header, chunk table, optional index block, optional
// checksum block, and footer. All multi-byte integers are little-endian;
// every struct below pins explicit widths (including reserved padding)
// so the wire size matches regardless of the host platform's own
// alignment rules, grounded on the same binary.Write(w, binary.LittleEndian,
// struct) pattern the teacher uses for its own container headers.
package format

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic is the file header's magic number: bytes 57 41 52 50 ('WARP').
	Magic uint32 = 0x50524157
	// Version is the only container version this implementation writes
	// or accepts.
	Version uint16 = 1

	// IndexMagic identifies the optional index block ('WIX1').
	IndexMagic uint32 = 0x31584957
	// ChecksumMagic identifies the optional checksum block ('WCHK').
	ChecksumMagic uint32 = 0x4B484357
	// FooterMagic identifies the fixed trailing footer ('WFTR').
	FooterMagic uint32 = 0x52544657

	// HeaderSize is the fixed on-disk size of Header, in bytes.
	HeaderSize = 4 + 2 + 1 + 1 + 4 + 4 + 8 + 8
	// ChunkEntrySize is the fixed on-disk size of a ChunkEntry, in bytes.
	ChunkEntrySize = 8 + 4 + 4 + 1 + 7
	// FooterSize is the fixed on-disk size of Footer, in bytes.
	FooterSize = 4 + 4 + 8 + 8

	// ChecksumKindNone means no checksum block is present.
	ChecksumKindNone uint32 = 0
	// ChecksumKindXXH64 marks an 8-byte little-endian xxh64 digest.
	ChecksumKindXXH64 uint32 = 1
)

// Header is the 32-byte file header.
type Header struct {
	Magic      uint32
	Version    uint16
	BaseAlgo   uint8
	Flags      uint8
	ChunkSize  uint32
	ChunkCount uint32
	OrigSize   uint64
	CompSize   uint64
}

// WriteHeader writes h in the on-disk layout.
func WriteHeader(w io.Writer, h Header) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// ReadHeader reads and validates a Header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Magic != Magic || h.Version != Version {
		return Header{}, fmt.Errorf("%w: magic=%#x version=%d", ErrBadHeader, h.Magic, h.Version)
	}
	return h, nil
}

// ChunkEntry is one 24-byte chunk-table entry.
type ChunkEntry struct {
	Offset   uint64
	OrigLen  uint32
	CompLen  uint32
	Algo     uint8
	_        [7]byte
}

// WriteTable writes the chunk table, one ChunkEntry per entry, in order.
func WriteTable(w io.Writer, entries []ChunkEntry) error {
	for i := range entries {
		if err := binary.Write(w, binary.LittleEndian, entries[i]); err != nil {
			return fmt.Errorf("format: write chunk table entry %d: %w", i, err)
		}
	}
	return nil
}

// ReadTable reads count ChunkEntry records.
func ReadTable(r io.Reader, count uint32) ([]ChunkEntry, error) {
	entries := make([]ChunkEntry, count)
	for i := range entries {
		if err := binary.Read(r, binary.LittleEndian, &entries[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadTable, i, err)
		}
	}
	return entries, nil
}

// IndexEntry mirrors ChunkEntry's fields in the optional WIX1 block.
type IndexEntry struct {
	PayloadOff uint64
	OrigLen    uint32
	CompLen    uint32
	Algo       uint8
	_          [7]byte
}

// WriteIndex writes the optional index block for the given chunk table.
func WriteIndex(w io.Writer, entries []ChunkEntry) error {
	if err := binary.Write(w, binary.LittleEndian, struct {
		Magic uint32
		Count uint32
	}{IndexMagic, uint32(len(entries))}); err != nil {
		return err
	}
	for i := range entries {
		e := IndexEntry{
			PayloadOff: entries[i].Offset,
			OrigLen:    entries[i].OrigLen,
			CompLen:    entries[i].CompLen,
			Algo:       entries[i].Algo,
		}
		if err := binary.Write(w, binary.LittleEndian, e); err != nil {
			return fmt.Errorf("format: write index entry %d: %w", i, err)
		}
	}
	var trailingCRC uint32
	return binary.Write(w, binary.LittleEndian, trailingCRC)
}

// ReadIndex reads an index block header and its entries.
func ReadIndex(r io.Reader) ([]IndexEntry, error) {
	var hdr struct {
		Magic uint32
		Count uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("format: read index header: %w", err)
	}
	if hdr.Magic != IndexMagic {
		return nil, fmt.Errorf("format: bad index magic %#x", hdr.Magic)
	}
	entries := make([]IndexEntry, hdr.Count)
	for i := range entries {
		if err := binary.Read(r, binary.LittleEndian, &entries[i]); err != nil {
			return nil, fmt.Errorf("format: read index entry %d: %w", i, err)
		}
	}
	var trailingCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &trailingCRC); err != nil {
		return nil, fmt.Errorf("format: read index trailer: %w", err)
	}
	return entries, nil
}

// WriteChecksum writes a checksum block carrying digest (8 bytes for
// xxh64).
func WriteChecksum(w io.Writer, kind uint32, digest []byte) error {
	hdr := struct {
		Magic uint32
		Kind  uint32
		Dlen  uint32
		Rsv   [2]uint32
	}{ChecksumMagic, kind, uint32(len(digest)), [2]uint32{}}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	_, err := w.Write(digest)
	return err
}

// ChecksumBlock is a parsed checksum block.
type ChecksumBlock struct {
	Kind   uint32
	Digest []byte
}

// ReadChecksum reads a checksum block from r.
func ReadChecksum(r io.Reader) (ChecksumBlock, error) {
	var hdr struct {
		Magic uint32
		Kind  uint32
		Dlen  uint32
		Rsv   [2]uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return ChecksumBlock{}, fmt.Errorf("format: read checksum header: %w", err)
	}
	if hdr.Magic != ChecksumMagic {
		return ChecksumBlock{}, fmt.Errorf("format: bad checksum magic %#x", hdr.Magic)
	}
	digest := make([]byte, hdr.Dlen)
	if _, err := io.ReadFull(r, digest); err != nil {
		return ChecksumBlock{}, fmt.Errorf("format: read checksum digest: %w", err)
	}
	return ChecksumBlock{Kind: hdr.Kind, Digest: digest}, nil
}

// Footer is the fixed 24-byte trailer, always the last bytes of the file.
type Footer struct {
	Magic  uint32
	_      uint32
	WixOff uint64
	ChkOff uint64
}

// WriteFooter writes f in the on-disk layout.
func WriteFooter(w io.Writer, f Footer) error {
	return binary.Write(w, binary.LittleEndian, f)
}

// ReadFooter reads a Footer from r.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
		return Footer{}, fmt.Errorf("format: read footer: %w", err)
	}
	if f.Magic != FooterMagic {
		return Footer{}, fmt.Errorf("format: bad footer magic %#x", f.Magic)
	}
	return f, nil
}
