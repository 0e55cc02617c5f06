package encode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// hashFileXXH64 streams path through an xxh64 hasher (seed 0) and returns
// its digest as little-endian bytes, ready to write into a checksum
// block.
func hashFileXXH64(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("encode: checksum pass: %w", err)
	}
	var digest [8]byte
	binary.LittleEndian.PutUint64(digest[:], h.Sum64())
	return digest[:], nil
}
