package checksum

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// File computes the xxhash64 fingerprint of a file, hex-encoded. Used to
// drop byte-identical attachment extracts before a batch is correlated.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Bytes computes the xxhash64 fingerprint of a byte slice, hex-encoded.
func Bytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
