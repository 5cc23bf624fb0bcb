// Package blockhash implements the content digest used by the box server for
// content addressing. A file is split into fixed-size 4 MiB blocks, each block
// is hashed with SHA-256, and the concatenation of the raw per-block digests
// is hashed with SHA-256 again. The lower-case hex encoding of that outer
// digest is the file's content hash.
//
// The scheme must match the server bit-for-bit, otherwise local and remote
// content can never compare equal without transferring bytes.
package blockhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// BlockSize is the fixed chunking size of the content hash. Changing it would
// produce digests the server never matches.
const BlockSize = 4 * 1024 * 1024

// BlockCount returns the number of blocks a file of the given size spans.
func BlockCount(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + BlockSize - 1) / BlockSize
}

// Sum computes the content hash of the file at path. The file is streamed one
// block at a time, so memory use is constant regardless of file size.
func Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	digest, err := SumReader(f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return digest, nil
}

// SumReader computes the content hash of everything readable from r.
// Zero-length input hashes as a single empty block.
func SumReader(r io.Reader) (string, error) {
	outer := sha256.New()
	buf := make([]byte, BlockSize)
	blocks := 0

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			block := sha256.Sum256(buf[:n])
			outer.Write(block[:])
			blocks++
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	if blocks == 0 {
		block := sha256.Sum256(nil)
		outer.Write(block[:])
	}

	return hex.EncodeToString(outer.Sum(nil)), nil
}
