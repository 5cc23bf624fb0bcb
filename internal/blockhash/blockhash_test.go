package blockhash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference computes the digest the slow way: collect all per-block digests
// into one buffer, then hash that buffer.
func reference(data []byte) string {
	var joined []byte
	for off := 0; off < len(data); off += BlockSize {
		end := off + BlockSize
		if end > len(data) {
			end = len(data)
		}
		d := sha256.Sum256(data[off:end])
		joined = append(joined, d[:]...)
	}
	if len(data) == 0 {
		d := sha256.Sum256(nil)
		joined = d[:]
	}
	final := sha256.Sum256(joined)
	return hex.EncodeToString(final[:])
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSum_EmptyFileCanonicalVector(t *testing.T) {
	inner := sha256.Sum256(nil)
	outer := sha256.Sum256(inner[:])
	want := hex.EncodeToString(outer[:])

	got, err := Sum(writeTemp(t, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 64)
}

func TestSum_SingleShortBlock(t *testing.T) {
	data := []byte("hello box\n")
	got, err := Sum(writeTemp(t, data))
	require.NoError(t, err)
	assert.Equal(t, reference(data), got)
}

func TestSum_ExactBlockBoundary(t *testing.T) {
	data := bytes.Repeat([]byte{0xA5}, BlockSize)
	got, err := Sum(writeTemp(t, data))
	require.NoError(t, err)

	// One full block: outer hash over exactly one inner digest.
	inner := sha256.Sum256(data)
	outer := sha256.Sum256(inner[:])
	assert.Equal(t, hex.EncodeToString(outer[:]), got)
}

func TestSum_MultiBlock(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, BlockSize+3)
	got, err := Sum(writeTemp(t, data))
	require.NoError(t, err)
	assert.Equal(t, reference(data), got)
}

func TestSumReader_IndependentOfReadGranularity(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 1024)

	whole, err := SumReader(bytes.NewReader(data))
	require.NoError(t, err)

	// Drip-feed one byte at a time. The digest depends only on content.
	dripped, err := SumReader(iotestOneByte{bytes.NewReader(data)})
	require.NoError(t, err)
	assert.Equal(t, whole, dripped)
}

func TestSum_Deterministic(t *testing.T) {
	path := writeTemp(t, []byte("same bytes, same digest"))
	a, err := Sum(path)
	require.NoError(t, err)
	b, err := Sum(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSum_MissingFile(t *testing.T) {
	_, err := Sum(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestBlockCount(t *testing.T) {
	cases := []struct {
		size int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{BlockSize - 1, 1},
		{BlockSize, 1},
		{BlockSize + 1, 2},
		{3 * BlockSize, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BlockCount(tc.size), "size=%d", tc.size)
	}
}

// iotestOneByte yields at most one byte per Read call.
type iotestOneByte struct {
	r *bytes.Reader
}

func (o iotestOneByte) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}
