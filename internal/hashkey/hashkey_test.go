package hashkey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abcSHA512 = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
	"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"

func TestOfBytes_KnownVector(t *testing.T) {
	assert.Equal(t, abcSHA512, OfBytes([]byte("abc")))
}

func TestOfBytes_DiffersOnSingleByteChange(t *testing.T) {
	a := OfBytes([]byte{1, 2, 3})
	b := OfBytes([]byte{1, 2, 4})
	assert.NotEqual(t, a, b)
}

func TestOfFile_MatchesOfBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := OfFile(path)
	require.NoError(t, err)
	assert.Equal(t, abcSHA512, sum)
}

func TestOfFile_Missing(t *testing.T) {
	_, err := OfFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
