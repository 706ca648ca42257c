package merkle

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func hashNum(num uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, num)
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)
}

func hashString(s string) []byte {
	return HashContent(sha256.New(), []byte(s))
}

// numberedLeaves returns n leaves whose values are the hashes of their indices
func numberedLeaves(n uint64) [][]byte {
	leaves := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		leaves = append(leaves, hashNum(i))
	}
	return leaves
}

func mustPack(t *testing.T, leaves [][]byte) PackedLeaves {
	packed, err := Pack(leaves)
	require.NoError(t, err)
	return packed
}

// Hlr returns H(left || right) computed without the package helpers, so that
// tree construction can legitimately be tested against it.
func Hlr(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}
