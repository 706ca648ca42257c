package merkle

import (
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRoot(t *testing.T) {

	H := hashNum

	tests := []struct {
		name   string
		leaves [][]byte
		want   []byte
	}{
		{
			"single leaf is its own root",
			numberedLeaves(1),
			H(0),
		},
		{
			"2 leaves",
			numberedLeaves(2),
			Hlr(H(0), H(1)),
		},
		//	2        k
		//	       /   \
		//	1     f     g
		//	     / \   / \
		//	0   a   b c   c'
		{
			"3 leaves duplicates the odd last leaf",
			numberedLeaves(3),
			Hlr(Hlr(H(0), H(1)), Hlr(H(2), H(2))),
		},
		{
			"4 leaves",
			numberedLeaves(4),
			Hlr(Hlr(H(0), H(1)), Hlr(H(2), H(3))),
		},
		//	3              r
		//	            /     \
		//	2        k           m
		//	       /   \       /   \
		//	1     f     g     h     h'
		//	     / \   / \   / \
		//	0   a   b c   d e   e'
		{
			"5 leaves duplicates at two levels",
			numberedLeaves(5),
			Hlr(
				Hlr(Hlr(H(0), H(1)), Hlr(H(2), H(3))),
				Hlr(Hlr(H(4), H(4)), Hlr(H(4), H(4))),
			),
		},
		{
			"6 leaves",
			numberedLeaves(6),
			Hlr(
				Hlr(Hlr(H(0), H(1)), Hlr(H(2), H(3))),
				Hlr(Hlr(H(4), H(5)), Hlr(H(4), H(5))),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := mustPack(t, tt.leaves)

			got, err := ComputeRoot(sha256.New(), packed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			tree, err := BuildTree(sha256.New(), packed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.Root())
			assert.Equal(t, ProofLen(uint64(len(tt.leaves))), tree.Height())
		})
	}
}

func TestComputeRootIdempotent(t *testing.T) {
	hasher := sha256.New()
	packed := mustPack(t, numberedLeaves(13))

	first, err := ComputeRoot(hasher, packed)
	require.NoError(t, err)
	second, err := ComputeRoot(hasher, packed)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the root must not alias the packed data
	packed[0] ^= 0xff
	third, err := ComputeRoot(hasher, packed)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestComputeRootSingleLeafCopy(t *testing.T) {
	packed := mustPack(t, numberedLeaves(1))
	root, err := ComputeRoot(sha256.New(), packed)
	require.NoError(t, err)
	root[0] ^= 0xff
	assert.Equal(t, hashNum(0), packed.Leaf(0))
}

func TestComputeRootErrors(t *testing.T) {
	_, err := ComputeRoot(sha256.New(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = ComputeRoot(sha256.New(), PackedLeaves(make([]byte, 40)))
	assert.ErrorIs(t, err, ErrPackedLength)

	_, err = ComputeRoot(sha512.New(), mustPack(t, numberedLeaves(2)))
	assert.ErrorIs(t, err, ErrHashSizeMismatch)

	_, err = BuildTree(sha512.New(), mustPack(t, numberedLeaves(2)))
	assert.ErrorIs(t, err, ErrHashSizeMismatch)
}

func TestTreeNode(t *testing.T) {
	tree, err := BuildTree(sha256.New(), mustPack(t, numberedLeaves(5)))
	require.NoError(t, err)

	require.Equal(t, 3, tree.Height())
	require.Equal(t, uint64(5), tree.LeafCount())

	got, err := tree.Node(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Hlr(hashNum(4), hashNum(4)), got)

	got, err = tree.Node(3, 0)
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), got)

	_, err = tree.Node(1, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.Node(4, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.Node(-1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
