package merkle

import (
	"fmt"
	"hash"
)

// Proof is an inclusion proof for a single leaf.
//
// Path holds one sibling per level, ordered from the leaf level up. Index is
// the leaf's position in the batch and carries the position information the
// verifier needs: at level k the proven node is the left operand iff bit k of
// Index is zero.
type Proof struct {
	Index uint64   `cbor:"1,keyasint"`
	Path  [][]byte `cbor:"2,keyasint"`
}

// InclusionProof collects the merkle proof for the leaf at index.
//
// For the following tree and index=2 we obtain the path [d, f, m]
//
//	3              r
//	            /     \
//	2        k           m
//	       /   \       /   \
//	1     f     g     h     h'
//	     / \   / \   / \
//	0   a   b c   d e   e'
//
// For index=4 the path is [e, h, k]. The leaf e is its own sibling because it
// is the odd last node of level 0, likewise h at level 1.
func (t *Tree) InclusionProof(index uint64) (Proof, error) {
	if index >= t.LeafCount() {
		return Proof{}, fmt.Errorf("%w: %d not in batch of %d", ErrIndexOutOfRange, index, t.LeafCount())
	}

	proof := Proof{Index: index, Path: make([][]byte, 0, t.Height())}

	i := index
	for _, level := range t.levels[:t.Height()] {
		proof.Path = append(proof.Path, clone(level.Leaf(siblingIndex(i, level.LeafCount()))))
		i >>= 1
	}
	return proof, nil
}

// InclusionProof is a convenience for obtaining a single proof. It builds the
// whole tree, so callers wanting proofs for many leaves of the same batch
// should use BuildTree and Tree.InclusionProof.
func InclusionProof(hasher hash.Hash, packed PackedLeaves, index uint64) (Proof, error) {
	if err := packed.Validate(); err != nil {
		return Proof{}, err
	}
	if index >= packed.LeafCount() {
		return Proof{}, fmt.Errorf("%w: %d not in batch of %d", ErrIndexOutOfRange, index, packed.LeafCount())
	}
	t, err := BuildTree(hasher, packed)
	if err != nil {
		return Proof{}, err
	}
	return t.InclusionProof(index)
}

// InclusionProofPath returns the level indices identifying the witness nodes
// for the leaf at index. The element at position k is the index of the witness
// at height k.
//
// This allows tooling to individually audit the proof path node values for a
// given leaf.
func InclusionProofPath(leafCount uint64, index uint64) ([]uint64, error) {
	if index >= leafCount {
		return nil, fmt.Errorf("%w: %d not in batch of %d", ErrIndexOutOfRange, index, leafCount)
	}

	height := ProofLen(leafCount)
	path := make([]uint64, 0, height)

	i := index
	for g := 0; g < height; g++ {
		path = append(path, siblingIndex(i, LevelWidth(leafCount, g)))
		i >>= 1
	}
	return path, nil
}

// siblingIndex returns the index of the node paired with i on a level of the
// given width. The odd last node is paired with itself.
func siblingIndex(i uint64, width uint64) uint64 {
	iSibling := i ^ 1
	if iSibling >= width {
		return i
	}
	return iSibling
}
