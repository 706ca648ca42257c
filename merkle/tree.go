package merkle

import (
	"fmt"
	"hash"
)

// OddNodePolicy identifies how a level with an odd number of nodes is
// completed before pairing.
type OddNodePolicy uint8

const (
	// OddNodeDuplicate pairs the last node of an odd level with a copy of itself
	OddNodeDuplicate OddNodePolicy = 1
)

// Policy is the odd node rule implemented by this package. It is externally
// observable in every root and proof and is recorded in sealed anchor states.
const Policy = OddNodeDuplicate

// Tree is a fully materialised batch tree. levels[0] are the leaves and the
// last level holds only the root.
//
// A Tree is only needed when many proofs are wanted from the same batch. For a
// root alone use ComputeRoot.
type Tree struct {
	levels []PackedLeaves
}

// BuildTree hashes every level of the tree for the packed leaves.
//
// The leaf level aliases packed, the caller must not modify it while the tree
// is in use.
func BuildTree(hasher hash.Hash, packed PackedLeaves) (*Tree, error) {
	if err := checkHasher(hasher); err != nil {
		return nil, err
	}
	if err := packed.Validate(); err != nil {
		return nil, err
	}

	t := &Tree{levels: make([]PackedLeaves, 0, ProofLen(packed.LeafCount())+1)}
	level := packed
	t.levels = append(t.levels, level)
	for level.LeafCount() > 1 {
		level = nextLevel(hasher, level)
		t.levels = append(t.levels, level)
	}
	return t, nil
}

// ComputeRoot returns the root of the tree over packed without retaining the
// interior levels.
//
// For a single leaf the root is the leaf value itself.
func ComputeRoot(hasher hash.Hash, packed PackedLeaves) ([]byte, error) {
	if err := checkHasher(hasher); err != nil {
		return nil, err
	}
	if err := packed.Validate(); err != nil {
		return nil, err
	}

	level := packed
	for level.LeafCount() > 1 {
		level = nextLevel(hasher, level)
	}
	return clone(level.Leaf(0)), nil
}

// nextLevel hashes adjacent pairs of level to produce the level above.
func nextLevel(hasher hash.Hash, level PackedLeaves) PackedLeaves {
	width := level.LeafCount()
	next := make(PackedLeaves, 0, ((width+1)>>1)*HashSize)

	for i := uint64(0); i < width; i += 2 {
		left := level.Leaf(i)

		// An odd last node is paired with itself, see OddNodeDuplicate
		right := left
		if i+1 < width {
			right = level.Leaf(i + 1)
		}
		next = append(next, HashPair(hasher, left, right)...)
	}
	return next
}

// Root returns a copy of the root hash
func (t *Tree) Root() []byte {
	return clone(t.levels[len(t.levels)-1].Leaf(0))
}

func (t *Tree) LeafCount() uint64 {
	return t.levels[0].LeafCount()
}

// Height is the number of levels above the leaves. It is also the length of
// every inclusion proof.
func (t *Tree) Height() int {
	return len(t.levels) - 1
}

// Node returns the value of the node at the given height and index
func (t *Tree) Node(height int, i uint64) ([]byte, error) {
	if height < 0 || height >= len(t.levels) {
		return nil, fmt.Errorf("%w: height %d in tree of height %d", ErrIndexOutOfRange, height, t.Height())
	}
	level := t.levels[height]
	if i >= level.LeafCount() {
		return nil, fmt.Errorf("%w: node %d at height %d", ErrIndexOutOfRange, i, height)
	}
	return clone(level.Leaf(i)), nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
