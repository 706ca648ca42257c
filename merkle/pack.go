package merkle

import (
	"fmt"
)

// PackedLeaves is the canonical input to tree construction. Leaves are
// concatenated in submission order with a stride of HashSize.
type PackedLeaves []byte

// Pack concatenates the leaves in the order given.
//
// Zero leaves is ErrEmptyBatch, any leaf that is not exactly HashSize bytes is
// ErrInvalidLeafSize. Both are detected before anything is copied.
func Pack(leaves [][]byte) (PackedLeaves, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyBatch
	}
	for i, leaf := range leaves {
		if len(leaf) != HashSize {
			return nil, fmt.Errorf("%w: leaf %d has %d bytes", ErrInvalidLeafSize, i, len(leaf))
		}
	}

	packed := make(PackedLeaves, 0, len(leaves)*HashSize)
	for _, leaf := range leaves {
		packed = append(packed, leaf...)
	}
	return packed, nil
}

// Validate checks the packed length is a non zero multiple of HashSize
func (p PackedLeaves) Validate() error {
	if len(p) == 0 {
		return ErrEmptyBatch
	}
	if len(p)%HashSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrPackedLength, len(p))
	}
	return nil
}

func (p PackedLeaves) LeafCount() uint64 {
	return uint64(len(p) / HashSize)
}

// Leaf returns the leaf at index i. The returned slice aliases the packed data.
func (p PackedLeaves) Leaf(i uint64) []byte {
	start := i * HashSize
	return p[start : start+HashSize]
}

// Leaves returns the packed leaves as a slice of leaf values. The values alias
// the packed data.
func (p PackedLeaves) Leaves() [][]byte {
	n := p.LeafCount()
	leaves := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		leaves = append(leaves, p.Leaf(i))
	}
	return leaves
}
