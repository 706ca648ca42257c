package merkle

import "math/bits"

// Log2Uint64 efficiently computes log base 2 of num
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}

// IsPow2 determines if num is a perfect power of 2
func IsPow2(num uint64) bool {
	return num != 0 && bits.OnesCount64(num) == 1
}

// ProofLen returns the number of path elements in the inclusion proof for any
// leaf of a batch with leafCount leaves: ceil(log2(leafCount)). A single leaf
// batch, and the degenerate zero, have no path.
func ProofLen(leafCount uint64) int {
	if leafCount <= 1 {
		return 0
	}
	// ceil(log2(n)) == bitlen(n-1) for n > 1
	return bits.Len64(leafCount - 1)
}

// LevelWidth returns the number of nodes at height for a batch of leafCount
// leaves. Each level is half the one below, rounded up, because of the
// duplication of odd last nodes.
func LevelWidth(leafCount uint64, height int) uint64 {
	width := leafCount
	for ; height > 0; height-- {
		width = (width + 1) >> 1
	}
	return width
}
