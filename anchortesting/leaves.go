package anchortesting

import (
	"crypto/sha256"
	"fmt"

	"github.com/forestrie/go-merkleanchor/merkle"
)

// TestContentHash returns the sha256 leaf hash of content
func TestContentHash(content string) []byte {
	return merkle.HashContent(sha256.New(), []byte(content))
}

// TestLeaves returns n distinct leaf hashes. The same n always produces the
// same leaves, so roots are stable from run to run.
func TestLeaves(n int) [][]byte {
	return TestPrefixedLeaves("content", n)
}

// TestPrefixedLeaves is TestLeaves for callers that need several batches
// with no leaves in common.
func TestPrefixedLeaves(prefix string, n int) [][]byte {
	leaves := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		leaves = append(leaves, TestContentHash(fmt.Sprintf("%s-%d", prefix, i)))
	}
	return leaves
}
