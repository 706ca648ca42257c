package merkle

import "hash"

// IncludedRoot calculates the root committing leafHash given its proof.
//
// It never fails. A proof for a different leaf, a different index or a
// different batch simply produces a root that will not match the anchored one.
// A single leaf batch has an empty path and the leaf is its own root.
func IncludedRoot(hasher hash.Hash, leafHash []byte, proof Proof) []byte {

	root := clone(leafHash)
	i := proof.Index

	for _, sibling := range proof.Path {

		// If bit k of the index is clear we are the left child at level k
		if i&1 == 0 {
			root = HashPair(hasher, root, sibling)
		} else {
			root = HashPair(hasher, sibling, root)
		}
		i >>= 1
	}
	return root
}

// VerifyInclusion returns true if leafHash and proof reproduce root.
//
// In addition to the root comparison, the proof is rejected if its index has
// bits set above the proof length, as no batch of that height could contain
// such an index.
func VerifyInclusion(hasher hash.Hash, root []byte, leafHash []byte, proof Proof) bool {
	if len(proof.Path) < 64 && proof.Index>>uint(len(proof.Path)) != 0 {
		return false
	}
	return Equal(IncludedRoot(hasher, leafHash, proof), root)
}

// VerifyBatchInclusion is VerifyInclusion for verifiers that also know the
// size of the batch, as a sealed state does. It additionally requires that
// the index lies within the batch and that the path has the exact length every
// proof for a batch of that size has.
//
// Without the leaf count the duplicated last node of an odd level is
// indistinguishable from a real leaf, so the odd last leaf also "verifies" at
// the index one past the end of the batch.
func VerifyBatchInclusion(hasher hash.Hash, root []byte, leafCount uint64, leafHash []byte, proof Proof) bool {
	if proof.Index >= leafCount {
		return false
	}
	if len(proof.Path) != ProofLen(leafCount) {
		return false
	}
	return VerifyInclusion(hasher, root, leafHash, proof)
}
