package merkle

/*

# Batch merkle trees for anchoring

A batch of content hashes is committed to an append-only ledger by publishing a
single value: the root of a binary merkle tree built over the batch. Each
member of the batch gets back an inclusion proof which, together with its own
hash, reproduces that root. The cost of anchoring is one ledger write no matter
how large the batch is.

Unlike an append only log tree, which grows one leaf at a time, a batch tree
is built once, from a complete and fixed set of leaves, and is then thrown
away. Only the proofs survive. For that reason the tree is built level by
level from a packed leaf buffer rather than incrementally.

## Leaves

Leaves are always 32 byte hashes, never raw content. They are packed, in the
caller's order, into a single buffer with a 32 byte stride (see PackedLeaves).
The index of a leaf in that buffer is its identity for the purposes of proof
generation. The index can not be recovered from the leaf value, it must be
retained with the proof.

## Interior nodes

	parent = H(left || right)

There is no domain separation prefix and no position commitment. A verifier
that knows only the sha256 primitive can check a proof.

## Odd levels

When a level has an odd number of nodes, the last node is paired with a copy of
itself. For 5 leaves:

	3              r
	            /     \
	2        k           m
	       /   \       /   \
	1     f     g     h     h'
	     / \   / \   / \
	0   a   b c   d e   e'

e' and h' are the duplicated nodes. This rule is a protocol constant (see
OddNodeDuplicate). Changing it changes every root and every proof for batches
whose size is not a power of two, so two implementations anchoring to the same
ledger must agree on it.

A consequence of the rule is that every leaf has a proof of exactly
ceil(log2(n)) elements. The direction taken at level k is bit k of the leaf
index, so the proof carries no direction flags.

A second consequence is that a batch and the same batch with its odd last leaf
repeated have the same root:

	root([a, b, c]) == root([a, b, c, c])

Anchoring the second after the first is therefore rejected by the ledger as an
already anchored root. It also means the proof for c at index 2 of [a, b, c]
is matched by a proof claiming c sits at index 3. A root alone can not rule
that out, so verifiers that know the batch size should use
VerifyBatchInclusion, which bounds the index by the leaf count.

## Single leaf batches

A batch of one has no pairing to do. Its root is the leaf itself and its proof
is empty. Verifiers must accept the empty proof.

*/
