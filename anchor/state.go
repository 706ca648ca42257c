package anchor

// AnchorState defines the details we include in our signed commitment to an
// anchored batch.
type AnchorState struct {
	// Root is detached from the signed payload before publishing. Verifiers
	// must recompute it from a leaf and its inclusion proof.
	Root      []byte `cbor:"1,keyasint"`
	LeafCount uint64 `cbor:"2,keyasint"`
	// Block is where the ledger committed Root
	Block BlockRef `cbor:"3,keyasint"`
	// Timestamp is the unix time (milliseconds) read at the time the state was
	// signed. Including it allows for the same root to be re-signed.
	Timestamp int64  `cbor:"4,keyasint"`
	BatchID   []byte `cbor:"5,keyasint"`
	// TreePolicy is the merkle.OddNodePolicy the root was built with
	TreePolicy uint8 `cbor:"6,keyasint"`
}
