package anchor

import (
	"context"
)

// BlockRef identifies where a ledger committed a root
type BlockRef struct {
	// Height is the ledger's sequence position for the commitment. Ledgers
	// without a natural sequence use the commit time in unix milliseconds.
	Height uint64 `cbor:"1,keyasint"`
	// ID is an optional ledger specific reference. A transaction id, or an
	// etag, for example.
	ID string `cbor:"2,keyasint,omitempty"`
}

// AnchorRecord is the ledger's association between a root and the position
// at which it was committed. It is owned by the ledger and read only here.
type AnchorRecord struct {
	Root  []byte   `cbor:"1,keyasint"`
	Block BlockRef `cbor:"2,keyasint"`
	// Timestamp is the unix time (milliseconds) at which the ledger accepted
	// the root.
	Timestamp int64 `cbor:"3,keyasint"`
}

// Ledger is the append only store roots are anchored to.
//
// Implementations are responsible for signing, retries and waiting for
// finality. Submitted roots may not be immediately visible to LookupRoot.
type Ledger interface {
	// SubmitRoot commits root as a single write. Submitting a root that is
	// already anchored fails with ErrAlreadyAnchored.
	SubmitRoot(ctx context.Context, root []byte) (BlockRef, error)

	// LookupRoot returns the record for root. A root that has never been
	// anchored (or is not yet visible) is reported with found == false and a
	// nil error.
	LookupRoot(ctx context.Context, root []byte) (record AnchorRecord, found bool, err error)
}
