// Package anchor commits batches of content hashes to an append only ledger
// and checks content against previously anchored batches.
//
// Only the merkle root of a batch is written to the ledger. Each member of the
// batch receives an inclusion proof which it must keep, together with its
// index, in order to later show it was anchored.
package anchor

import (
	"context"
	"crypto/sha256"
	"fmt"
	"hash"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/merkle"
	"github.com/google/uuid"
)

type ClientConfig struct {
	// Subject is the CWT subject used when sealing batches
	Subject string
}

// Client anchors batches to a Ledger. It holds no per batch state and is safe
// for concurrent use provided its Ledger is.
type Client struct {
	Cfg    ClientConfig
	Log    logger.Logger
	Ledger Ledger
	opts   ClientOptions
}

// Batch is the outcome of anchoring. Proofs, and Receipts when sealing is
// configured, are in the same order as the submitted hashes.
type Batch struct {
	ID        uuid.UUID
	Root      []byte
	Block     BlockRef
	LeafCount uint64
	Proofs    []merkle.Proof

	Seal     []byte
	Receipts [][]byte
}

func NewClient(cfg ClientConfig, log logger.Logger, ledger Ledger, opts ...Option) *Client {
	c := &Client{
		Cfg:    cfg,
		Log:    log,
		Ledger: ledger,
		opts: ClientOptions{
			NewHasher: sha256.New,
			Clock:     time.Now,
		},
	}
	for _, o := range opts {
		o(&c.opts)
	}
	return c
}

// AnchorBatch builds the tree for hashes, submits its root to the ledger and
// returns an inclusion proof for every hash.
//
// Malformed input (ErrEmptyBatch, ErrInvalidLeafSize from the merkle package)
// is rejected before the ledger is contacted. Ledger errors are returned
// exactly as the ledger produced them.
//
// If sealing is configured and fails, the batch is still returned, because
// the root is already anchored, along with an error wrapping ErrSealFailed.
func (c *Client) AnchorBatch(ctx context.Context, hashes [][]byte) (*Batch, error) {
	if c.Ledger == nil {
		return nil, ErrLedgerNotProvided
	}

	packed, err := merkle.Pack(hashes)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.BuildTree(c.opts.NewHasher(), packed)
	if err != nil {
		return nil, err
	}

	batch := &Batch{
		ID:        uuid.New(),
		Root:      tree.Root(),
		LeafCount: tree.LeafCount(),
	}

	batch.Block, err = c.Ledger.SubmitRoot(ctx, batch.Root)
	if err != nil {
		c.Log.Infof("AnchorBatch: %s: submit root %x failed: %v", batch.ID, batch.Root, err)
		return nil, err
	}
	c.Log.Infof("AnchorBatch: %s: root %x, leaves %d, height %d",
		batch.ID, batch.Root, batch.LeafCount, batch.Block.Height)

	batch.Proofs = make([]merkle.Proof, 0, batch.LeafCount)
	for i := uint64(0); i < batch.LeafCount; i++ {
		proof, err := tree.InclusionProof(i)
		if err != nil {
			return nil, err
		}
		batch.Proofs = append(batch.Proofs, proof)
	}
	c.Log.Debugf("AnchorBatch: %s: %d proofs of length %d", batch.ID, len(batch.Proofs), tree.Height())

	if c.opts.Sealer == nil {
		return batch, nil
	}
	if err = c.seal(batch); err != nil {
		c.Log.Infof("AnchorBatch: %s: %v", batch.ID, err)
		return batch, fmt.Errorf("%w: %v", ErrSealFailed, err)
	}
	return batch, nil
}

func (c *Client) seal(batch *Batch) error {

	state := AnchorState{
		Root:       batch.Root,
		LeafCount:  batch.LeafCount,
		Block:      batch.Block,
		Timestamp:  c.opts.Clock().UnixMilli(),
		BatchID:    batch.ID[:],
		TreePolicy: uint8(merkle.Policy),
	}

	seal, err := c.opts.Sealer.Seal(c.Cfg.Subject, state)
	if err != nil {
		return err
	}

	receipts := make([][]byte, 0, len(batch.Proofs))
	for _, proof := range batch.Proofs {
		receipt, err := NewReceipt(c.opts.Sealer.codec, seal, proof)
		if err != nil {
			return err
		}
		receipts = append(receipts, receipt)
	}
	batch.Seal = seal
	batch.Receipts = receipts
	return nil
}

// CheckBatched recomputes the root committing leafHash and asks the ledger
// whether it was anchored. A root the ledger has no record of is reported as
// found == false with a nil error.
func (c *Client) CheckBatched(ctx context.Context, leafHash []byte, proof merkle.Proof) (AnchorRecord, bool, error) {
	if c.Ledger == nil {
		return AnchorRecord{}, false, ErrLedgerNotProvided
	}

	root := merkle.IncludedRoot(c.opts.NewHasher(), leafHash, proof)

	record, found, err := c.Ledger.LookupRoot(ctx, root)
	if err != nil {
		return AnchorRecord{}, false, err
	}
	if !found {
		c.Log.Debugf("CheckBatched: root %x not anchored", root)
		return AnchorRecord{}, false, nil
	}
	if !merkle.Equal(record.Root, root) {
		return AnchorRecord{}, false, fmt.Errorf("%w: want %x, got %x", ErrLedgerRecordInvalid, root, record.Root)
	}
	return record, true, nil
}

// NewHasher returns a fresh instance of the client's hash primitive
func (c *Client) NewHasher() hash.Hash {
	return c.opts.NewHasher()
}

