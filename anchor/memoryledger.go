package anchor

import (
	"context"
	"encoding/hex"
	"sync"
	"time"
)

var _ Ledger = (*MemoryLedger)(nil)

// MemoryLedger is an in process Ledger. It is safe for concurrent use.
//
// Roots are numbered from 1 in submission order. The optional visibility
// delay models ledgers whose reads lag their writes.
type MemoryLedger struct {
	sync.RWMutex
	records map[string]AnchorRecord
	height  uint64
	opts    MemoryLedgerOptions
}

func NewMemoryLedger(opts ...Option) *MemoryLedger {
	l := &MemoryLedger{
		records: make(map[string]AnchorRecord),
		opts:    MemoryLedgerOptions{Clock: time.Now},
	}
	for _, o := range opts {
		o(&l.opts)
	}
	return l
}

func (l *MemoryLedger) SubmitRoot(ctx context.Context, root []byte) (BlockRef, error) {
	if err := ctx.Err(); err != nil {
		return BlockRef{}, err
	}

	l.Lock()
	defer l.Unlock()

	k := hex.EncodeToString(root)
	if _, ok := l.records[k]; ok {
		return BlockRef{}, ErrAlreadyAnchored
	}

	l.height++
	block := BlockRef{Height: l.height}
	l.records[k] = AnchorRecord{
		Root:      append([]byte(nil), root...),
		Block:     block,
		Timestamp: l.opts.Clock().UnixMilli(),
	}
	return block, nil
}

func (l *MemoryLedger) LookupRoot(ctx context.Context, root []byte) (AnchorRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return AnchorRecord{}, false, err
	}

	l.RLock()
	defer l.RUnlock()

	record, ok := l.records[hex.EncodeToString(root)]
	if !ok {
		return AnchorRecord{}, false, nil
	}
	if record.Block.Height+uint64(l.opts.VisibilityDelay) > l.height {
		return AnchorRecord{}, false, nil
	}
	return record, true, nil
}

// Height returns the number of roots anchored so far
func (l *MemoryLedger) Height() uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.height
}
