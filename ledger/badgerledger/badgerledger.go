// Package badgerledger anchors roots to an embedded badger database.
package badgerledger

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dgraph-io/badger"
	"github.com/forestrie/go-merkleanchor/anchor"
)

var (
	rootPrefix = []byte("r/")
	heightKey  = []byte("m/height")
)

var _ anchor.Ledger = (*Ledger)(nil)

// Ledger stores a CBOR encoded anchor.AnchorRecord per root, keyed by the
// root, and a height counter which is advanced in the same transaction.
type Ledger struct {
	// serialises submissions so the height counter never conflicts
	mu    sync.Mutex
	log   logger.Logger
	db    *badger.DB
	codec dtcbor.CBORCodec
	clock func() time.Time
}

func Open(log logger.Logger, dir string) (*Ledger, error) {
	codec, err := anchor.NewCBORCodec()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		log:   log,
		db:    db,
		codec: codec,
		clock: time.Now,
	}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func rootKey(root []byte) []byte {
	return append(append([]byte(nil), rootPrefix...), root...)
}

func (l *Ledger) SubmitRoot(ctx context.Context, root []byte) (anchor.BlockRef, error) {
	if err := ctx.Err(); err != nil {
		return anchor.BlockRef{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var block anchor.BlockRef
	err := l.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(rootKey(root))
		if err == nil {
			return anchor.ErrAlreadyAnchored
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		height, err := readHeight(txn)
		if err != nil {
			return err
		}
		height++

		block = anchor.BlockRef{Height: height}
		data, err := l.codec.MarshalCBOR(anchor.AnchorRecord{
			Root:      root,
			Block:     block,
			Timestamp: l.clock().UnixMilli(),
		})
		if err != nil {
			return err
		}
		if err = txn.Set(rootKey(root), data); err != nil {
			return err
		}
		return txn.Set(heightKey, binary.BigEndian.AppendUint64(nil, height))
	})
	if err != nil {
		return anchor.BlockRef{}, err
	}
	l.log.Debugf("SubmitRoot: %x at %d", root, block.Height)
	return block, nil
}

func readHeight(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(heightKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func (l *Ledger) LookupRoot(ctx context.Context, root []byte) (anchor.AnchorRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return anchor.AnchorRecord{}, false, err
	}

	var data []byte
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rootKey(root))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return anchor.AnchorRecord{}, false, nil
	}
	if err != nil {
		return anchor.AnchorRecord{}, false, err
	}

	var record anchor.AnchorRecord
	if err = l.codec.UnmarshalInto(data, &record); err != nil {
		return anchor.AnchorRecord{}, false, err
	}
	return record, true, nil
}
