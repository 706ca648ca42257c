// Package boltledger anchors roots to an embedded bolt database.
package boltledger

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
)

const dbFileName = "anchors.db"

var rootsBkt = []byte("roots")

var _ anchor.Ledger = (*Ledger)(nil)

// Ledger keeps one CBOR encoded anchor.AnchorRecord per root in a single
// bucket. The bucket sequence provides the block height.
type Ledger struct {
	log   logger.Logger
	db    *bolt.DB
	codec dtcbor.CBORCodec
	clock func() time.Time
}

// Open opens, creating if necessary, the ledger database in dir
func Open(log logger.Logger, dir string) (*Ledger, error) {
	codec, err := anchor.NewCBORCodec()
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, dbFileName), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootsBkt)
		return err
	})
	if err != nil {
		db.Close()
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

func (l *Ledger) SubmitRoot(ctx context.Context, root []byte) (anchor.BlockRef, error) {
	if err := ctx.Err(); err != nil {
		return anchor.BlockRef{}, err
	}

	var block anchor.BlockRef
	err := l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(rootsBkt)
		if b.Get(root) != nil {
			return anchor.ErrAlreadyAnchored
		}

		height, err := b.NextSequence()
		if err != nil {
			return err
		}
		block = anchor.BlockRef{Height: height}

		data, err := l.codec.MarshalCBOR(anchor.AnchorRecord{
			Root:      root,
			Block:     block,
			Timestamp: l.clock().UnixMilli(),
		})
		if err != nil {
			return err
		}
		return b.Put(root, data)
	})
	if err != nil {
		return anchor.BlockRef{}, err
	}
	l.log.Debugf("SubmitRoot: %x at %d", root, block.Height)
	return block, nil
}

func (l *Ledger) LookupRoot(ctx context.Context, root []byte) (anchor.AnchorRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return anchor.AnchorRecord{}, false, err
	}

	var data []byte
	err := l.db.View(func(tx *bolt.Tx) error {
		// values are only valid for the life of the transaction
		if v := tx.Bucket(rootsBkt).Get(root); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return anchor.AnchorRecord{}, false, err
	}
	if data == nil {
		return anchor.AnchorRecord{}, false, nil
	}

	var record anchor.AnchorRecord
	if err = l.codec.UnmarshalInto(data, &record); err != nil {
		return anchor.AnchorRecord{}, false, err
	}
	return record, true, nil
}
