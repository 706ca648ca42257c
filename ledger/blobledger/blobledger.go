// Package blobledger anchors roots to azure blob storage.
//
// Each anchored root is a blob named for the root, created with an
// If-None-Match "*" precondition so that a root can only ever be written once.
// The blob content is the CBOR encoded anchor.AnchorRecord.
package blobledger

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
)

const (
	V1AnchorPrefix = "v1/anchors"
	anchorBlobExt  = ".cbor"

	// TagAnchoredAt is the blob index tag carrying the anchor time in unix
	// milliseconds.
	TagAnchoredAt = "anchoredat"
)

// blobStore is the subset of the azblob.Storer methods the ledger needs
type blobStore interface {
	Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
	Reader(ctx context.Context, identity string, opts ...azblob.Option) (*azblob.ReaderResponse, error)
}

type Config struct {
	// Prefix is prepended to every blob path. Defaults to V1AnchorPrefix.
	Prefix string
}

var _ anchor.Ledger = (*Ledger)(nil)

// Ledger has no natural sequence, so the block height is the anchor time in
// unix milliseconds.
type Ledger struct {
	Cfg   Config
	Log   logger.Logger
	Store blobStore
	codec dtcbor.CBORCodec
	clock func() time.Time
}

func New(cfg Config, log logger.Logger, store blobStore) (*Ledger, error) {
	codec, err := anchor.NewCBORCodec()
	if err != nil {
		return nil, err
	}
	if cfg.Prefix == "" {
		cfg.Prefix = V1AnchorPrefix
	}
	return &Ledger{
		Cfg:   cfg,
		Log:   log,
		Store: store,
		codec: codec,
		clock: time.Now,
	}, nil
}

// RootBlobPath returns the blob path for root
func (l *Ledger) RootBlobPath(root []byte) string {
	return fmt.Sprintf("%s/%s%s", l.Cfg.Prefix, hex.EncodeToString(root), anchorBlobExt)
}

func (l *Ledger) SubmitRoot(ctx context.Context, root []byte) (anchor.BlockRef, error) {

	now := l.clock().UnixMilli()
	block := anchor.BlockRef{Height: uint64(now)}

	data, err := l.codec.MarshalCBOR(anchor.AnchorRecord{
		Root:      root,
		Block:     block,
		Timestamp: now,
	})
	if err != nil {
		return anchor.BlockRef{}, err
	}

	blobPath := l.RootBlobPath(root)

	// The way to spell 'fail without modifying if the blob exists' is to
	// require that no blob matches *any* etag.
	_, err = l.Store.Put(ctx, blobPath, azblob.NewBytesReaderCloser(data),
		azblob.WithTags(map[string]string{TagAnchoredAt: strconv.FormatInt(now, 10)}),
		azblob.WithEtagNoneMatch("*"),
	)
	if err != nil {
		l.Log.Infof("SubmitRoot: %s: %v", blobPath, err)
		return anchor.BlockRef{}, wrapConflict(err, anchor.ErrAlreadyAnchored)
	}
	return block, nil
}

func (l *Ledger) LookupRoot(ctx context.Context, root []byte) (anchor.AnchorRecord, bool, error) {

	blobPath := l.RootBlobPath(root)

	rr, err := l.Store.Reader(ctx, blobPath)
	if IsBlobNotFound(err) {
		return anchor.AnchorRecord{}, false, nil
	}
	if err != nil {
		return anchor.AnchorRecord{}, false, err
	}
	defer rr.Reader.Close()

	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return anchor.AnchorRecord{}, false, err
	}

	var record anchor.AnchorRecord
	if err = l.codec.UnmarshalInto(data, &record); err != nil {
		return anchor.AnchorRecord{}, false, fmt.Errorf("%s: %w", blobPath, err)
	}
	return record, true, nil
}
