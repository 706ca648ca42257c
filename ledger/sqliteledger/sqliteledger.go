// Package sqliteledger anchors roots to a sqlite table.
package sqliteledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/mattn/go-sqlite3"
)

const ddl = `CREATE TABLE IF NOT EXISTS anchors(
	block INTEGER PRIMARY KEY AUTOINCREMENT,
	root BLOB NOT NULL UNIQUE,
	ts INTEGER NOT NULL
);`

var _ anchor.Ledger = (*Ledger)(nil)

// Ledger stores one row per root. The autoincrement primary key is the
// block height.
type Ledger struct {
	log   logger.Logger
	db    *sql.DB
	clock func() time.Time
}

// Open opens, creating if necessary, the sqlite database at path. Use
// ":memory:" for a private in memory database.
func Open(log logger.Logger, path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer, and each :memory: connection is a
	// different database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, err
	}
	return &Ledger{
		log:   log,
		db:    db,
		clock: time.Now,
	}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (l *Ledger) SubmitRoot(ctx context.Context, root []byte) (anchor.BlockRef, error) {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO anchors (root, ts) VALUES (?, ?)`, root, l.clock().UnixMilli())
	if isUniqueViolation(err) {
		return anchor.BlockRef{}, anchor.ErrAlreadyAnchored
	}
	if err != nil {
		return anchor.BlockRef{}, err
	}
	height, err := res.LastInsertId()
	if err != nil {
		return anchor.BlockRef{}, err
	}
	l.log.Debugf("SubmitRoot: %x at %d", root, height)
	return anchor.BlockRef{Height: uint64(height)}, nil
}

func (l *Ledger) LookupRoot(ctx context.Context, root []byte) (anchor.AnchorRecord, bool, error) {
	var height int64
	record := anchor.AnchorRecord{}

	err := l.db.QueryRowContext(ctx,
		`SELECT block, root, ts FROM anchors WHERE root = ?`, root,
	).Scan(&height, &record.Root, &record.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return anchor.AnchorRecord{}, false, nil
	}
	if err != nil {
		return anchor.AnchorRecord{}, false, err
	}
	record.Block = anchor.BlockRef{Height: uint64(height)}
	return record, true, nil
}
