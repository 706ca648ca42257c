package main

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/forestrie/go-merkleanchor/ledger/badgerledger"
	"github.com/forestrie/go-merkleanchor/ledger/boltledger"
	"github.com/forestrie/go-merkleanchor/ledger/sqliteledger"
	"github.com/spf13/pflag"
)

const (
	ledgerBadger = "badger"
	ledgerBolt   = "bolt"
	ledgerSQLite = "sqlite"
)

type config struct {
	ledgerKind string
	ledgerDir  string
	subject    string
	logLevel   string
}

func (c *config) bind(flags *pflag.FlagSet) {
	flags.StringVar(&c.ledgerKind, "ledger", ledgerBadger, "ledger backend: badger|bolt|sqlite")
	flags.StringVarP(&c.ledgerDir, "ledger-dir", "d", ".merkleanchor", "directory holding the ledger database")
	flags.StringVar(&c.subject, "subject", "merkleanchor", "subject recorded against anchored batches")
	flags.StringVar(&c.logLevel, "log-level", "INFO", "log level")
}

type closingLedger interface {
	anchor.Ledger
	Close() error
}

func openLedger(log logger.Logger, cfg config) (closingLedger, error) {
	switch cfg.ledgerKind {
	case ledgerBadger:
		return badgerledger.Open(log, cfg.ledgerDir)
	case ledgerBolt:
		return boltledger.Open(log, cfg.ledgerDir)
	case ledgerSQLite:
		return sqliteledger.Open(log, cfg.ledgerDir+".sqlite")
	}
	return nil, fmt.Errorf("ledger %q not supported", cfg.ledgerKind)
}
