// Package ledger holds the persistent anchor.Ledger implementations.
//
// Each backend lives in its own sub package so that callers only link the
// storage engine they use:
//
//	badgerledger  embedded badger key value store
//	boltledger    embedded bolt database
//	sqliteledger  sqlite table via database/sql
//	blobledger    azure blob storage, one create-only blob per root
//
// All are append only. Submitting a root that is already anchored fails with
// anchor.ErrAlreadyAnchored and leaves the original record untouched.
package ledger
