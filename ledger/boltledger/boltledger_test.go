package boltledger

import (
	"context"
	"testing"
	"time"

	"github.com/forestrie/go-merkleanchor/anchortesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

func testOpen(t *testing.T, dir string) *Ledger {
	tc := anchortesting.NewTestContext(t, anchortesting.TestConfig{TestLabelPrefix: "boltledger"})
	l, err := Open(tc.GetLog(), dir)
	require.NoError(t, err)
	return l
}

func TestLedgerContract(t *testing.T) {
	dir := fs.NewDir(t, "boltledger")
	defer dir.Remove()

	l := testOpen(t, dir.Path())
	defer l.Close()

	anchortesting.LedgerContractTest(t, l)
}

func TestLedgerHeightsAndTimestamps(t *testing.T) {
	dir := fs.NewDir(t, "boltledger")
	defer dir.Remove()
	ctx := context.Background()

	l := testOpen(t, dir.Path())
	at := time.UnixMilli(1700000000000)
	l.clock = func() time.Time { return at }

	leaves := anchortesting.TestLeaves(4)
	for i, leaf := range leaves {
		block, err := l.SubmitRoot(ctx, leaf)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), block.Height)
	}
	require.NoError(t, l.Close())

	l = testOpen(t, dir.Path())
	defer l.Close()
	for i, leaf := range leaves {
		record, found, err := l.LookupRoot(ctx, leaf)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, uint64(i+1), record.Block.Height)
		assert.Equal(t, at.UnixMilli(), record.Timestamp)
	}
}
