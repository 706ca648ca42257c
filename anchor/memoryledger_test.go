package anchor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/forestrie/go-merkleanchor/anchortesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerContract(t *testing.T) {
	anchortesting.LedgerContractTest(t, anchor.NewMemoryLedger())
}

func TestMemoryLedgerClock(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	l := anchor.NewMemoryLedger(anchor.WithClock(func() time.Time { return at }))

	root := anchortesting.TestContentHash("a")
	_, err := l.SubmitRoot(context.Background(), root)
	require.NoError(t, err)

	record, found, err := l.LookupRoot(context.Background(), root)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, at.UnixMilli(), record.Timestamp)
}

func TestMemoryLedgerCopiesRoot(t *testing.T) {
	l := anchor.NewMemoryLedger()
	root := anchortesting.TestContentHash("a")
	_, err := l.SubmitRoot(context.Background(), root)
	require.NoError(t, err)

	want := append([]byte(nil), root...)
	root[0] ^= 0xff

	record, found, err := l.LookupRoot(context.Background(), want)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, record.Root)
}

func TestMemoryLedgerConcurrentSubmit(t *testing.T) {
	l := anchor.NewMemoryLedger()
	leaves := anchortesting.TestLeaves(64)

	var wg sync.WaitGroup
	for _, leaf := range leaves {
		wg.Add(1)
		go func(root []byte) {
			defer wg.Done()
			_, err := l.SubmitRoot(context.Background(), root)
			assert.NoError(t, err)
		}(leaf)
	}
	wg.Wait()

	assert.Equal(t, uint64(len(leaves)), l.Height())
	heights := map[uint64]bool{}
	for _, leaf := range leaves {
		record, found, err := l.LookupRoot(context.Background(), leaf)
		require.NoError(t, err)
		require.True(t, found)
		heights[record.Block.Height] = true
	}
	assert.Len(t, heights, len(leaves))
}
