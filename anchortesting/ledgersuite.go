package anchortesting

import (
	"context"
	"testing"

	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/forestrie/go-merkleanchor/merkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LedgerContractTest checks the behaviour every anchor.Ledger implementation
// must share. Backends call it from their own tests with a fresh ledger.
func LedgerContractTest(t *testing.T, ledger anchor.Ledger) {
	ctx := context.Background()
	leaves := TestLeaves(3)

	_, found, err := ledger.LookupRoot(ctx, leaves[0])
	require.NoError(t, err)
	assert.False(t, found)

	first, err := ledger.SubmitRoot(ctx, leaves[0])
	require.NoError(t, err)
	second, err := ledger.SubmitRoot(ctx, leaves[1])
	require.NoError(t, err)
	assert.Greater(t, second.Height, first.Height)

	record, found, err := ledger.LookupRoot(ctx, leaves[0])
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, merkle.Equal(leaves[0], record.Root))
	assert.Equal(t, first, record.Block)
	assert.NotZero(t, record.Timestamp)

	_, err = ledger.SubmitRoot(ctx, leaves[0])
	assert.ErrorIs(t, err, anchor.ErrAlreadyAnchored)

	// the rejected duplicate must not disturb the original record
	again, found, err := ledger.LookupRoot(ctx, leaves[0])
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record, again)

	_, found, err = ledger.LookupRoot(ctx, leaves[2])
	require.NoError(t, err)
	assert.False(t, found)
}
