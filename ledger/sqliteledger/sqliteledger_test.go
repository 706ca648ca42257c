package sqliteledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/forestrie/go-merkleanchor/anchortesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

func testOpen(t *testing.T, path string) *Ledger {
	tc := anchortesting.NewTestContext(t, anchortesting.TestConfig{TestLabelPrefix: "sqliteledger"})
	l, err := Open(tc.GetLog(), path)
	require.NoError(t, err)
	return l
}

func TestLedgerContract(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "in memory",
			path: func(t *testing.T) string { return ":memory:" },
		},
		{
			name: "on disk",
			path: func(t *testing.T) string {
				dir := fs.NewDir(t, "sqliteledger")
				t.Cleanup(dir.Remove)
				return filepath.Join(dir.Path(), "anchors.sqlite")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testOpen(t, tt.path(t))
			defer l.Close()
			anchortesting.LedgerContractTest(t, l)
		})
	}
}

func TestLedgerReopen(t *testing.T) {
	dir := fs.NewDir(t, "sqliteledger")
	defer dir.Remove()
	path := filepath.Join(dir.Path(), "anchors.sqlite")
	ctx := context.Background()
	leaves := anchortesting.TestLeaves(2)

	l := testOpen(t, path)
	first, err := l.SubmitRoot(ctx, leaves[0])
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l = testOpen(t, path)
	defer l.Close()

	_, err = l.SubmitRoot(ctx, leaves[0])
	assert.ErrorIs(t, err, anchor.ErrAlreadyAnchored)

	second, err := l.SubmitRoot(ctx, leaves[1])
	require.NoError(t, err)
	assert.Greater(t, second.Height, first.Height)
}
