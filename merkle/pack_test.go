package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name    string
		leaves  [][]byte
		wantLen int
		wantErr error
	}{
		{"empty batch", nil, 0, ErrEmptyBatch},
		{"empty non nil batch", [][]byte{}, 0, ErrEmptyBatch},
		{"short leaf", [][]byte{make([]byte, 31)}, 0, ErrInvalidLeafSize},
		{"long leaf", [][]byte{make([]byte, 33)}, 0, ErrInvalidLeafSize},
		{"bad leaf after good", [][]byte{hashNum(0), []byte("abc")}, 0, ErrInvalidLeafSize},
		{"single leaf", numberedLeaves(1), HashSize, nil},
		{"three leaves", numberedLeaves(3), 3 * HashSize, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := Pack(tt.leaves)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, packed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, packed, tt.wantLen)
			require.NoError(t, packed.Validate())
			assert.Equal(t, uint64(len(tt.leaves)), packed.LeafCount())
			for i, leaf := range tt.leaves {
				assert.Equal(t, leaf, packed.Leaf(uint64(i)))
			}
			assert.Equal(t, tt.leaves, packed.Leaves())
		})
	}
}

func TestPackedLeavesValidate(t *testing.T) {
	assert.ErrorIs(t, PackedLeaves(nil).Validate(), ErrEmptyBatch)
	assert.ErrorIs(t, PackedLeaves(make([]byte, 33)).Validate(), ErrPackedLength)
	assert.NoError(t, PackedLeaves(make([]byte, 64)).Validate())
}

func TestPackPreservesOrder(t *testing.T) {
	leaves := [][]byte{hashString("c"), hashString("a"), hashString("b")}
	packed := mustPack(t, leaves)

	assert.Equal(t, hashString("c"), packed.Leaf(0))
	assert.Equal(t, hashString("a"), packed.Leaf(1))
	assert.Equal(t, hashString("b"), packed.Leaf(2))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(hashNum(1), hashNum(1)))
	assert.False(t, Equal(hashNum(1), hashNum(2)))
	assert.False(t, Equal([]byte{1}, []byte{1}))
	assert.False(t, Equal(nil, nil))
}
