package merkle

import "testing"

func TestProofLen(t *testing.T) {
	tests := []struct {
		name      string
		leafCount uint64
		want      int
	}{
		{"0 -> 0", 0, 0},
		{"1 -> 0", 1, 0},
		{"2 -> 1", 2, 1},
		{"3 -> 2", 3, 2},
		{"4 -> 2", 4, 2},
		{"5 -> 3", 5, 3},
		{"8 -> 3", 8, 3},
		{"9 -> 4", 9, 4},
		{"16 -> 4", 16, 4},
		{"17 -> 5", 17, 5},
		{"1024 -> 10", 1024, 10},
		{"1025 -> 11", 1025, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProofLen(tt.leafCount); got != tt.want {
				t.Errorf("ProofLen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelWidth(t *testing.T) {
	tests := []struct {
		name      string
		leafCount uint64
		height    int
		want      uint64
	}{
		{"leaves", 5, 0, 5},
		{"5 at 1", 5, 1, 3},
		{"5 at 2", 5, 2, 2},
		{"5 at 3", 5, 3, 1},
		{"8 at 2", 8, 2, 2},
		{"1 at 0", 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelWidth(tt.leafCount, tt.height); got != tt.want {
				t.Errorf("LevelWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPow2(t *testing.T) {
	tests := []struct {
		num  uint64
		want bool
	}{
		{0, false}, {1, true}, {2, true}, {16, true}, {17, false}, {18, false},
	}
	for _, tt := range tests {
		if got := IsPow2(tt.num); got != tt.want {
			t.Errorf("IsPow2(%d) = %v, want %v", tt.num, got, tt.want)
		}
	}
}

func TestLog2Uint64(t *testing.T) {
	tests := []struct {
		num  uint64
		want uint64
	}{
		{1, 0}, {2, 1}, {3, 1}, {4, 2}, {17, 4}, {32, 5},
	}
	for _, tt := range tests {
		if got := Log2Uint64(tt.num); got != tt.want {
			t.Errorf("Log2Uint64(%d) = %v, want %v", tt.num, got, tt.want)
		}
	}
}
