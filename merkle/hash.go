package merkle

import (
	"bytes"
	"hash"
)

// HashSize is the width of every leaf, interior node, root and proof element
const HashSize = 32

// HashContent returns H(content). Use this to turn arbitrary content into a
// leaf. The hasher is reset before use.
func HashContent(hasher hash.Hash, content []byte) []byte {
	hasher.Reset()
	hasher.Write(content)
	return hasher.Sum(nil)
}

// HashPair returns H(left || right)
// ** the hasher is reset **
func HashPair(hasher hash.Hash, left []byte, right []byte) []byte {
	hasher.Reset()
	hasher.Write(left)
	hasher.Write(right)
	return hasher.Sum(nil)
}

// Equal returns true if a and b are both HashSize wide and have the same bytes
func Equal(a, b []byte) bool {
	if len(a) != HashSize || len(b) != HashSize {
		return false
	}
	return bytes.Equal(a, b)
}

func checkHasher(hasher hash.Hash) error {
	if hasher.Size() != HashSize {
		return ErrHashSizeMismatch
	}
	return nil
}
