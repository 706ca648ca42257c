package merkle

import "errors"

var (
	ErrEmptyBatch       = errors.New("a batch must contain at least one leaf")
	ErrInvalidLeafSize  = errors.New("leaf values must be exactly 32 bytes")
	ErrPackedLength     = errors.New("the packed leaf data is not a whole number of leaves")
	ErrIndexOutOfRange  = errors.New("leaf index out of range")
	ErrHashSizeMismatch = errors.New("the hasher does not produce 32 byte digests")
)
