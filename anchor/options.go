package anchor

import (
	"hash"
	"time"
)

type ClientOptions struct {
	NewHasher func() hash.Hash
	Sealer    *Sealer
	Clock     func() time.Time
}

type MemoryLedgerOptions struct {
	VisibilityDelay int
	Clock           func() time.Time
}

// Option is a generic option type shared by the client and the in memory
// ledger. Implementations type assert to their options target record and if
// that fails they ignore the option.
type Option func(any)

// WithHasher sets the factory for the hash primitive. The same primitive must
// be used when anchoring and when checking. The default is sha256.
func WithHasher(newHasher func() hash.Hash) Option {
	return func(opts any) {
		if o, ok := opts.(*ClientOptions); ok {
			o.NewHasher = newHasher
		}
	}
}

// WithSealer causes the client to produce a signed seal, and a receipt for
// each leaf, for every anchored batch.
func WithSealer(sealer Sealer) Option {
	return func(opts any) {
		if o, ok := opts.(*ClientOptions); ok {
			o.Sealer = &sealer
		}
	}
}

// WithVisibilityDelay makes a root submitted to the memory ledger invisible
// to lookups until delay further roots have been submitted.
func WithVisibilityDelay(delay int) Option {
	return func(opts any) {
		if o, ok := opts.(*MemoryLedgerOptions); ok {
			o.VisibilityDelay = delay
		}
	}
}

// WithClock overrides time.Now
func WithClock(clock func() time.Time) Option {
	return func(opts any) {
		switch o := opts.(type) {
		case *ClientOptions:
			o.Clock = clock
		case *MemoryLedgerOptions:
			o.Clock = clock
		}
	}
}
