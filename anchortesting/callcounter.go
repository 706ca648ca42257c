package anchortesting

import (
	"context"
	"sync"

	"github.com/forestrie/go-merkleanchor/anchor"
)

type TestCallCounter struct {
	mu          sync.Mutex
	MethodCalls map[string]int
}

func (r *TestCallCounter) IncMethodCall(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.MethodCalls == nil {
		r.MethodCalls = make(map[string]int)
	}

	r.MethodCalls[name]++
	return r.MethodCalls[name]
}

func (r *TestCallCounter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.MethodCalls = make(map[string]int)
}

func (r *TestCallCounter) MethodCallCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.MethodCalls[name]
}

// CountingLedger wraps a ledger, counting calls by method name. When
// SubmitErr or LookupErr are set they are returned instead of calling the
// wrapped ledger.
type CountingLedger struct {
	TestCallCounter
	Ledger    anchor.Ledger
	SubmitErr error
	LookupErr error
}

func NewCountingLedger(ledger anchor.Ledger) *CountingLedger {
	return &CountingLedger{Ledger: ledger}
}

func (l *CountingLedger) SubmitRoot(ctx context.Context, root []byte) (anchor.BlockRef, error) {
	l.IncMethodCall("SubmitRoot")
	if l.SubmitErr != nil {
		return anchor.BlockRef{}, l.SubmitErr
	}
	return l.Ledger.SubmitRoot(ctx, root)
}

func (l *CountingLedger) LookupRoot(ctx context.Context, root []byte) (anchor.AnchorRecord, bool, error) {
	l.IncMethodCall("LookupRoot")
	if l.LookupErr != nil {
		return anchor.AnchorRecord{}, false, l.LookupErr
	}
	return l.Ledger.LookupRoot(ctx, root)
}
