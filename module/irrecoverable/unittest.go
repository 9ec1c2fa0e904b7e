package irrecoverable

import (
	"context"
	"runtime"
	"testing"
)

// MockSignalerContext fails the test on the first thrown error. Workers throw from
// their own goroutines, so the failure is reported with Errorf and the throwing
// goroutine exits the same way it does under WithSignaler.
type MockSignalerContext struct {
	context.Context
	t testing.TB
}

var _ SignalerContext = (*MockSignalerContext)(nil)

func (m *MockSignalerContext) sealed() {}

func (m *MockSignalerContext) Throw(err error) {
	m.t.Errorf("unexpected irrecoverable error: %v", err)
	runtime.Goexit()
}

func NewMockSignalerContext(t testing.TB, ctx context.Context) *MockSignalerContext {
	return &MockSignalerContext{
		Context: ctx,
		t:       t,
	}
}

// NewMockSignalerContextWithCancel derives a cancellable mock signaler context. Tests
// cancel it to shut their components down.
func NewMockSignalerContextWithCancel(t testing.TB, parent context.Context) (*MockSignalerContext, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return NewMockSignalerContext(t, ctx), cancel
}
