package irrecoverable

import (
	"context"
	"log"
	"os"
	"runtime"
)

// Signaler forwards the first irrecoverable error of a component tree to its owner.
type Signaler struct {
	errChan chan error
}

func NewSignaler() (*Signaler, <-chan error) {
	errChan := make(chan error, 1)
	return &Signaler{
		errChan: errChan,
	}, errChan
}

// Throw hands err to the owner and terminates the calling goroutine. Only the first
// error reaches the owner; later ones are written to stderr.
func (s *Signaler) Throw(err error) {
	defer runtime.Goexit()
	select {
	case s.errChan <- err:
		close(s.errChan)
	default:
		log.New(os.Stderr, "", log.LstdFlags).Printf("unhandled irrecoverable error: %v", err)
	}
}

// SignalerContext is a context whose holder may throw irrecoverable errors. It can only
// be obtained from WithSignaler.
type SignalerContext interface {
	context.Context
	Throw(err error)
	sealed()
}

type signalerCtx struct {
	context.Context
	*Signaler
}

func (sc signalerCtx) sealed() {}

// WithSignaler derives a SignalerContext from parent. The returned channel receives
// at most one error.
func WithSignaler(parent context.Context) (SignalerContext, <-chan error) {
	sig, errChan := NewSignaler()
	return &signalerCtx{parent, sig}, errChan
}
