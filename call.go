package princeofversions

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/update"
)

var ErrCallAlreadyExecuted = errors.New("call already executed")

// Callback receives the outcome of an enqueued call.
type Callback func(result *update.Result, err error)

// Cancelable stops a pending asynchronous call.
type Cancelable interface {
	Cancel()
}

// Call is a single update check. It can be run once, either synchronously
// with Execute or in the background with Enqueue.
type Call struct {
	pov      *PrinceOfVersions
	loader   loader.Loader
	executed atomic.Bool
}

// Execute runs the check on the calling goroutine.
func (c *Call) Execute(ctx context.Context) (*update.Result, error) {
	if !c.executed.CompareAndSwap(false, true) {
		return nil, ErrCallAlreadyExecuted
	}
	return c.pov.CheckForUpdates(ctx, c.loader)
}

// Enqueue runs the check on a new goroutine and hands the outcome to cb,
// exactly once, unless Cancel is called first. A cancelled call never
// invokes cb. When ctx ends without Cancel, cb receives the context error.
func (c *Call) Enqueue(ctx context.Context, cb Callback) *PendingCall {
	ctx, cancel := context.WithCancel(ctx)
	pc := &PendingCall{cancel: cancel, done: make(chan struct{})}

	if !c.executed.CompareAndSwap(false, true) {
		go pc.deliver(ctx, cb, nil, ErrCallAlreadyExecuted)
		return pc
	}

	go func() {
		result, err := c.pov.CheckForUpdates(ctx, c.loader)
		pc.deliver(ctx, cb, result, err)
	}()
	return pc
}

// PendingCall is the handle returned by Enqueue.
type PendingCall struct {
	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
}

const (
	statePending int32 = iota
	stateCancelled
	stateDelivered
)

var _ Cancelable = (*PendingCall)(nil)

// Cancel aborts the in-flight check. If the callback has not started it
// will not run. Calling Cancel from inside the callback is allowed.
func (pc *PendingCall) Cancel() {
	pc.state.CompareAndSwap(statePending, stateCancelled)
	pc.cancel()
}

// Done is closed once the call has finished, whether or not the callback ran.
func (pc *PendingCall) Done() <-chan struct{} {
	return pc.done
}

// deliver skips cb only after Cancel; an expired parent context still
// reaches cb as an error.
func (pc *PendingCall) deliver(ctx context.Context, cb Callback, result *update.Result, err error) {
	defer close(pc.done)
	defer pc.cancel()

	if !pc.state.CompareAndSwap(statePending, stateDelivered) {
		return
	}
	if err == nil && result == nil {
		err = ctx.Err()
	}
	cb(result, err)
}
