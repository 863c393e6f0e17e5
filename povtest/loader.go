package povtest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/robbyt/go-princeofversions/loader"
)

// LoadResult is the outcome a FakeLoader reports: either a payload or an
// error, never both.
type LoadResult struct {
	payload string
	err     error
}

// NewPayloadResult returns a successful result carrying payload.
func NewPayloadResult(payload string) LoadResult {
	return LoadResult{payload: payload}
}

// NewErrorResult returns a failed result carrying err. It panics if err is nil.
func NewErrorResult(err error) LoadResult {
	if err == nil {
		panic("povtest: NewErrorResult called with a nil error")
	}
	return LoadResult{err: err}
}

func (r LoadResult) Payload() string { return r.payload }
func (r LoadResult) Err() error      { return r.err }
func (r LoadResult) IsError() bool   { return r.err != nil }

func (r LoadResult) String() string {
	if r.IsError() {
		return fmt.Sprintf("povtest.LoadResult{Err: %v}", r.err)
	}
	return fmt.Sprintf("povtest.LoadResult{Payload: %d bytes}", len(r.payload))
}

// FakeLoader is a loader.Loader that returns a preset result without doing
// any I/O. It is not safe for concurrent use.
type FakeLoader struct {
	result LoadResult
	calls  int
}

var _ loader.Loader = (*FakeLoader)(nil)

// NewFakeLoaderWithPayload returns a loader whose every load yields payload.
func NewFakeLoaderWithPayload(payload string) *FakeLoader {
	return &FakeLoader{result: NewPayloadResult(payload)}
}

// NewFakeLoaderWithError returns a loader whose every load fails with err.
// It panics if err is nil.
func NewFakeLoaderWithError(err error) *FakeLoader {
	return &FakeLoader{result: NewErrorResult(err)}
}

// Load returns the stored payload unchanged, or the stored error value
// itself. The context is ignored.
func (f *FakeLoader) Load(_ context.Context) (string, error) {
	f.calls++
	if f.result.IsError() {
		return "", f.result.Err()
	}
	return f.result.Payload(), nil
}

// LoadWithCallback delivers the stored result to fn exactly once, on the
// calling goroutine, before returning.
func (f *FakeLoader) LoadWithCallback(fn func(payload string, err error)) {
	fn(f.Load(context.Background()))
}

func (f *FakeLoader) GetSourceURL() *url.URL {
	return &url.URL{Scheme: "fake", Host: "loader"}
}

// Result returns the preset result.
func (f *FakeLoader) Result() LoadResult {
	return f.result
}

// Calls reports how many loads have completed.
func (f *FakeLoader) Calls() int {
	return f.calls
}

func (f *FakeLoader) String() string {
	return fmt.Sprintf("povtest.FakeLoader{Result: %s}", f.result)
}
