package povtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeLoader_Payload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "json document", payload: `{"version":"2.0"}`},
		{name: "empty", payload: ""},
		{name: "whitespace kept", payload: "  \n{\"ios\": {}}\n\t"},
		{name: "unicode", payload: `{"meta":{"title":"Nova verzija ✓"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFakeLoaderWithPayload(tt.payload)

			got, err := f.Load(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.payload, got)
			assert.Equal(t, 1, f.Calls())
		})
	}
}

func TestFakeLoader_Error(t *testing.T) {
	t.Parallel()

	injected := errors.New("connection refused")
	f := NewFakeLoaderWithError(injected)

	got, err := f.Load(t.Context())
	assert.Empty(t, got)
	// the exact value, not a wrapper
	assert.Same(t, injected, err)

	wrapped := fmt.Errorf("fetch: %w", io.ErrUnexpectedEOF)
	f = NewFakeLoaderWithError(wrapped)
	_, err = f.Load(t.Context())
	assert.Equal(t, wrapped, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFakeLoader_NilErrorPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewFakeLoaderWithError(nil) })
	assert.Panics(t, func() { NewErrorResult(nil) })
}

func TestFakeLoader_Idempotent(t *testing.T) {
	t.Parallel()

	f := NewFakeLoaderWithPayload(`{"version":"2.0"}`)
	for i := range 5 {
		got, err := f.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, `{"version":"2.0"}`, got)
		assert.Equal(t, i+1, f.Calls())
	}
}

func TestFakeLoader_IgnoresCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	got, err := NewFakeLoaderWithPayload("payload").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
}

func TestFakeLoader_LoadWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("payload", func(t *testing.T) {
		t.Parallel()
		f := NewFakeLoaderWithPayload(`{"version":"2.0"}`)

		invocations := 0
		f.LoadWithCallback(func(payload string, err error) {
			invocations++
			assert.Equal(t, `{"version":"2.0"}`, payload)
			assert.NoError(t, err)
		})
		assert.Equal(t, 1, invocations)
		assert.Equal(t, 1, f.Calls())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		injected := errors.New("timeout")
		f := NewFakeLoaderWithError(injected)

		invocations := 0
		f.LoadWithCallback(func(payload string, err error) {
			invocations++
			assert.Empty(t, payload)
			assert.Same(t, injected, err)
		})
		assert.Equal(t, 1, invocations)
	})
}

func TestFakeLoader_Accessors(t *testing.T) {
	t.Parallel()

	f := NewFakeLoaderWithPayload("abc")
	assert.Equal(t, "fake://loader", f.GetSourceURL().String())
	assert.False(t, f.Result().IsError())
	assert.Equal(t, "abc", f.Result().Payload())
	assert.Contains(t, f.String(), "3 bytes")

	injected := errors.New("nope")
	f = NewFakeLoaderWithError(injected)
	assert.True(t, f.Result().IsError())
	assert.Same(t, injected, f.Result().Err())
	assert.Empty(t, f.Result().Payload())
	assert.Contains(t, f.String(), "nope")
}
