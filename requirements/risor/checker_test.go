package risor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/requirements"
)

func newChecker(t *testing.T, script string) *Checker {
	t.Helper()
	ldr, err := loader.NewFromString(script)
	require.NoError(t, err)
	c, err := New(t.Context(), helpers.DiscardHandler(), ldr)
	require.NoError(t, err)
	return c
}

func TestChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		value  string
		want   bool
	}{
		{name: "equal", script: `value == "beta"`, value: "beta", want: true},
		{name: "not equal", script: `value == "beta"`, value: "stable", want: false},
		{name: "either", script: `value == "beta" || value == "internal"`, value: "internal", want: true},
		{name: "length", script: `len(value) > 3`, value: "ab", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newChecker(t, tt.script)
			got, err := c.CheckRequirement(t.Context(), tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_Errors(t *testing.T) {
	t.Parallel()

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		ldr, err := loader.NewFromString(`value ==`)
		require.NoError(t, err)
		_, err = New(t.Context(), nil, ldr)
		require.ErrorIs(t, err, requirements.ErrScriptCompile)
	})

	t.Run("load failure", func(t *testing.T) {
		t.Parallel()
		loadErr := errors.New("unreachable")
		ldr := new(loader.MockLoader)
		ldr.On("Load", mock.Anything).Return("", loadErr)

		_, err := New(t.Context(), nil, ldr)
		require.ErrorIs(t, err, loadErr)
		ldr.AssertExpectations(t)
	})

	t.Run("non bool result", func(t *testing.T) {
		t.Parallel()
		c := newChecker(t, `"yes"`)
		_, err := c.CheckRequirement(t.Context(), "x")
		require.ErrorIs(t, err, requirements.ErrScriptResult)
	})
}

func TestChecker_String(t *testing.T) {
	t.Parallel()

	c := newChecker(t, `true`)
	assert.Contains(t, c.String(), "risor.Checker{Source: string://inline/")
}
