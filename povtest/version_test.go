package povtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeVersionProvider(t *testing.T) {
	t.Parallel()

	p := NewFakeVersionProvider("1.0.0")
	first, err := p.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", first)

	p.Version = "1.1.0"
	second, err := p.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", second)

	// earlier results are values, unaffected by reassignment
	assert.Equal(t, "1.0.0", first)
}

func TestFakeVersionProvider_Verbatim(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "not a version", " 2.0 ", "1.2.3-45"} {
		got, err := (&FakeVersionProvider{Version: v}).GetVersion()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
