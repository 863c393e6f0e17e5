package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageImplementations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(t *testing.T) Storage
	}{
		{
			name:  "memory",
			build: func(t *testing.T) Storage { t.Helper(); return NewMemory() },
		},
		{
			name: "file",
			build: func(t *testing.T) Storage {
				t.Helper()
				f, err := NewFile(filepath.Join(t.TempDir(), "nested", "state.json"))
				require.NoError(t, err)
				return f
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := tt.build(t)
			ctx := t.Context()

			v, ok, err := s.LastSavedVersion(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)

			require.NoError(t, s.SaveVersion(ctx, "2.0.0"))
			v, ok, err = s.LastSavedVersion(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2.0.0", v)

			require.NoError(t, s.SaveVersion(ctx, "2.1.0"))
			v, _, err = s.LastSavedVersion(ctx)
			require.NoError(t, err)
			assert.Equal(t, "2.1.0", v)
		})
	}
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.SaveVersion(t.Context(), fmt.Sprintf("1.%d", i)))
			_, ok, err := m.LastSavedVersion(t.Context())
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestFile_Document(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SaveVersion(t.Context(), "3.1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_notified_version": "3.1"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	reopened, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.LastSavedVersion(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3.1", v)
}

func TestFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, err := NewFile("")
		require.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("corrupt document", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		f, err := NewFile(path)
		require.NoError(t, err)
		_, _, err = f.LastSavedVersion(t.Context())
		require.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("document without version", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"other": 1}`), 0o600))

		f, err := NewFile(path)
		require.NoError(t, err)
		_, ok, err := f.LastSavedVersion(t.Context())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		f, err := NewFile(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.ErrorIs(t, f.SaveVersion(ctx, "1"), context.Canceled)
		_, _, err = f.LastSavedVersion(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDefaultFilePath(t *testing.T) {
	t.Parallel()

	_, err := DefaultFilePath("")
	require.ErrorIs(t, err, ErrStorageUnavailable)

	path, err := DefaultFilePath("com.example.app")
	if err != nil {
		// no HOME or XDG_CONFIG_HOME in this environment
		require.ErrorIs(t, err, ErrStorageUnavailable)
		return
	}
	assert.Equal(t, "princeofversions.json", filepath.Base(path))
	assert.Equal(t, "com.example.app", filepath.Base(filepath.Dir(path)))
}
