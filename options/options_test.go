package options

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/storage"
	"github.com/robbyt/go-princeofversions/update"
	"github.com/robbyt/go-princeofversions/version"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.NotNil(t, cfg.GetHandler())
	assert.IsType(t, &version.NumericComparator{}, cfg.GetVersionComparator())
	assert.IsType(t, &storage.Memory{}, cfg.GetStorage())
	assert.Equal(t, DefaultPlatform, cfg.GetPlatform())
	assert.Contains(t, cfg.GetRequirementCheckers(), requirements.KeyRuntimeVersion)
	assert.Nil(t, cfg.GetConfigurationParser())
	assert.False(t, cfg.GetSchemaValidation())

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no version provider specified")

	require.NoError(t, WithVersionProvider(version.NewStatic("1.0"))(cfg))
	require.NoError(t, cfg.Validate())
}

func TestWithOptions(t *testing.T) {
	t.Parallel()

	handler := helpers.DiscardHandler()
	provider := version.NewStatic("1.0.0")
	cmp := version.NewSemverComparator()
	store := storage.NewMemory()
	checker := requirements.CheckerFunc(func(context.Context, string) (bool, error) { return true, nil })
	parser := update.ParserFunc(func(context.Context, string) (*update.Config, error) { return nil, nil })

	cfg := &Config{}
	for _, opt := range []Option{
		WithLogHandler(handler),
		WithVersionProvider(provider),
		WithVersionComparator(cmp),
		WithStorage(store),
		WithRequirementChecker("region", checker),
		WithConfigurationParser(parser),
		WithPlatform("macos"),
		WithSchemaValidation(true),
	} {
		require.NoError(t, opt(cfg))
	}

	assert.Equal(t, handler, cfg.GetHandler())
	assert.Equal(t, provider, cfg.GetVersionProvider())
	assert.Equal(t, cmp, cfg.GetVersionComparator())
	assert.Equal(t, store, cfg.GetStorage())
	assert.Contains(t, cfg.GetRequirementCheckers(), "region")
	assert.NotNil(t, cfg.GetConfigurationParser())
	assert.Equal(t, "macos", cfg.GetPlatform())
	assert.True(t, cfg.GetSchemaValidation())
	require.NoError(t, cfg.Validate())
}

func TestWithSlog(t *testing.T) {
	t.Parallel()

	logger := slog.New(helpers.DiscardHandler())
	cfg := &Config{}
	require.NoError(t, WithSlog(logger)(cfg))
	assert.Equal(t, logger.Handler(), cfg.GetHandler())

	require.NoError(t, WithSlog(nil)(cfg))
	assert.Equal(t, logger.Handler(), cfg.GetHandler())
}

func TestOptionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil provider", opt: WithVersionProvider(nil)},
		{name: "nil comparator", opt: WithVersionComparator(nil)},
		{name: "nil storage", opt: WithStorage(nil)},
		{name: "empty requirement key", opt: WithRequirementChecker("", requirements.NewRuntimeVersionChecker())},
		{name: "nil checker", opt: WithRequirementChecker("k", nil)},
		{name: "nil parser", opt: WithConfigurationParser(nil)},
		{name: "empty platform", opt: WithPlatform("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.opt(DefaultConfig()))
		})
	}
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	custom := requirements.NewRuntimeVersionChecker()
	cfg := &Config{}
	require.NoError(t, WithRequirementChecker(requirements.KeyRuntimeVersion, custom)(cfg))
	require.NoError(t, WithDefaults()(cfg))

	assert.NotNil(t, cfg.GetHandler())
	assert.NotNil(t, cfg.GetVersionComparator())
	assert.NotNil(t, cfg.GetStorage())
	assert.Equal(t, DefaultPlatform, cfg.GetPlatform())
	// an explicitly registered checker is kept
	assert.Same(t, custom, cfg.GetRequirementCheckers()[requirements.KeyRuntimeVersion])

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version provider")
}

func TestValidate_Empty(t *testing.T) {
	t.Parallel()

	err := (&Config{}).Validate()
	require.Error(t, err)
	for _, msg := range []string{"log handler", "version provider", "version comparator", "storage", "platform"} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestGetRequirementCheckers_Copy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	got := cfg.GetRequirementCheckers()
	delete(got, requirements.KeyRuntimeVersion)
	assert.Contains(t, cfg.GetRequirementCheckers(), requirements.KeyRuntimeVersion)
}
