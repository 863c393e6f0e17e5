// Package princeofversions checks whether a newer version of an application
// is available.
//
// An update configuration is loaded through a loader.Loader, parsed, and
// compared with the installed version reported by a version.Provider.
// Optional updates are announced once per version unless the configuration
// asks for every check; the last announced version is kept in a
// storage.Storage.
//
//	pov, err := princeofversions.New(
//		options.WithVersionProvider(version.NewStatic("1.4.0")),
//	)
//	if err != nil {
//		return err
//	}
//	result, err := pov.CheckForUpdatesFromURL(ctx, "https://example.com/update.json", nil)
package princeofversions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/options"
	"github.com/robbyt/go-princeofversions/parser"
	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/update"
)

// PrinceOfVersions runs update checks. It is safe for concurrent use when
// its storage and version provider are.
type PrinceOfVersions struct {
	checker *update.Checker
	logger  *slog.Logger
}

// New builds an update checker. A version provider is required; everything
// else has a default.
func New(opts ...options.Option) (*PrinceOfVersions, error) {
	cfg := options.DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	handler, logger := helpers.SetupLogger(cfg.GetHandler(), "princeofversions", "")

	configParser := cfg.GetConfigurationParser()
	if configParser == nil {
		processor := requirements.NewProcessor(handler, cfg.GetRequirementCheckers())
		configParser = parser.New(processor,
			parser.WithPlatform(cfg.GetPlatform()),
			parser.WithLogHandler(handler),
			parser.WithSchemaValidation(cfg.GetSchemaValidation()),
		)
	}

	interactor := update.NewInteractor(handler, configParser, cfg.GetVersionProvider(), cfg.GetVersionComparator())
	return &PrinceOfVersions{
		checker: update.NewChecker(handler, interactor, cfg.GetStorage()),
		logger:  logger,
	}, nil
}

// CheckForUpdates loads the configuration from ldr and runs a check.
func (p *PrinceOfVersions) CheckForUpdates(ctx context.Context, ldr loader.Loader) (*update.Result, error) {
	p.logger.DebugContext(ctx, "checking for updates", "source", ldr.GetSourceURL())
	return p.checker.Check(ctx, ldr)
}

// CheckForUpdatesFromURL fetches the configuration over HTTP. Nil httpOpts
// selects loader.DefaultHTTPOptions.
func (p *PrinceOfVersions) CheckForUpdatesFromURL(
	ctx context.Context,
	rawURL string,
	httpOpts *loader.HTTPOptions,
) (*update.Result, error) {
	ldr, err := loader.NewFromHTTPWithOptions(rawURL, httpOpts)
	if err != nil {
		return nil, err
	}
	return p.CheckForUpdates(ctx, ldr)
}

// NewCall prepares a single check against ldr.
func (p *PrinceOfVersions) NewCall(ldr loader.Loader) *Call {
	return &Call{pov: p, loader: ldr}
}
