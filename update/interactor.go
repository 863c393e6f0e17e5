package update

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/version"
)

// Interactor loads a configuration and decides which update applies to the
// installed version.
type Interactor struct {
	parser     ConfigurationParser
	provider   version.Provider
	comparator version.Comparator
	logger     *slog.Logger
}

func NewInteractor(
	handler slog.Handler,
	parser ConfigurationParser,
	provider version.Provider,
	comparator version.Comparator,
) *Interactor {
	_, logger := helpers.SetupLogger(handler, "update", "Interactor")
	return &Interactor{
		parser:     parser,
		provider:   provider,
		comparator: comparator,
		logger:     logger,
	}
}

// Evaluate loads and parses the configuration from ldr and compares it with
// the installed version. A mandatory update wins over an optional one; when
// both are newer than the installed version the greater of the two is
// reported with Mandatory status.
func (i *Interactor) Evaluate(ctx context.Context, ldr loader.Loader) (*CheckResult, error) {
	logger := i.logger.WithGroup("Evaluate")

	content, err := ldr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load update configuration: %w", err)
	}

	installed, err := i.provider.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to read installed version: %w", err)
	}

	cfg, err := i.parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	info := Info{
		RequiredVersion:       cfg.MandatoryVersion,
		LastVersionAvailable:  cfg.OptionalVersion,
		Requirements:          cfg.Requirements,
		InstalledVersion:      installed,
		NotificationFrequency: cfg.OptionalNotificationType,
	}
	logger.DebugContext(ctx, "configuration parsed", "info", info)

	if cfg.MandatoryVersion != "" {
		newer, err := version.IsGreater(i.comparator, cfg.MandatoryVersion, installed)
		if err != nil {
			return nil, err
		}
		if newer {
			notify := cfg.MandatoryVersion
			if cfg.OptionalVersion != "" {
				greater, err := version.IsGreater(i.comparator, cfg.OptionalVersion, cfg.MandatoryVersion)
				if err != nil {
					return nil, err
				}
				if greater {
					notify = cfg.OptionalVersion
				}
			}
			logger.DebugContext(ctx, "mandatory update available", "version", notify)
			return MandatoryUpdate(notify, cfg.Metadata, info), nil
		}
	}

	if cfg.OptionalVersion != "" {
		newer, err := version.IsGreater(i.comparator, cfg.OptionalVersion, installed)
		if err != nil {
			return nil, err
		}
		if newer {
			logger.DebugContext(ctx, "optional update available",
				"version", cfg.OptionalVersion,
				"notification", cfg.OptionalNotificationType,
			)
			return OptionalUpdate(cfg.OptionalVersion, cfg.OptionalNotificationType, cfg.Metadata, info), nil
		}
	}

	if cfg.MandatoryVersion == "" && cfg.OptionalVersion == "" {
		return nil, ErrNoVersions
	}

	logger.DebugContext(ctx, "installed version is up to date", "installed", installed)
	return NoUpdateResult(installed, cfg.Metadata, info), nil
}
