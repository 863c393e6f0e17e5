package options

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/storage"
	"github.com/robbyt/go-princeofversions/update"
	"github.com/robbyt/go-princeofversions/version"
)

// Config holds everything needed to build an update checker.
type Config struct {
	handler          slog.Handler
	versionProvider  version.Provider
	comparator       version.Comparator
	storage          storage.Storage
	checkers         map[string]requirements.Checker
	parser           update.ConfigurationParser
	platform         string
	schemaValidation bool
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the slog handler shared by every component.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithSlog uses the handler behind an existing logger.
func WithSlog(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger != nil {
			c.handler = logger.Handler()
		}
		return nil
	}
}

// WithVersionProvider sets where the installed version comes from. Required.
func WithVersionProvider(p version.Provider) Option {
	return func(c *Config) error {
		if p == nil {
			return fmt.Errorf("version provider cannot be nil")
		}
		c.versionProvider = p
		return nil
	}
}

func WithVersionComparator(cmp version.Comparator) Option {
	return func(c *Config) error {
		if cmp == nil {
			return fmt.Errorf("version comparator cannot be nil")
		}
		c.comparator = cmp
		return nil
	}
}

// WithStorage sets where the last notified version is remembered.
func WithStorage(s storage.Storage) Option {
	return func(c *Config) error {
		if s == nil {
			return fmt.Errorf("storage cannot be nil")
		}
		c.storage = s
		return nil
	}
}

// WithRequirementChecker registers checker for requirement key, replacing
// any checker already registered for it.
func WithRequirementChecker(key string, checker requirements.Checker) Option {
	return func(c *Config) error {
		if key == "" {
			return fmt.Errorf("requirement key cannot be empty")
		}
		if checker == nil {
			return fmt.Errorf("checker for requirement %q cannot be nil", key)
		}
		if c.checkers == nil {
			c.checkers = make(map[string]requirements.Checker)
		}
		c.checkers[key] = checker
		return nil
	}
}

// WithConfigurationParser replaces the JSON parser. Requirement checkers and
// the platform setting are not applied to a custom parser.
func WithConfigurationParser(p update.ConfigurationParser) Option {
	return func(c *Config) error {
		if p == nil {
			return fmt.Errorf("configuration parser cannot be nil")
		}
		c.parser = p
		return nil
	}
}

// WithPlatform selects the platform section of the update configuration.
func WithPlatform(platform string) Option {
	return func(c *Config) error {
		if platform == "" {
			return fmt.Errorf("platform cannot be empty")
		}
		c.platform = platform
		return nil
	}
}

func WithSchemaValidation(enabled bool) Option {
	return func(c *Config) error {
		c.schemaValidation = enabled
		return nil
	}
}

// Validate checks that the configuration can build a checker.
func (c *Config) Validate() error {
	var errz []error
	if c.handler == nil {
		errz = append(errz, fmt.Errorf("no log handler specified"))
	}
	if c.versionProvider == nil {
		errz = append(errz, fmt.Errorf("no version provider specified"))
	}
	if c.comparator == nil {
		errz = append(errz, fmt.Errorf("no version comparator specified"))
	}
	if c.storage == nil {
		errz = append(errz, fmt.Errorf("no storage specified"))
	}
	if c.parser == nil && c.platform == "" {
		errz = append(errz, fmt.Errorf("no platform specified"))
	}
	return errors.Join(errz...)
}

func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

func (c *Config) GetVersionProvider() version.Provider {
	return c.versionProvider
}

func (c *Config) GetVersionComparator() version.Comparator {
	return c.comparator
}

func (c *Config) GetStorage() storage.Storage {
	return c.storage
}

// GetRequirementCheckers returns a copy of the registered checkers.
func (c *Config) GetRequirementCheckers() map[string]requirements.Checker {
	return maps.Clone(c.checkers)
}

// GetConfigurationParser returns the custom parser, or nil when the default
// JSON parser should be used.
func (c *Config) GetConfigurationParser() update.ConfigurationParser {
	return c.parser
}

func (c *Config) GetPlatform() string {
	return c.platform
}

func (c *Config) GetSchemaValidation() bool {
	return c.schemaValidation
}
