package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	princeofversions "github.com/robbyt/go-princeofversions"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/loader/httpauth"
	"github.com/robbyt/go-princeofversions/options"
	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/requirements/extism"
	"github.com/robbyt/go-princeofversions/requirements/risor"
	"github.com/robbyt/go-princeofversions/requirements/starlark"
	"github.com/robbyt/go-princeofversions/storage"
	"github.com/robbyt/go-princeofversions/version"
)

type checkFlags struct {
	url              string
	file             string
	currentVersion   string
	propertiesFile   string
	platform         string
	comparator       string
	stateFile        string
	appID            string
	username         string
	password         string
	timeout          time.Duration
	retries          uint64
	osVersion        string
	schemaValidation bool
	output           string
	requirements     map[string]string
}

func newCheckCmd(a *app) *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check an update configuration against the installed version",
		Example: `  povcheck check --url https://example.com/update.json --current-version 1.4.0
  povcheck check --file /etc/app/update.json --current-version 1.4.0 --os-version 14.2 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.applyFileConfig(cmd.Flags(), a.fileConfig); err != nil {
				return err
			}
			return a.runCheck(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.url, "url", "", "HTTP(S) URL of the update configuration")
	fl.StringVar(&f.file, "file", "", "path of a local update configuration")
	fl.StringVar(&f.currentVersion, "current-version", "", "installed version (defaults to the binary's build info)")
	fl.StringVar(&f.propertiesFile, "properties-file", "", "read the installed version from application.version in this properties file")
	fl.StringVar(&f.platform, "platform", options.DefaultPlatform, "platform section of the configuration")
	fl.StringVar(&f.comparator, "comparator", "numeric", "version comparison: numeric, build or semver")
	fl.StringVar(&f.stateFile, "state-file", "", "file remembering the last notified version")
	fl.StringVar(&f.appID, "app-id", "", "store state in the user config directory under this id")
	fl.StringVar(&f.username, "username", "", "basic auth user name")
	fl.StringVar(&f.password, "password", "", "basic auth password")
	fl.DurationVar(&f.timeout, "timeout", loader.DefaultNetworkTimeout, "network timeout")
	fl.Uint64Var(&f.retries, "retries", 0, "retries for failed HTTP requests")
	fl.StringVar(&f.osVersion, "os-version", "", "enables the required_os_version requirement with this OS version")
	fl.BoolVar(&f.schemaValidation, "schema-validation", false, "validate the configuration against its JSON schema")
	fl.StringVarP(&f.output, "output", "o", outputText, "output format: text, json or yaml")
	fl.StringToStringVar(&f.requirements, "requirement", nil,
		"requirement key=script; .star runs Starlark, .risor runs Risor, .wasm runs an Extism plugin")

	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsMutuallyExclusive("state-file", "app-id")
	return cmd
}

// applyFileConfig fills flags the user did not set from the config file.
func (f *checkFlags) applyFileConfig(fs *pflag.FlagSet, cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}
	setString := func(name string, dst *string, v string) {
		if !fs.Changed(name) && v != "" {
			*dst = v
		}
	}
	// an explicit flag shadows the file value it is exclusive with
	if !fs.Changed("file") {
		setString("url", &f.url, cfg.URL)
	}
	if !fs.Changed("url") {
		setString("file", &f.file, cfg.File)
	}
	if !fs.Changed("app-id") {
		setString("state-file", &f.stateFile, cfg.StateFile)
	}
	if !fs.Changed("state-file") {
		setString("app-id", &f.appID, cfg.AppID)
	}
	setString("current-version", &f.currentVersion, cfg.CurrentVersion)
	setString("properties-file", &f.propertiesFile, cfg.PropertiesFile)
	setString("platform", &f.platform, cfg.Platform)
	setString("comparator", &f.comparator, cfg.Comparator)
	setString("username", &f.username, cfg.Username)
	setString("password", &f.password, cfg.Password)
	setString("os-version", &f.osVersion, cfg.OSVersion)
	setString("output", &f.output, cfg.Output)

	if !fs.Changed("timeout") && cfg.Timeout > 0 {
		f.timeout = cfg.Timeout
	}
	if !fs.Changed("retries") && cfg.Retries > 0 {
		f.retries = cfg.Retries
	}
	if !fs.Changed("schema-validation") && cfg.SchemaValidation {
		f.schemaValidation = true
	}
	if len(cfg.Requirements) > 0 {
		merged := make(map[string]string, len(cfg.Requirements)+len(f.requirements))
		for k, v := range cfg.Requirements {
			merged[k] = v
		}
		for k, v := range f.requirements {
			merged[k] = v
		}
		f.requirements = merged
	}

	if f.url != "" && f.file != "" {
		return fmt.Errorf("config file sets both url and file; use only one")
	}
	if f.stateFile != "" && f.appID != "" {
		return fmt.Errorf("config file sets both state_file and app_id; use only one")
	}
	return nil
}

func (a *app) runCheck(cmd *cobra.Command, f *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validateOutput(f.output); err != nil {
		return err
	}

	ldr, err := f.loader()
	if err != nil {
		return err
	}

	opts, err := a.checkOptions(ctx, f)
	if err != nil {
		return err
	}

	pov, err := princeofversions.New(opts...)
	if err != nil {
		return err
	}

	result, err := pov.CheckForUpdates(ctx, ldr)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), f.output, result)
}

func (f *checkFlags) loader() (loader.Loader, error) {
	switch {
	case f.url != "":
		opts := loader.DefaultHTTPOptions()
		opts.Timeout = f.timeout
		opts.MaxRetries = f.retries
		if f.username != "" || f.password != "" {
			opts.Authenticator = httpauth.NewBasicAuth(f.username, f.password)
		}
		return loader.NewFromHTTPWithOptions(f.url, opts)
	case f.file != "":
		path, err := filepath.Abs(f.file)
		if err != nil {
			return nil, err
		}
		return loader.NewFromDisk(path)
	default:
		return nil, fmt.Errorf("one of --url or --file is required")
	}
}

func (f *checkFlags) versionProvider() version.Provider {
	switch {
	case f.currentVersion != "":
		return version.NewStatic(f.currentVersion)
	case f.propertiesFile != "":
		return version.NewFromProperties(f.propertiesFile, "")
	default:
		return version.NewFromBuildInfo()
	}
}

func (f *checkFlags) storage() (storage.Storage, error) {
	switch {
	case f.stateFile != "":
		return storage.NewFile(f.stateFile)
	case f.appID != "":
		path, err := storage.DefaultFilePath(f.appID)
		if err != nil {
			return nil, err
		}
		return storage.NewFile(path)
	default:
		return storage.NewMemory(), nil
	}
}

func (a *app) checkOptions(ctx context.Context, f *checkFlags) ([]options.Option, error) {
	cmp, err := version.ComparatorByName(f.comparator)
	if err != nil {
		return nil, err
	}
	store, err := f.storage()
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.WithLogHandler(a.handler),
		options.WithVersionProvider(f.versionProvider()),
		options.WithVersionComparator(cmp),
		options.WithStorage(store),
		options.WithPlatform(f.platform),
		options.WithSchemaValidation(f.schemaValidation),
	}

	if f.osVersion != "" {
		opts = append(opts, options.WithRequirementChecker(
			requirements.KeyOSVersion,
			requirements.NewOSVersionChecker(f.osVersion, cmp),
		))
	}
	if f.currentVersion != "" {
		cc, err := requirements.NewConstraintChecker(f.currentVersion)
		if err != nil {
			slog.New(a.handler).WarnContext(ctx, "current version is not semver, "+
				requirements.KeyVersionConstraint+" requirements will not match",
				"version", f.currentVersion, "error", err)
		} else {
			opts = append(opts, options.WithRequirementChecker(requirements.KeyVersionConstraint, cc))
		}
	}

	for key, path := range f.requirements {
		checker, err := a.scriptChecker(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", key, err)
		}
		opts = append(opts, options.WithRequirementChecker(key, checker))
	}
	return opts, nil
}

// scriptChecker picks the script engine from the file extension.
func (a *app) scriptChecker(ctx context.Context, path string) (requirements.Checker, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(abs)) {
	case ".star", ".starlark":
		ldr, err := loader.NewFromDisk(abs)
		if err != nil {
			return nil, err
		}
		return starlark.New(ctx, a.handler, ldr)
	case ".risor", ".rsr":
		ldr, err := loader.NewFromDisk(abs)
		if err != nil {
			return nil, err
		}
		return risor.New(ctx, a.handler, ldr)
	case ".wasm":
		wasm, err := os.ReadFile(abs)
		if err != nil {
			return nil, err
		}
		return extism.NewFromBytes(ctx, a.handler, wasm)
	default:
		return nil, fmt.Errorf("unsupported requirement script %s", path)
	}
}
