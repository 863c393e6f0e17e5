// Package cli implements the povcheck command line tool.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

const defaultLogLevel = "warn"

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	fileConfig *FileConfig
	handler    slog.Handler
	version    string
}

// NewRootCmd builds the povcheck command tree. buildVersion is reported by
// the version command; empty means the module build info is used.
func NewRootCmd(buildVersion string) *cobra.Command {
	a := &app{version: buildVersion}

	root := &cobra.Command{
		Use:           "povcheck",
		Short:         "Check whether a newer application version is available",
		Long:          `povcheck loads an update configuration and reports whether the installed version needs a mandatory or optional update.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML file with flag defaults")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newCheckCmd(a),
		newCompareCmd(a),
		newValidateCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadFileConfig(a.configPath)
	if err != nil {
		return err
	}
	a.fileConfig = cfg

	level := a.logLevel
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	handler, err := newLogHandler(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	a.handler = handler
	return nil
}
