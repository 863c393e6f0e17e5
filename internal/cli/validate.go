package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-princeofversions/options"
	"github.com/robbyt/go-princeofversions/parser"
)

func newValidateCmd(a *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an update configuration against its JSON schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("platform") && a.fileConfig != nil && a.fileConfig.Platform != "" {
				platform = a.fileConfig.Platform
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := parser.ValidateDocument(platform, string(content)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s configuration\n", args[0], platform)
			return err
		},
	}

	cmd.Flags().StringVar(&platform, "platform", options.DefaultPlatform, "platform section of the configuration")
	return cmd
}
