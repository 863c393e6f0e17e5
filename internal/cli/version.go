package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-princeofversions/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the povcheck version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.buildVersion())
			return err
		},
	}
}

func (a *app) buildVersion() string {
	if a.version != "" {
		return a.version
	}
	if v, err := version.NewFromBuildInfo().GetVersion(); err == nil {
		return v
	}
	return "dev"
}
