package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-princeofversions/version"
)

func newCompareCmd(_ *app) *cobra.Command {
	var comparator string

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two versions and print <, = or >",
		Example: `  povcheck compare 1.2.10 1.2.9
  povcheck compare --comparator semver 2.0.0-rc.1 2.0.0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := version.ComparatorByName(comparator)
			if err != nil {
				return err
			}
			n, err := cmp.Compare(args[0], args[1])
			if err != nil {
				return err
			}

			sign := "="
			switch {
			case n < 0:
				sign = "<"
			case n > 0:
				sign = ">"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", args[0], sign, args[1])
			return err
		},
	}

	cmd.Flags().StringVar(&comparator, "comparator", "numeric", "version comparison: numeric, build or semver")
	return cmd
}
