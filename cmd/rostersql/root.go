package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/rostersql/internal/pkg/apperrors"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rostersql",
		Short:         "Convert roster exports into SQL insert batches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", apperrors.ErrUsage, err)
	})

	root.AddCommand(newGenerateCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rostersql version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// noArgs rejects positional arguments as a usage error
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q for %q", apperrors.ErrUsage, args[0], cmd.CommandPath())
	}
	return nil
}
