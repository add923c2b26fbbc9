package cmd

import (
	"github.com/spf13/cobra"

	"checklist.dev/pkg/checklist/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the targets found under the collect path",
		Long: `Parse every Python source under the collect path and print the functions and
methods a test case can point at. Functions defined inside other functions
are never targets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.List(contextOf(cmd), domain.ListArgs{
				Collect: collectArgsFromConfig(),
				Watch:   watch,
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "list again whenever a source file changes")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
