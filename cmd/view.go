package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"checklist.dev/pkg/checklist/internal/domain"
	m "checklist.dev/pkg/checklist/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last coverage report",
		Long:  "Browse the report saved by the last report or run in the cache directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportPath := reportFilePath(m.Path(viper.GetString(cacheDirKey)))
			return workflow.View(contextOf(cmd), domain.ViewArgs{ReportFile: reportPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
