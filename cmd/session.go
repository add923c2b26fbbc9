package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"checklist.dev/pkg/checklist/internal/domain"
)

// sessionCmd represents the session command group.
var sessionCmd = newSessionCmd()

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the pointer ledger session",
	}

	cmd.AddCommand(newSessionStartCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Reset the pointer ledger before a test run",
		Long: `Clear the pointers recorded by a previous run and stamp a new session id.
Nothing is reset when collection is disabled and no report listing is
requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Start(contextOf(cmd), domain.StartArgs{
				Ledger:   ledgerArgsFromConfig(),
				Active:   sessionActive(),
				Disabled: viper.GetBool(disabledKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// sessionActive reports whether collection or report listing is enabled.
func sessionActive() bool {
	return strings.TrimSpace(viper.GetString(collectPathKey)) != "" || viper.GetBool(showReportKey)
}
