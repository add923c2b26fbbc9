package cmd

import (
	"github.com/spf13/cobra"

	"checklist.dev/pkg/checklist/internal/domain"
)

const runLongDescription = `Start a session, run the host test command and report coverage once it
exits. The command inherits CHECKLIST_LEDGER_BACKEND, CHECKLIST_LEDGER_CACHE_DIR
and CHECKLIST_SESSION_ID so that record calls made by the host share the
ledger. The run fails when the host command fails or coverage is too low.

  checklist run --report -- pytest tests/`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "run -- COMMAND [ARGS...]",
		Short:  "Run a host test command inside a checklist session",
		Long:   runLongDescription,
		Args:   cobra.MinimumNArgs(1),
		PreRun: bindReportFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportArgs, err := reportArgsFromConfig()
			if err != nil {
				return err
			}

			return workflow.Run(contextOf(cmd), domain.RunArgs{
				Report:  reportArgs,
				WorkDir: ".",
				Command: args,
			})
		},
	}

	configureReportFlags(cmd)
	// Flags after COMMAND belong to the host command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
