package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Finalize the session and report unit coverage",
		Long: `Discover every target under the collect path, reconcile it with the pointers
recorded since the last session start and print the coverage summary. The
command exits with status 1 when the achieved percent is below --fail-under.`,
		Args:   cobra.NoArgs,
		PreRun: bindReportFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := reportArgsFromConfig()
			if err != nil {
				return err
			}

			return workflow.Report(contextOf(cmd), args)
		},
	}

	configureReportFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// reportFlagKeys maps the finalize flags shared by report and run to their
// config keys.
var reportFlagKeys = []struct {
	flag string
	key  string
}{
	{minPointersFlagName, minPointersKey},
	{failUnderFlagName, failUnderKey},
	{reportFlagName, showReportKey},
	{reportIgnoredFlagName, showIgnoredKey},
	{reportPassingFlagName, showPassingKey},
	{formatFlagName, reportFormatKey},
	{metricsFileFlagName, metricsFileKey},
}

func configureReportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.Int(minPointersFlagName, defaultMinPointers, "minimum number of pointers for a target to pass")
	flags.Float64(failUnderFlagName, defaultFailUnder, "minimum percent of passing targets")
	flags.Bool(reportFlagName, false, "list targets in the report")
	flags.Bool(reportIgnoredFlagName, false, "list ignored targets in the report")
	flags.Bool(reportPassingFlagName, false, "list passing targets in the report")
	flags.String(formatFlagName, defaultFormatArg, "report format (text, json or yaml)")
	flags.String(metricsFileFlagName, "", "write coverage gauges to this Prometheus textfile")
}

// bindReportFlags binds the finalize flags of the command being executed.
// Both report and run declare them and viper keeps one flag per key, so the
// binding happens when a command runs rather than when it is built.
func bindReportFlags(cmd *cobra.Command, _ []string) {
	for _, fk := range reportFlagKeys {
		bindFlagToConfig(cmd.Flags().Lookup(fk.flag), fk.key)
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
