// Package cmd provides the root command and CLI setup for checklist.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"checklist.dev/pkg/checklist/internal/adapter"
	"checklist.dev/pkg/checklist/internal/controller"
	"checklist.dev/pkg/checklist/internal/domain"
)

const watchDebounce = 300 * time.Millisecond

var fsAdapter adapter.SourceFSAdapter
var pythonAdapter adapter.PythonFileAdapter
var reportStore adapter.ReportStore
var metricsExporter adapter.MetricsExporter
var hostRunner adapter.HostRunnerAdapter
var sourceWatcher adapter.SourceWatcher
var discovery domain.Discovery
var workflow domain.Workflow
var ui controller.UI

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	pythonAdapter = adapter.NewLocalPythonFileAdapter()
	reportStore = adapter.NewReportStore()
	metricsExporter = adapter.NewTextfileMetricsExporter()
	hostRunner = adapter.NewLocalHostRunnerAdapter(os.Stdout, os.Stderr)
	sourceWatcher = adapter.NewFSNotifySourceWatcher(watchDebounce)
	discovery = domain.NewDiscovery(fsAdapter, pythonAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		metricsExporter,
		hostRunner,
		sourceWatcher,
		ui,
		discovery,
		adapter.NewLedgerStore,
	)
}

const rootLongDescription = `Checklist is an explicit-intent unit coverage tool for Python test suites.

Every test case declares the function or method it exercises with a pointer
mark. Checklist discovers every function and method under the collect path,
counts the test cases pointing at each one and fails when too few targets
are covered.

A session is driven by the host test runner:
  checklist session start                       once before the run
  checklist record pkg.mod:func --test-id ID    once per executed test case
  checklist report                              once after the run
or by wrapping the whole run:
  checklist run -- pytest`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checklist",
		Short:         "Explicit-intent unit coverage for Python test suites",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(collectFlagName, defaultCollectPath, "directory to collect targets from (empty disables collection)")
	bindFlagToConfig(flags.Lookup(collectFlagName), collectPathKey)

	flags.StringP(excludeFlagName, "x", defaultExclude, "comma separated globs of source files to exclude, relative to the collect path")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeKey)

	flags.Bool(inferSearchModuleFlagName, defaultInferSearchModule, "infer the import root from package markers instead of the search paths")
	bindFlagToConfig(flags.Lookup(inferSearchModuleFlagName), inferSearchModuleKey)

	flags.StringSlice(searchPathFlagName, nil, "import search path candidates used when root inference is off (default PYTHONPATH and .)")
	bindFlagToConfig(flags.Lookup(searchPathFlagName), searchPathsKey)

	flags.String(noCoverTokenFlagName, domain.DefaultNoCoverToken, "comment token that exempts a function from coverage")
	bindFlagToConfig(flags.Lookup(noCoverTokenFlagName), noCoverTokenKey)

	flags.IntP(parallelFlagName, "p", defaultParallel, "number of files parsed in parallel")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelKey)

	flags.Bool(disabledFlagName, defaultDisabled, "disable checklist entirely")
	bindFlagToConfig(flags.Lookup(disabledFlagName), disabledKey)

	flags.String(cacheDirFlagName, defaultCacheDir, "directory holding the pointer ledger and the last report")
	bindFlagToConfig(flags.Lookup(cacheDirFlagName), cacheDirKey)

	flags.String(ledgerFlagName, defaultLedgerBackend,
		fmt.Sprintf("ledger backend (%s or %s)", adapter.LedgerBackendCache, adapter.LedgerBackendSQLite))
	bindFlagToConfig(flags.Lookup(ledgerFlagName), ledgerBackendKey)

	flags.BoolP(verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, defaultLogFilename, "log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
