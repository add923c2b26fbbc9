package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"checklist.dev/pkg/checklist/internal/adapter"
	"checklist.dev/pkg/checklist/internal/controller"
	"checklist.dev/pkg/checklist/internal/domain"
	m "checklist.dev/pkg/checklist/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "checklist"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	collectFlagName           = "collect"
	excludeFlagName           = "exclude"
	inferSearchModuleFlagName = "infer-search-module"
	searchPathFlagName        = "search-path"
	noCoverTokenFlagName      = "no-cover-token"
	parallelFlagName          = "parallel"
	disabledFlagName          = "disabled"
	cacheDirFlagName          = "cache-dir"
	ledgerFlagName            = "ledger"
	verboseFlagName           = "verbose"
	logFileFlagName           = "log-file"

	minPointersFlagName   = "min-pointers"
	failUnderFlagName     = "fail-under"
	reportFlagName        = "report"
	reportIgnoredFlagName = "report-ignored"
	reportPassingFlagName = "report-passing"
	formatFlagName        = "format"
	metricsFileFlagName   = "metrics-file"

	collectPathKey       = "collect.path"
	excludeKey           = "collect.exclude"
	inferSearchModuleKey = "collect.infer_search_module"
	searchPathsKey       = "collect.search_paths"
	noCoverTokenKey      = "collect.no_cover_token"
	parallelKey          = "discovery.parallel"
	disabledKey          = "disabled"
	cacheDirKey          = "ledger.cache_dir"
	ledgerBackendKey     = "ledger.backend"

	minPointersKey   = "report.min_pointers"
	failUnderKey     = "report.fail_under"
	showReportKey    = "report.show"
	showIgnoredKey   = "report.show_ignored"
	showPassingKey   = "report.show_passing"
	reportFormatKey  = "report.format"
	metricsFileKey   = "report.metrics_file"
	defaultFormatArg = string(controller.FormatText)

	defaultCollectPath       = "src"
	defaultExclude           = ""
	defaultInferSearchModule = true
	defaultParallel          = 1
	defaultDisabled          = false
	defaultCacheDir          = ".checklist_cache"
	defaultLedgerBackend     = adapter.LedgerBackendCache
	defaultMinPointers       = 1
	defaultFailUnder         = 100.0

	envPrefix = "CHECKLIST"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".checklist.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(collectPathKey, defaultCollectPath)
	viper.SetDefault(excludeKey, defaultExclude)
	viper.SetDefault(inferSearchModuleKey, defaultInferSearchModule)
	viper.SetDefault(searchPathsKey, defaultSearchPaths())
	viper.SetDefault(noCoverTokenKey, domain.DefaultNoCoverToken)
	viper.SetDefault(parallelKey, defaultParallel)
	viper.SetDefault(disabledKey, defaultDisabled)
	viper.SetDefault(cacheDirKey, defaultCacheDir)
	viper.SetDefault(ledgerBackendKey, defaultLedgerBackend)

	viper.SetDefault(minPointersKey, defaultMinPointers)
	viper.SetDefault(failUnderKey, defaultFailUnder)
	viper.SetDefault(showReportKey, false)
	viper.SetDefault(showIgnoredKey, false)
	viper.SetDefault(showPassingKey, false)
	viper.SetDefault(reportFormatKey, defaultFormatArg)
	viper.SetDefault(metricsFileKey, "")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// defaultSearchPaths mirrors the interpreter's module search path: the
// PYTHONPATH entries followed by the working directory.
func defaultSearchPaths() []string {
	var paths []string

	for _, entry := range filepath.SplitList(os.Getenv("PYTHONPATH")) {
		if strings.TrimSpace(entry) != "" {
			paths = append(paths, entry)
		}
	}

	return append(paths, ".")
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func ledgerArgsFromConfig() domain.LedgerArgs {
	return domain.LedgerArgs{
		Backend:  viper.GetString(ledgerBackendKey),
		CacheDir: m.Path(viper.GetString(cacheDirKey)),
	}
}

func collectArgsFromConfig() domain.CollectArgs {
	searchPaths := viper.GetStringSlice(searchPathsKey)

	paths := make([]m.Path, 0, len(searchPaths))
	for _, path := range searchPaths {
		paths = append(paths, m.Path(path))
	}

	return domain.CollectArgs{
		CollectPath:       m.Path(viper.GetString(collectPathKey)),
		Exclude:           domain.ParseExcludePatterns(viper.GetString(excludeKey)),
		InferSearchModule: viper.GetBool(inferSearchModuleKey),
		SearchPaths:       paths,
		NoCoverToken:      viper.GetString(noCoverTokenKey),
		Parallel:          viper.GetInt(parallelKey),
	}
}

func reportArgsFromConfig() (domain.ReportArgs, error) {
	format, err := controller.ParseFormat(viper.GetString(reportFormatKey))
	if err != nil {
		return domain.ReportArgs{}, err
	}

	ledger := ledgerArgsFromConfig()

	return domain.ReportArgs{
		Ledger:  ledger,
		Collect: collectArgsFromConfig(),
		Thresholds: domain.Thresholds{
			MinPointers: viper.GetInt(minPointersKey),
			FailUnder:   viper.GetFloat64(failUnderKey),
		},
		Display: controller.ReportOptions{
			Show:        viper.GetBool(showReportKey),
			ShowIgnored: viper.GetBool(showIgnoredKey),
			ShowPassing: viper.GetBool(showPassingKey),
			Format:      format,
		},
		ReportFile:  reportFilePath(ledger.CacheDir),
		MetricsFile: m.Path(viper.GetString(metricsFileKey)),
		Disabled:    viper.GetBool(disabledKey),
	}, nil
}

// reportFilePath is where the last finalized report is kept for view.
func reportFilePath(cacheDir m.Path) m.Path {
	return m.Path(filepath.Join(string(cacheDir), adapter.ReportFileName))
}
