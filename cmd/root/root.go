// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"
	"time"

	"fjacquet/budget-metrics/internal/config"
	"fjacquet/budget-metrics/internal/container"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile   string
	DataDir      string
	AsOf         string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
}

// flagKeys maps persistent flags to the configuration key they override.
var flagKeys = map[string]string{
	"data-dir":      "data.directory",
	"as-of":         "run.as_of",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"csv-delimiter": "csv.delimiter",
}

var (
	// Log is the shared logger instance used before the container exists
	Log = logrus.New()

	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the dependencies wired from AppConfig
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-metrics",
		Short: "A CLI tool to rebuild monthly account balances and derive financial health metrics.",
		Long: `budget-metrics rebuilds per-account monthly balances from a transaction ledger export
and derives yearly debt, liquidity, net worth and savings ratios as well as monthly cash flow.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-metrics!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		SilenceUsage:      true,
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches ./config.yaml and $HOME/.budget-metrics/config.yaml)")
		flags.StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the ledger and derived tables")
		flags.StringVar(&SharedFlags.AsOf, "as-of", "", "First open month (YYYY-MM) excluded from every output; defaults to the current month")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
		flags.StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV field delimiter")
	})
}

func initialize(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	overrides := make(map[string]interface{})
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.InitializeConfig(config.Options{
		ConfigFile: SharedFlags.ConfigFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		Log.SetLevel(level)
	}
	AppConfig = cfg
	AppContainer = c
	return nil
}

// GetContainer returns the container built for the running command, or nil
// before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the container's logger, or an adapter over Log before
// initialization.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}

// AsOfMonth returns the first open month for the running command.
func AsOfMonth() (models.Month, error) {
	if AppConfig == nil {
		return models.Month{}, fmt.Errorf("configuration not initialized")
	}
	return AppConfig.AsOfMonth(time.Now())
}

// RequireContainer returns the container or an error for commands that need it.
func RequireContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}
