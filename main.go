package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-metrics/cmd/annual"
	"fjacquet/budget-metrics/cmd/balances"
	"fjacquet/budget-metrics/cmd/monthly"
	"fjacquet/budget-metrics/cmd/root"
	"fjacquet/budget-metrics/cmd/run"
	"fjacquet/budget-metrics/cmd/showconfig"
	"fjacquet/budget-metrics/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Configure the bootstrap log level before any command logs
	configureLogLevelDirectly()

	// 3. Initialize root command flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(balances.Cmd)
	root.Cmd.AddCommand(annual.Cmd)
	root.Cmd.AddCommand(monthly.Cmd)
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(showconfig.Cmd)
}

// configureLogLevelDirectly sets the level of the bootstrap logger from
// BUDGET_LOG_LEVEL. The container's logger is configured later from the full
// configuration.
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv(config.EnvPrefix + "_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		// Don't log here, just use default info level if we can't parse
		logLevel = logrus.InfoLevel
	}
	root.Log.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
