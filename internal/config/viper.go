// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fjacquet/budget-metrics/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "BUDGET"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Directory       string `mapstructure:"directory" yaml:"directory"`
		Transactions    string `mapstructure:"transactions" yaml:"transactions"`
		Balances        string `mapstructure:"balances" yaml:"balances"`
		CategorySummary string `mapstructure:"category_summary" yaml:"category_summary"`
		AnnualSummary   string `mapstructure:"annual_summary" yaml:"annual_summary"`
		MonthlySummary  string `mapstructure:"monthly_summary" yaml:"monthly_summary"`
	} `mapstructure:"data" yaml:"data"`

	Accounts struct {
		CreditCardKeywords []string `mapstructure:"credit_card_keywords" yaml:"credit_card_keywords"`
		RetirementKeywords []string `mapstructure:"retirement_keywords" yaml:"retirement_keywords"`
		InvestmentKeywords []string `mapstructure:"investment_keywords" yaml:"investment_keywords"`
	} `mapstructure:"accounts" yaml:"accounts"`

	Tagging struct {
		// IncomePatterns are case-insensitive regular expressions; DiningKeywords
		// are literal substrings.
		IncomePatterns []string `mapstructure:"income_patterns" yaml:"income_patterns"`
		DiningKeywords []string `mapstructure:"dining_keywords" yaml:"dining_keywords"`
		TransferPrefix string   `mapstructure:"transfer_prefix" yaml:"transfer_prefix"`
	} `mapstructure:"tagging" yaml:"tagging"`

	Run struct {
		// AsOf is the first open month (YYYY-MM); empty means the current month.
		AsOf string `mapstructure:"as_of" yaml:"as_of"`
	} `mapstructure:"run" yaml:"run"`
}

// Options controls where configuration is loaded from.
type Options struct {
	// ConfigFile overrides the config.yaml search path when set.
	ConfigFile string
	// Overrides are applied last, keyed by dotted config key.
	Overrides map[string]interface{}
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig(opts Options) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.budget-metrics")
		v.AddConfigPath(".budget-metrics")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Explicit overrides, typically command-line flags
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration built from defaults only.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Data defaults
	v.SetDefault("data.directory", ".")
	v.SetDefault("data.transactions", "transactions.csv")
	v.SetDefault("data.balances", "monthly_summary.csv")
	v.SetDefault("data.category_summary", "monthly_category_summary.csv")
	v.SetDefault("data.annual_summary", "annual_summary.csv")
	v.SetDefault("data.monthly_summary", "monthly_financial_summary.csv")

	// Account classification defaults
	v.SetDefault("accounts.credit_card_keywords", []string{"CC", "Visa", "RedCard", "Bonvoy", "Sapphire"})
	v.SetDefault("accounts.retirement_keywords", []string{"401(k)", "IRA"})
	v.SetDefault("accounts.investment_keywords", []string{"Brokerage", "Equity"})

	// Payee tagging defaults
	v.SetDefault("tagging.income_patterns", []string{
		"salary", "payroll", "direct deposit", "transfer : DD Equity Account", "Doordash Equity Payout",
	})
	v.SetDefault("tagging.dining_keywords", []string{
		"doordash", "ubereats", "grubhub", "postmates", "restaurant", "cafe", "diner", "bar",
		"bistro", "food", "eatery", "steakhouse", "grill", "pizza", "sushi", "taco", "bbq",
	})
	v.SetDefault("tagging.transfer_prefix", "transfer")

	// Run defaults
	v.SetDefault("run.as_of", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if len(config.Tagging.IncomePatterns) == 0 {
		return fmt.Errorf("tagging.income_patterns must not be empty")
	}
	for _, p := range config.Tagging.IncomePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("tagging.income_patterns: invalid pattern %q: %w", p, err)
		}
	}
	if len(config.Tagging.DiningKeywords) == 0 {
		return fmt.Errorf("tagging.dining_keywords must not be empty")
	}

	if config.Run.AsOf != "" {
		if _, err := models.ParseMonth(config.Run.AsOf); err != nil {
			return fmt.Errorf("run.as_of must be YYYY-MM, got: %s", config.Run.AsOf)
		}
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// DataPath resolves an artifact file name against the data directory.
// Absolute names are returned unchanged.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) || c.Data.Directory == "" {
		return name
	}
	return filepath.Join(c.Data.Directory, name)
}

// AsOfMonth returns the first open month: run.as_of when set, otherwise the
// month containing now.
func (c *Config) AsOfMonth(now time.Time) (models.Month, error) {
	if c.Run.AsOf == "" {
		return models.CurrentMonth(now), nil
	}
	return models.ParseMonth(c.Run.AsOf)
}

// YAML serializes the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
