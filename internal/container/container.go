// Package container provides dependency injection for the budget-metrics
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/budget-metrics/internal/batch"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/config"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/pipeline"
	"fjacquet/budget-metrics/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.Store
	classifier *categorizer.AccountClassifier
	tagger     *categorizer.Tagger
	pipeline   *pipeline.Pipeline
	runner     *batch.Runner
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger, typically a
// MockLogger in tests.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	classifier := categorizer.NewAccountClassifier(categorizer.AccountKeywords{
		CreditCard: cfg.Accounts.CreditCardKeywords,
		Retirement: cfg.Accounts.RetirementKeywords,
		Investment: cfg.Accounts.InvestmentKeywords,
	})

	tagger, err := categorizer.NewTagger(categorizer.TagRules{
		IncomePatterns: cfg.Tagging.IncomePatterns,
		DiningKeywords: cfg.Tagging.DiningKeywords,
		TransferPrefix: cfg.Tagging.TransferPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tagger: %w", err)
	}

	fileStore := store.NewFileStore(store.Paths{
		Transactions:    cfg.DataPath(cfg.Data.Transactions),
		Balances:        cfg.DataPath(cfg.Data.Balances),
		CategorySummary: cfg.DataPath(cfg.Data.CategorySummary),
		AnnualSummary:   cfg.DataPath(cfg.Data.AnnualSummary),
		MonthlySummary:  cfg.DataPath(cfg.Data.MonthlySummary),
	}, cfg.Delimiter(), logger)

	p := pipeline.New(classifier, tagger, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "data_directory", Value: cfg.Data.Directory},
		logging.Field{Key: "classifier_rules", Value: len(classifier.Rules())})

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      fileStore,
		classifier: classifier,
		tagger:     tagger,
		pipeline:   p,
		runner:     batch.NewRunner(fileStore, p, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the artifact store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetClassifier returns the account classifier.
func (c *Container) GetClassifier() *categorizer.AccountClassifier {
	return c.classifier
}

// GetTagger returns the payee tagger.
func (c *Container) GetTagger() *categorizer.Tagger {
	return c.tagger
}

// GetPipeline returns the computation pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetRunner returns the store-backed batch runner.
func (c *Container) GetRunner() *batch.Runner {
	return c.runner
}
