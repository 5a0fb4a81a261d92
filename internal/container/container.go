// Package container provides dependency injection for the lbs-invoice
// application. It centralizes the creation and wiring of the pipeline
// components, making them explicit and testable.
package container

import (
	"fmt"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/config"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/metrics"
	"rootedweb/lbs-invoice/internal/render"
	"rootedweb/lbs-invoice/internal/server"
	"rootedweb/lbs-invoice/internal/session"
	"rootedweb/lbs-invoice/internal/sheetparser"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; dependencies are only reachable
// through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	parser     *sheetparser.Parser
	aggregator *aggregator.Aggregator
	generator  *render.Generator
	store      *session.MemoryStore
	metrics    *metrics.Metrics
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger wires dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		parser:     sheetparser.New(logger),
		aggregator: aggregator.New(logger),
		generator:  render.NewGenerator(cfg.Report.LogoPath, logger),
		store:      session.NewMemoryStore(cfg.Server.SessionTTL),
		metrics:    metrics.New(),
	}

	logger.Debug("Container initialized successfully",
		logging.F("logo_path", cfg.Report.LogoPath),
		logging.F("output_dir", cfg.Report.OutputDir))

	return c, nil
}

// GetLogger returns the configured logger.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetParser returns the sheet parser.
func (c *Container) GetParser() *sheetparser.Parser { return c.parser }

// GetAggregator returns the report aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator { return c.aggregator }

// GetGenerator returns the PDF generator.
func (c *Container) GetGenerator() *render.Generator { return c.generator }

// GetStore returns the web session store.
func (c *Container) GetStore() *session.MemoryStore { return c.store }

// GetMetrics returns the metric set.
func (c *Container) GetMetrics() *metrics.Metrics { return c.metrics }

// NewWebAPI builds the web server from the configured components.
func (c *Container) NewWebAPI() *server.WebAPI {
	s := c.config.Server
	return server.NewWebAPI(c.logger, server.Config{
		Addr:            s.Addr,
		ShutdownTimeout: s.ShutdownTimeout,
		MaxUploadBytes:  s.MaxUploadMB << 20,
		RateLimitRPS:    s.RateLimitRPS,
		RateLimitBurst:  s.RateLimitBurst,
		OutputDir:       c.config.Report.OutputDir,
	}, server.Dependencies{
		Parser:     c.parser,
		Aggregator: c.aggregator,
		Generator:  c.generator,
		Store:      c.store,
		Metrics:    c.metrics,
	})
}
