package config

import (
	"fmt"
	"log"

	"github.com/cognicore/docnorm/pkg/docnorm/batch"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/quality"
	"github.com/cognicore/docnorm/pkg/docnorm/rewrite"
)

// Loader loads the configuration and constructs components
type Loader struct {
	ConfigPath string
	// EnvFiles are passed to godotenv; empty means ".env".
	EnvFiles []string
	// SkipEnv disables the DOCNORM_* overlay.
	SkipEnv bool
	Logger  *log.Logger
}

// Components holds the wired normalization components
type Components struct {
	Config     *Config
	Pipeline   *rewrite.Pipeline
	Applicator *javadoc.Applicator
	Processor  *batch.Processor
}

// Load reads the configuration and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg, err := Load(l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !l.SkipEnv {
		cfg.ApplyEnv(l.EnvFiles...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Build(cfg, l.Logger), nil
}

// Build wires components from an already loaded configuration.
func Build(cfg *Config, logger *log.Logger) *Components {
	if logger == nil {
		logger = log.Default()
	}

	opts := []rewrite.Option{rewrite.WithDotInvocation(cfg.DotInvocation)}
	if cfg.QualityThreshold > 0 {
		filter := quality.New(cfg.QualityThreshold, func(sentence string, ratio float64) {
			logger.Printf("dropped sentence (ratio %.2f): %q", ratio, sentence)
		})
		opts = append(opts, rewrite.WithQualityFilter(filter))
	}
	pipeline := rewrite.New(opts...)
	applicator := javadoc.NewApplicator(pipeline)

	var keep func(javadoc.Record) bool
	if cfg.KeepEmpty {
		keep = func(javadoc.Record) bool { return true }
	}

	return &Components{
		Config:     cfg,
		Pipeline:   pipeline,
		Applicator: applicator,
		Processor: batch.New(batch.Options{
			Transformer: applicator,
			Workers:     cfg.Workers,
			Keep:        keep,
			Logger:      logger,
		}),
	}
}
