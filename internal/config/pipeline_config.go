package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

type PipelineConfig struct {
	Catalogues []int `mapstructure:"catalogues"`
	TownID     int   `mapstructure:"town_id"`
	Pages      int   `mapstructure:"pages"`
	PerPage    int   `mapstructure:"per_page"`
	Workers    int   `mapstructure:"workers"`
	SourceID   int   `mapstructure:"source_id"`

	// Cutoff is the minimal token-set similarity (0-100) accepted by the matcher.
	Cutoff int `mapstructure:"similarity_cutoff"`

	// Schedule is an optional cron expression; empty means run once and exit.
	Schedule string `mapstructure:"schedule"`
}

func setPipelineDefaults() {
	viper.SetDefault("pipeline.town_id", 13)
	viper.SetDefault("pipeline.pages", 5)
	viper.SetDefault("pipeline.per_page", 100)
	viper.SetDefault("pipeline.workers", 4)
	viper.SetDefault("pipeline.similarity_cutoff", 75)
}

func (config PipelineConfig) validate() error {
	var errs []error

	if len(config.Catalogues) == 0 {
		errs = append(errs, fmt.Errorf("missing variable: pipeline catalogues"))
	}
	if config.Pages <= 0 {
		errs = append(errs, fmt.Errorf("pages must be positive"))
	}
	if config.PerPage <= 0 || config.PerPage > 100 {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and 100"))
	}
	if config.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive"))
	}
	if config.Cutoff <= 0 || config.Cutoff > 100 {
		errs = append(errs, fmt.Errorf("similarity_cutoff must be between 1 and 100"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
