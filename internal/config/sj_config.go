package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type SJConfig struct {
	Login                string        `mapstructure:"login"`
	Password             string        `mapstructure:"password"`
	ClientID             string        `mapstructure:"client_id"`
	ClientSecret         string        `mapstructure:"client_secret"`
	BaseURL              string        `mapstructure:"base_url"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
}

func (config SJConfig) validate() error {
	var errs []error

	if config.Login == "" {
		errs = append(errs, fmt.Errorf("missing variable: sj login"))
	}
	if config.Password == "" {
		errs = append(errs, fmt.Errorf("missing variable: sj password"))
	}
	if config.ClientID == "" {
		errs = append(errs, fmt.Errorf("missing variable: sj client id"))
	}
	if config.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("missing variable: sj client secret"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config SJConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("sj.login", "SJ_LOGIN")
	if err != nil {
		return err
	}

	err = viper.BindEnv("sj.password", "SJ_PASSWORD")
	if err != nil {
		return err
	}

	err = viper.BindEnv("sj.client_id", "SJ_CLIENT_ID")
	if err != nil {
		return err
	}

	return viper.BindEnv("sj.client_secret", "SJ_CLIENT_SECRET")
}
