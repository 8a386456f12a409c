// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads deen's configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	// ErrInvalid indicates an invalid configuration value.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is deen's configuration. Values are read from an optional TOML or
// YAML file and overridden by environment variables.
type Config struct {
	// Root is the directory holding the installed dictionary and its index.
	Root string `toml:"root" yaml:"root" env:"DEEN_ROOT" env-description:"dictionary directory"`

	// Results is the maximum number of entries a search returns.
	Results int `toml:"results" yaml:"results" env:"DEEN_RESULTS" env-default:"10" env-description:"maximum search results"`

	// Trace enables debug logging.
	Trace bool `toml:"trace" yaml:"trace" env:"DEEN_TRACE" env-description:"enable debug logging"`

	// CommitEvery is the number of dictionary lines indexed per transaction.
	CommitEvery int `toml:"commit_every" yaml:"commit_every" env:"DEEN_COMMIT_EVERY" env-default:"512" env-description:"lines per index transaction"`
}

// Load reads the configuration file at path and the environment. When path
// is empty only the environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks that configuration values are in range.
func (c *Config) Validate() error {
	if c.Results <= 0 {
		return fmt.Errorf("%w: results must be positive: %d", ErrInvalid, c.Results)
	}
	if c.CommitEvery <= 0 {
		return fmt.Errorf("%w: commit_every must be positive: %d", ErrInvalid, c.CommitEvery)
	}
	return nil
}
