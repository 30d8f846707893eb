// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/sedboy/pkg/sed"
	"gitlab.com/tozd/go/errors"
)

// DefaultWorkers is used when a config does not set workers
const DefaultWorkers = 4

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes read from filename
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule applies one substitution command to a set of files
type Rule struct {
	Command string   `json:"command" yaml:"command" hcl:"command"`
	Files   []string `json:"files" yaml:"files" hcl:"files"`                                // doublestar globs, relative to the apply root
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"` // doublestar globs excluded from Files
}

// 📚 Config represents the complete configuration
type Config struct {
	Workers int    `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	DryRun  bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Rules   []Rule `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().
		Int("rules", len(cfg.Rules)).
		Int("workers", cfg.Workers).
		Bool("dry_run", cfg.DryRun).
		Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	for i, rule := range cfg.Rules {
		if err := rule.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

// 🔍 Validate checks that the command compiles and the globs are usable
func (r *Rule) Validate() error {
	cmd, err := sed.Parse(r.Command)
	if err != nil {
		return errors.Errorf("parsing command: %w", err)
	}
	if _, err := cmd.Compile(); err != nil {
		return errors.Errorf("compiling command: %w", err)
	}

	if len(r.Files) == 0 {
		return errors.Errorf("files is required")
	}
	for _, pattern := range r.Files {
		if err := validateGlob(pattern); err != nil {
			return errors.Errorf("files: %w", err)
		}
	}
	for _, pattern := range r.Ignore {
		if err := validateGlob(pattern); err != nil {
			return errors.Errorf("ignore: %w", err)
		}
	}

	return nil
}

func validateGlob(pattern string) error {
	if pattern == "" {
		return errors.Errorf("empty glob pattern")
	}
	if filepath.IsAbs(pattern) {
		return errors.Errorf("glob pattern %q must be relative", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return errors.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d rule(s), %d worker(s), dry_run=%t", len(cfg.Rules), cfg.Workers, cfg.DryRun)
}
