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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/sedboy/pkg/sed"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		errIs       error
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: ".sedboy.yaml",
			config: `
workers: 2
dry_run: true
rules:
  - command: s/foo/bar/g
    files: ["**/*.go"]
    ignore: ["vendor/**"]
  - command: s/(\w+)@old/$1@new/
    files: ["README.md"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Workers, "workers should match")
				assert.True(t, cfg.DryRun, "dry_run should be true")
				require.Len(t, cfg.Rules, 2, "should have 2 rules")
				assert.Equal(t, "s/foo/bar/g", cfg.Rules[0].Command)
				assert.Equal(t, []string{"**/*.go"}, cfg.Rules[0].Files)
				assert.Equal(t, []string{"vendor/**"}, cfg.Rules[0].Ignore)
				assert.Equal(t, `s/(\w+)@old/$1@new/`, cfg.Rules[1].Command)
				assert.Empty(t, cfg.Rules[1].Ignore)
			},
		},
		{
			name:     "minimal_yml_applies_defaults",
			filename: "rules.yml",
			config: `
rules:
  - command: s/a/b/
    files: ["*.txt"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultWorkers, cfg.Workers)
				assert.False(t, cfg.DryRun)
			},
		},
		{
			name:     "valid_json",
			filename: "rules.json",
			config: `{
				"workers": 3,
				"rules": [
					{"command": "s/foo/bar/g", "files": ["*.txt"], "ignore": ["skip.txt"]}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Workers)
				require.Len(t, cfg.Rules, 1)
				assert.Equal(t, "s/foo/bar/g", cfg.Rules[0].Command)
				assert.Equal(t, []string{"skip.txt"}, cfg.Rules[0].Ignore)
			},
		},
		{
			name:     "valid_hcl",
			filename: "rules.hcl",
			config: `
workers = 5
dry_run = true

rule {
  command = "s/foo/bar/g"
  files   = ["**/*.go"]
}

rule {
  command = "s/a/b/"
  files   = ["*.md"]
  ignore  = ["CHANGELOG.md"]
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.Workers)
				assert.True(t, cfg.DryRun)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, "s/foo/bar/g", cfg.Rules[0].Command)
				assert.Equal(t, []string{"CHANGELOG.md"}, cfg.Rules[1].Ignore)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "rules.yaml",
			config:      "rules: []\nbogus: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "rules.json",
			config:      `{"rules": [], "bogus": true}`,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			filename:    "rules.hcl",
			config:      `rule {`,
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_missing_attribute",
			filename:    "rules.hcl",
			config:      "rule {\n  command = \"s/a/b/\"\n}\n",
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "rules.toml",
			config:      `rules = []`,
			errContains: "no parser found",
		},
		{
			name:        "no_rules",
			filename:    "rules.yaml",
			config:      "workers: 1\n",
			errContains: "at least one rule is required",
		},
		{
			name:        "negative_workers",
			filename:    "rules.yaml",
			config:      "workers: -1\nrules:\n  - command: s/a/b/\n    files: [\"*\"]\n",
			errContains: "workers must not be negative",
		},
		{
			name:        "malformed_command",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: replace a with b\n    files: [\"*\"]\n",
			errContains: "rule 0: parsing command",
			errIs:       sed.ErrMalformed,
		},
		{
			name:        "invalid_pattern",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: s/a/b/\n    files: [\"*\"]\n  - command: s/(a/b/\n    files: [\"*\"]\n",
			errContains: "rule 1: compiling command",
			errIs:       sed.ErrInvalidPattern,
		},
		{
			name:        "missing_files",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: s/a/b/\n",
			errContains: "files is required",
		},
		{
			name:        "invalid_glob",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: s/a/b/\n    files: [\"[abc\"]\n",
			errContains: "invalid glob pattern",
		},
		{
			name:        "absolute_glob",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: s/a/b/\n    files: [\"/etc/*\"]\n",
			errContains: "must be relative",
		},
		{
			name:        "invalid_ignore_glob",
			filename:    "rules.yaml",
			config:      "rules:\n  - command: s/a/b/\n    files: [\"*\"]\n    ignore: [\"\"]\n",
			errContains: "ignore: empty glob pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg, err := Load(ctx, path)

			if tt.errContains != "" {
				require.Error(t, err, "should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			require.NoError(t, err, "should not return error")
			require.NotNil(t, cfg, "config should not be nil")
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHCLParser_Env(t *testing.T) {
	p := &HCLParser{
		Environ: func() []string {
			return []string{"YEAR=2025", "OWNER=walteh", "=ignored", "broken"}
		},
	}

	cfg, err := p.Parse(context.Background(), "rules.hcl", []byte(`
rule {
  command = "s/Copyright [0-9]+ .*/Copyright ${env.YEAR} ${env.OWNER}/"
  files   = ["LICENSE"]
}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "s/Copyright [0-9]+ .*/Copyright 2025 walteh/", cfg.Rules[0].Command)
	require.NoError(t, cfg.Validate())
}

func TestHCLParser_EmptyEnv(t *testing.T) {
	p := &HCLParser{Environ: func() []string { return nil }}

	_, err := p.Parse(context.Background(), "rules.hcl", []byte(`
rule {
  command = "s/a/${env.MISSING}/"
  files   = ["*"]
}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding HCL")
}

func TestHCLParser_GroupReferences(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		wantCommand string
		target      string
		want        string
		errContains string
	}{
		{
			name:        "escaped_braced_index",
			command:     `s/(a)b/$${1}c/g`,
			wantCommand: "s/(a)b/${1}c/g",
			target:      "abab",
			want:        "acac",
		},
		{
			name:        "escaped_braced_name",
			command:     `s/(?P<word>a)b/$${word}c/`,
			wantCommand: "s/(?P<word>a)b/${word}c/",
			target:      "abab",
			want:        "acab",
		},
		{
			name:        "bare_index_passes_through",
			command:     `s/(a)b/$1-/g`,
			wantCommand: "s/(a)b/$1-/g",
			target:      "abab",
			want:        "a-a-",
		},
		{
			name:        "unescaped_braced_index_is_interpolated",
			command:     `s/(a)b/${1}c/g`,
			wantCommand: "s/(a)b/1c/g",
			target:      "abab",
			want:        "1c1c",
		},
		{
			name:        "unescaped_braced_name_is_unknown_variable",
			command:     `s/(?P<word>a)b/${word}c/`,
			errContains: "decoding HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &HCLParser{Environ: func() []string { return nil }}

			cfg, err := p.Parse(context.Background(), "rules.hcl", []byte(`
rule {
  command = "`+tt.command+`"
  files   = ["*.txt"]
}
`))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.Len(t, cfg.Rules, 1)
			assert.Equal(t, tt.wantCommand, cfg.Rules[0].Command)
			require.NoError(t, cfg.Validate())

			cmd, err := sed.Parse(cfg.Rules[0].Command)
			require.NoError(t, err)
			got, err := cmd.Execute(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "config.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "config.yml", want: &YAMLParser{}},
		{name: "upper_case_yaml", filename: "CONFIG.YAML", want: &YAMLParser{}},
		{name: "hcl_file", filename: "config.hcl", want: &HCLParser{}},
		{name: "json_file", filename: "config.json", want: &JSONParser{}},
		{name: "unknown_file", filename: "config.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find parser")
				return
			}
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	p := &YAMLParser{}
	Register(p)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Same(t, p, GetParser("x.yaml"), "registered parser should be returned")
	assert.Nil(t, GetParser("x.json"), "unregistered format should not be found")
}

func TestConfig_String(t *testing.T) {
	cfg := &Config{Workers: 2, Rules: []Rule{{Command: "s/a/b/", Files: []string{"*"}}}}
	assert.Equal(t, "1 rule(s), 2 worker(s), dry_run=false", cfg.String())
}
