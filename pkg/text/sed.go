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

package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/sedboy/pkg/sed"
	"gitlab.com/tozd/go/errors"
)

// SedTextReplacer implements TextReplacer with substitution commands
type SedTextReplacer struct{}

// NewSedTextReplacer creates a new SedTextReplacer
func NewSedTextReplacer() *SedTextReplacer {
	return &SedTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SedTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	programs, err := compileRules(rules)
	if err != nil {
		return nil, err
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := string(originalContent)
	for i, prog := range programs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		res := prog.Replace(current)
		logger.Trace().
			Str("command", rules[i].Command).
			Int("replacements", res.Count).
			Bool("changed", res.Changed).
			Msg("applied rule")

		result.ReplacementCount += res.Count
		current = res.Text
	}

	if current != string(originalContent) {
		result.WasModified = true
		result.ModifiedContent = []byte(current)
	}
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SedTextReplacer) ValidateRules(rules []ReplacementRule) error {
	if _, err := compileRules(rules); err != nil {
		return err
	}
	for i, rule := range rules {
		if rule.FileFilterGlob == "" {
			return errors.Errorf("rule %d: file_filter_glob is required", i)
		}
	}
	return nil
}

func compileRules(rules []ReplacementRule) ([]*sed.Program, error) {
	programs := make([]*sed.Program, 0, len(rules))
	for i, rule := range rules {
		cmd, err := sed.Parse(rule.Command)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		prog, err := cmd.Compile()
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		programs = append(programs, prog)
	}
	return programs, nil
}
