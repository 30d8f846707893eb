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

package operation

import (
	"bytes"
	"context"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/sedboy/pkg/config"
	"github.com/walteh/sedboy/pkg/log"
	"github.com/walteh/sedboy/pkg/status"
	"github.com/walteh/sedboy/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📄 Target is a file together with the rules that apply to it
type Target struct {
	Path  string // slash separated, relative to the root
	Rules []text.ReplacementRule
}

var _ Operation = (*ApplyOperation)(nil)

// 📦 ApplyOperation rewrites every file matched by the configured rules
type ApplyOperation struct {
	opts    Options
	files   *status.Manager
	summary log.Summary
}

// 📦 NewApplyOperation creates a new apply operation
func NewApplyOperation(opts Options) (*ApplyOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &ApplyOperation{opts: opts, files: status.New(opts.Root)}, nil
}

// Summary returns the totals of the last Execute call
func (op *ApplyOperation) Summary() log.Summary {
	return op.summary
}

// 🏃 Execute runs the apply operation
func (op *ApplyOperation) Execute(ctx context.Context) error {
	cfg := op.opts.Config

	targets, err := ResolveTargets(ctx, op.opts.Root, cfg.Rules)
	if err != nil {
		return errors.Errorf("resolving targets: %w", err)
	}

	op.opts.Logger.StartRun(ctx, log.RunOperation{
		Root:   op.opts.Root,
		Rules:  len(cfg.Rules),
		DryRun: cfg.DryRun,
	})
	defer func() {
		op.summary = op.opts.Logger.EndRun(ctx)
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, target := range targets {
		eg.Go(func() error {
			return op.processFile(ctx, target)
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

// 📄 processFile rewrites a single file
func (op *ApplyOperation) processFile(ctx context.Context, target Target) error {
	entry := log.FileOperation{
		Path:     target.Path,
		Rules:    len(target.Rules),
		IsDryRun: op.opts.Config.DryRun,
	}

	st, err := op.rewrite(ctx, target, &entry)
	if err != nil {
		st = status.StatusFailed
		entry.Err = err
	}
	entry.Status = st.String()
	op.opts.Logger.LogFileOperation(ctx, entry)

	if err != nil {
		return errors.Errorf("processing file %s: %w", target.Path, err)
	}
	return nil
}

func (op *ApplyOperation) rewrite(ctx context.Context, target Target, entry *log.FileOperation) (status.FileStatus, error) {
	content, info, err := op.files.ReadFile(ctx, target.Path)
	if err != nil {
		return status.StatusFailed, err
	}

	result, err := op.opts.Replacer.ReplaceText(ctx, bytes.NewReader(content), target.Rules)
	if err != nil {
		return status.StatusFailed, errors.Errorf("replacing text: %w", err)
	}

	entry.Replacements = result.ReplacementCount
	entry.IsModified = result.WasModified

	switch {
	case !result.WasModified:
		return status.StatusUnchanged, nil
	case op.opts.Config.DryRun:
		return status.StatusWouldModify, nil
	}

	if err := op.files.WriteFileAtomic(ctx, target.Path, result.ModifiedContent, info.Mode, info.Checksum); err != nil {
		return status.StatusFailed, errors.Errorf("writing file: %w", err)
	}
	return status.StatusModified, nil
}

// 🔍 ResolveTargets expands rule globs under root.
//
// Targets are sorted by path and carry their rules in config order. A rule
// whose globs match a file more than once is applied to it once.
func ResolveTargets(ctx context.Context, root string, rules []config.Rule) ([]Target, error) {
	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(root)

	byPath := map[string][]text.ReplacementRule{}
	for i, rule := range rules {
		matched := map[string]string{}
		for _, pattern := range rule.Files {
			files, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Errorf("rule %d: globbing %q: %w", i, pattern, err)
			}
			for _, file := range files {
				if _, ok := matched[file]; !ok {
					matched[file] = pattern
				}
			}
		}

		for file, pattern := range matched {
			ignored, err := isIgnored(rule.Ignore, file)
			if err != nil {
				return nil, errors.Errorf("rule %d: %w", i, err)
			}
			if ignored {
				logger.Debug().Str("file", file).Int("rule", i).Msg("ignored by pattern")
				continue
			}
			byPath[file] = append(byPath[file], text.ReplacementRule{
				Command:        rule.Command,
				FileFilterGlob: pattern,
			})
		}
	}

	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	targets := make([]Target, 0, len(paths))
	for _, path := range paths {
		targets = append(targets, Target{Path: path, Rules: byPath[path]})
	}

	logger.Debug().Int("files", len(targets)).Msg("resolved targets")
	return targets, nil
}

func isIgnored(patterns []string, file string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, file)
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

