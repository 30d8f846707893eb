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

package commands

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sedboy/cmd/sedboy/opts"
	"github.com/walteh/sedboy/pkg/config"
	"github.com/walteh/sedboy/pkg/log"
	"github.com/walteh/sedboy/pkg/operation"
	"github.com/walteh/sedboy/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		root    string
		dryRun  bool
		workers int
		async   bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply rule file substitutions to files",
		Long: `Apply rewrites files according to the rule file.
It will:
1. Load and validate the rule file
2. Expand each rule's file globs under --root
3. Apply the rules to every matched file in order
4. Write back files whose content changed (unless --dry-run)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = dryRun
			}
			if cmd.Flags().Changed("workers") {
				if workers <= 0 {
					return errors.Errorf("--workers must be positive, got %d", workers)
				}
				cfg.Workers = workers
			}

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return errors.Errorf("getting absolute root path: %w", err)
			}

			zlog := zerolog.Ctx(ctx)
			logger := log.NewWithZerolog(cmd.OutOrStdout(), *zlog)
			logger.Header("applying " + cfg.String())
			logger.Infof("rules loaded from %s", cfg.Location())

			op, err := operation.NewApplyOperation(operation.Options{
				Config:   cfg,
				Root:     absRoot,
				Replacer: text.NewSedTextReplacer(),
				Logger:   logger,
			})
			if err != nil {
				return errors.Errorf("creating apply operation: %w", err)
			}

			runner := operation.NewRunner(zlog, async)
			if err := runner.Run(ctx, op); err != nil {
				// a cancelled async run may still be writing its summary
				if ctx.Err() == nil {
					if sum := op.Summary(); sum.Failed > 0 {
						logger.Errorf("%d of %d file(s) failed", sum.Failed, sum.Files)
					}
				}
				return errors.Errorf("applying rules: %w", err)
			}

			sum := op.Summary()
			logger.LogNewline()
			if sum.Files == 0 {
				logger.Warning("no files matched any rule")
			}
			if cfg.DryRun {
				logger.Successf("%d of %d file(s) would change, %d replacement(s)", sum.Modified, sum.Files, sum.Replacements)
			} else {
				logger.Successf("%d of %d file(s) changed, %d replacement(s)", sum.Modified, sum.Files, sum.Replacements)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory rule globs are resolved against")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "number of files processed concurrently")
	cmd.Flags().BoolVar(&async, "async", false, "run in the background and stop waiting on interrupt")

	return cmd
}
