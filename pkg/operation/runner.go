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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	r.logger.Debug().Bool("async", r.async).Msg("running operation")
	if r.async {
		return r.runAsync(ctx, op)
	}
	return r.runSync(ctx, op)
}

// 🔄 runSync runs an operation synchronously
func (r *OperationRunner) runSync(ctx context.Context, op Operation) error {
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}

// ⚡ runAsync runs an operation in the background and stops waiting for it
// once ctx is done
func (r *OperationRunner) runAsync(ctx context.Context, op Operation) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	}
}
