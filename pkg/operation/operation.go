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

	"github.com/walteh/sedboy/pkg/config"
	"github.com/walteh/sedboy/pkg/log"
	"github.com/walteh/sedboy/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by an OperationRunner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies of an operation
type Options struct {
	// Config holds the rules to apply
	Config *config.Config
	// Root is the directory globs are resolved against
	Root string
	// Replacer rewrites file content
	Replacer text.TextReplacer
	// Logger reports file operations
	Logger *log.Logger
}

func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Root == "" {
		return errors.Errorf("root is required")
	}
	if o.Replacer == nil {
		return errors.Errorf("replacer is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}
