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
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sedboy/cmd/sedboy/opts"
	"github.com/walteh/sedboy/pkg/sed"
	"gitlab.com/tozd/go/errors"
)

// NewExecCmd creates a new exec command
func NewExecCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec COMMAND [TEXT...]",
		Short: "Apply a substitution command to text",
		Long: `Exec applies a single substitution command to TEXT, or to standard input
when no TEXT is given. TEXT arguments are joined with single spaces.

  sedboy exec 's/a/b/g' banana
  echo banana | sedboy exec 's/(an)+/[$0]/'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx).With().Str("command", "exec").Logger()

			command, err := sed.Parse(args[0])
			if err != nil {
				return errors.Errorf("not a substitution command: %w", err)
			}
			logger.Debug().
				Str("pattern", command.Pattern).
				Str("replacement", command.Replacement).
				Str("scope", command.Scope.String()).
				Msg("parsed command")

			fromArgs := len(args) > 1
			var target string
			if fromArgs {
				target = strings.Join(args[1:], " ")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				target = string(data)
			}

			out, err := command.Execute(target)
			if err != nil {
				return errors.Errorf("executing %s: %w", command, err)
			}

			if fromArgs {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return err
		},
	}

	return cmd
}
