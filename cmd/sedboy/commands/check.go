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

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/sedboy/cmd/sedboy/opts"
	"github.com/walteh/sedboy/pkg/sed"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check COMMAND...",
		Short: "Validate substitution commands",
		Long: `Check parses and compiles each COMMAND and prints its canonical form.
It fails if any command is malformed or has an invalid pattern.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			invalid := 0
			for _, arg := range args {
				command, err := checkCommand(arg)
				if err != nil {
					invalid++
					fmt.Fprintf(out, "%s %q: %s\n", color.RedString("✗"), arg, describe(err))
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n",
					color.GreenString("✓"),
					command,
					color.HiBlackString("(scope: %s)", command.Scope))
			}

			if invalid > 0 {
				return errors.Errorf("%d of %d command(s) invalid", invalid, len(args))
			}
			return nil
		},
	}

	return cmd
}

func checkCommand(arg string) (*sed.Command, error) {
	command, err := sed.Parse(arg)
	if err != nil {
		return nil, err
	}
	if _, err := command.Compile(); err != nil {
		return nil, err
	}
	return command, nil
}

// describe names the error kind for display
func describe(err error) string {
	switch {
	case errors.Is(err, sed.ErrMalformed):
		return "not a substitution command"
	case errors.Is(err, sed.ErrInvalidPattern):
		var perr *sed.PatternError
		if errors.As(err, &perr) {
			return fmt.Sprintf("invalid pattern: %s", perr.Err)
		}
		return "invalid pattern"
	default:
		return err.Error()
	}
}
