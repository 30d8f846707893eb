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
	"bufio"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/sedboy/cmd/sedboy/opts"
	"github.com/walteh/sedboy/pkg/reply"
	"gitlab.com/tozd/go/errors"
)

// NewChatCmd creates a new chat command
func NewChatCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Correct messages read line by line",
		Long: `Chat reads messages from standard input, one per line. A line that is a
substitution command is applied to the most recent line that was not one, and
the corrected text is printed. Other lines are only remembered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			router := reply.NewRouter()

			replyPrinter := pterm.Success.WithPrefix(pterm.Prefix{Text: "↪"}).WithWriter(cmd.OutOrStdout())
			errorPrinter := pterm.Error.WithWriter(cmd.OutOrStdout())

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for n := 1; scanner.Scan(); n++ {
				msg := &reply.Message{ID: strconv.Itoa(n), Text: scanner.Text()}

				r, ok, err := router.Handle(ctx, msg)
				if err != nil {
					errorPrinter.Println(err.Error())
					continue
				}
				if ok {
					replyPrinter.Println(r.Text)
				}
			}
			if err := scanner.Err(); err != nil {
				return errors.Errorf("reading messages: %w", err)
			}
			return nil
		},
	}

	return cmd
}
