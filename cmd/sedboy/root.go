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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sedboy/cmd/sedboy/commands"
	"github.com/walteh/sedboy/cmd/sedboy/opts"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "sedboy",
		Short: "Apply sed-style substitution commands",
		Long: `sedboy parses substitution commands of the form s/PATTERN/REPLACEMENT[/g]
and applies them to text, to files selected by a rule file, or to a chat-like
stream of messages.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, rootOpts.Debug)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewExecCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewApplyCmd(rootOpts),
		commands.NewChatCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".sedboy.yaml", "rule file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging raises the context logger's level based on flags
func setupLogging(cmd *cobra.Command, debug bool) {
	ctx := cmd.Context()
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.Ctx(ctx).Level(level)
	cmd.SetContext(logger.WithContext(ctx))
}
