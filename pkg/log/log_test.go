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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "main.go",
					Status:       "UPDATED",
					Rules:        1,
					Replacements: 2,
					IsModified:   true,
				})
			},
			wantLogs: []string{
				"⟳ main.go                             2 replaced      UPDATED",
			},
		},
		{
			name: "start_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:  "/tmp/project",
					Rules: 3,
				})
			},
			wantLogs: []string{
				"[applying /tmp/project]",
				"◆ 3 rule(s) • write",
			},
		},
		{
			name: "start_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:   "/tmp/project",
					Rules:  1,
					DryRun: true,
				})
			},
			wantLogs: []string{
				"[applying /tmp/project]",
				"◆ 1 rule(s) • dry run",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying rules")
			},
			wantLogs: []string{
				"sedboy • applying rules",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "modified_file",
			op: FileOperation{
				Path:         "test.txt",
				Status:       "UPDATED",
				Replacements: 3,
				IsModified:   true,
			},
			want: "    ⟳ test.txt                            3 replaced      UPDATED        ",
		},
		{
			name: "dry_run_file",
			op: FileOperation{
				Path:         "test.txt",
				Status:       "WOULD UPDATE",
				Replacements: 1,
				IsModified:   true,
				IsDryRun:     true,
			},
			want: "    ~ test.txt                            1 replaced      WOULD UPDATE   ",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "test.txt",
				Status: "no change",
			},
			want: "    • test.txt                            0 replaced      no change      ",
		},
		{
			name: "failed_file",
			op: FileOperation{
				Path:   "test.txt",
				Status: "FAILED",
				Err:    errors.New("permission denied"),
			},
			want: "    ✗ test.txt                            0 replaced      FAILED         ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want+"\n", buf.String(), "formatted output should match")
		})
	}
}

func TestEndRun(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())
	ctx := context.Background()

	logger.StartRun(ctx, RunOperation{Root: "/tmp", Rules: 2})
	logger.LogFileOperation(ctx, FileOperation{Path: "a", Replacements: 2, IsModified: true})
	logger.LogFileOperation(ctx, FileOperation{Path: "b"})
	logger.LogFileOperation(ctx, FileOperation{Path: "c", Err: errors.New("boom")})

	sum := logger.EndRun(ctx)
	assert.Equal(t, Summary{Files: 3, Modified: 1, Replacements: 2, Failed: 1}, sum)

	// a finished run starts from scratch
	assert.Equal(t, Summary{}, logger.EndRun(ctx))
}
