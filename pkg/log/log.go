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
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	countWidth   = 15 // Width for replacement count
	statusWidth  = 15 // Width for status text
	headerPrefix = "sedboy"
)

// 🎯 FileOperation represents a rewritten (or inspected) file for logging
type FileOperation struct {
	Path         string // File path relative to the apply root
	Status       string // Operation status
	Rules        int    // Number of rules applied to the file
	Replacements int    // Number of replacements made
	IsModified   bool   // Whether the content changed
	IsDryRun     bool   // Whether the change was left unwritten
	Err          error  // Failure while processing the file
}

// 📦 RunOperation represents one apply run for logging
type RunOperation struct {
	Root   string // Directory rules are applied in
	Rules  int    // Number of configured rules
	DryRun bool   // Whether files are left untouched
}

// 📊 Summary totals the file operations of a run
type Summary struct {
	Files        int
	Modified     int
	Replacements int
	Failed       int
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []FileOperation
}

// 🏭 New creates a new logger writing structured events to stderr
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a new logger mirroring events to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsModified && op.IsDryRun:
		symbol = '~'
		symbolColor = color.FgYellow
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	count := fmt.Sprintf("%d replaced", op.Replacements)

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", countWidth, count)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.Str("file", op.Path).
		Str("status", op.Status).
		Int("rules", op.Rules).
		Int("replacements", op.Replacements).
		Bool("is_modified", op.IsModified).
		Bool("is_dry_run", op.IsDryRun).
		Msg("file operation")
}

// 📝 StartRun starts a new apply run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	mode := "write"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[applying %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d rule(s)", op.Rules),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("root", op.Root).
		Int("rules", op.Rules).
		Bool("dry_run", op.DryRun).
		Msg("starting apply run")
}

// 📝 EndRun ends the current run and returns its totals
func (l *Logger) EndRun(ctx context.Context) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum Summary
	for _, op := range l.operations {
		sum.Files++
		sum.Replacements += op.Replacements
		if op.Err != nil {
			sum.Failed++
		}
		if op.IsModified {
			sum.Modified++
		}
	}

	if l.currentRun == nil {
		return sum
	}

	l.zlog.Info().
		Str("root", l.currentRun.Root).
		Int("files", sum.Files).
		Int("modified", sum.Modified).
		Int("replacements", sum.Replacements).
		Int("failed", sum.Failed).
		Msg("apply run complete")

	l.currentRun = nil
	l.operations = nil
	return sum
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint(headerPrefix)
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
