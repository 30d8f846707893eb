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

package sed

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Program is a command whose pattern has been compiled
type Program struct {
	cmd *Command
	re  *regexp.Regexp
}

// 📊 Result is the outcome of running a Program over a target text
type Result struct {
	Text    string // target with substitutions applied
	Count   int    // number of matches replaced
	Changed bool   // whether Text differs from the target
}

// 🏗️ Compile compiles the command's pattern with default regexp options.
//
// Errors satisfy errors.Is(err, ErrInvalidPattern) and can be unwrapped to
// the regexp/syntax diagnostic.
func (c *Command) Compile() (*Program, error) {
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, errors.WithStack(&PatternError{
			Pattern: c.Pattern,
			Err:     err,
		})
	}
	return &Program{cmd: c, re: re}, nil
}

// Command returns the command the program was compiled from
func (p *Program) Command() *Command {
	return p.cmd
}

// 🔄 Replace applies the program to target.
//
// When nothing matches, Text is target itself.
func (p *Program) Replace(target string) Result {
	if p.cmd.IsGlobal() {
		return p.replaceAll(target)
	}
	return p.replaceFirst(target)
}

func (p *Program) replaceFirst(target string) Result {
	loc := p.re.FindStringSubmatchIndex(target)
	if loc == nil {
		return Result{Text: target}
	}

	buf := make([]byte, 0, len(target)+len(p.cmd.Replacement))
	buf = append(buf, target[:loc[0]]...)
	buf = p.re.ExpandString(buf, p.cmd.Replacement, target, loc)
	buf = append(buf, target[loc[1]:]...)

	out := string(buf)
	return Result{Text: out, Count: 1, Changed: out != target}
}

func (p *Program) replaceAll(target string) Result {
	matches := p.re.FindAllStringSubmatchIndex(target, -1)
	if len(matches) == 0 {
		return Result{Text: target}
	}

	buf := make([]byte, 0, len(target)+len(matches)*len(p.cmd.Replacement))
	last := 0
	for _, loc := range matches {
		buf = append(buf, target[last:loc[0]]...)
		buf = p.re.ExpandString(buf, p.cmd.Replacement, target, loc)
		last = loc[1]
	}
	buf = append(buf, target[last:]...)

	out := string(buf)
	return Result{Text: out, Count: len(matches), Changed: out != target}
}

// 🎯 Execute compiles the command and applies it to target
func (c *Command) Execute(target string) (string, error) {
	prog, err := c.Compile()
	if err != nil {
		return "", err
	}
	return prog.Replace(target).Text, nil
}

// Execute applies cmd to target. See Command.Execute.
func Execute(cmd *Command, target string) (string, error) {
	if cmd == nil {
		return "", errors.New("nil command")
	}
	return cmd.Execute(target)
}
