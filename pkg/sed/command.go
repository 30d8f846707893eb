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

import "strings"

// 🎯 Scope controls how many matches a substitution replaces
type Scope int

const (
	FirstOnly Scope = iota // replace the leftmost match only
	All                    // replace every non-overlapping match
)

// String returns a string representation of Scope
func (s Scope) String() string {
	switch s {
	case FirstOnly:
		return "first"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// 📦 Command is a parsed substitution command.
//
// Pattern and Replacement are substrings of the parsed input and share its
// memory. A Command is never modified after Parse returns it.
type Command struct {
	Pattern     string // regexp source, may be empty
	Replacement string // expansion template, may be empty
	Scope       Scope
}

// IsGlobal reports whether every match is replaced
func (c *Command) IsGlobal() bool {
	return c.Scope == All
}

// 📝 String renders the command in its canonical form
func (c *Command) String() string {
	var b strings.Builder
	b.Grow(len(c.Pattern) + len(c.Replacement) + 5)
	b.WriteString(prefix)
	b.WriteByte(delimiter)
	b.WriteString(c.Pattern)
	b.WriteByte(delimiter)
	b.WriteString(c.Replacement)
	if c.IsGlobal() {
		b.WriteByte(delimiter)
		b.WriteByte(globalFlag)
	}
	return b.String()
}
