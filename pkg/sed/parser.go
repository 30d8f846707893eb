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
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	prefix     = "s"
	delimiter  = '/'
	globalFlag = 'g'

	terminator       = "/"
	globalTerminator = "/g"
)

// 🎯 Parse parses a complete substitution command.
//
// The whole input must follow the grammar; nothing is trimmed. Every error
// returned satisfies errors.Is(err, ErrMalformed).
func Parse(input string) (*Command, error) {
	_, cmd, err := ParsePrefix(input)
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

// 🔍 ParsePrefix parses a substitution command and returns the input it did
// not consume along with it.
//
// The grammar always consumes the whole input when it succeeds, so remaining
// is empty unless err is non-nil, in which case it holds the text at which
// matching stopped.
func ParsePrefix(input string) (remaining string, cmd *Command, err error) {
	rest, ok := strings.CutPrefix(input, prefix)
	if !ok {
		return input, nil, malformed(input, input)
	}

	// opening delimiter of the pattern section
	if rest == "" || rest[0] != delimiter {
		return rest, nil, malformed(input, rest)
	}
	rest = rest[1:]

	// the pattern section must be closed by a second delimiter
	pattern, rest := takeUntilDelimiter(rest)
	if rest == "" {
		return rest, nil, malformed(input, rest)
	}
	rest = rest[1:]

	// the replacement section runs to the next delimiter or end of input
	replacement, rest := takeUntilDelimiter(rest)

	var scope Scope
	switch rest {
	case "", terminator:
		scope = FirstOnly
	case globalTerminator:
		scope = All
	default:
		return rest, nil, malformed(input, rest)
	}

	return "", &Command{
		Pattern:     pattern,
		Replacement: replacement,
		Scope:       scope,
	}, nil
}

// takeUntilDelimiter splits s before the first delimiter. If there is none,
// all of s is taken and rest is empty.
func takeUntilDelimiter(s string) (taken, rest string) {
	i := strings.IndexByte(s, delimiter)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func malformed(input, remaining string) error {
	return errors.WithStack(&ParseError{
		Input:     input,
		Remaining: remaining,
	})
}
