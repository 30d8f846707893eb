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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMalformed is matched by every error returned from Parse
	ErrMalformed = errors.Base("malformed substitution command")

	// ErrInvalidPattern is matched by every error returned when a
	// command's pattern does not compile
	ErrInvalidPattern = errors.Base("invalid substitution pattern")
)

// ❌ ParseError reports input that does not follow the substitution grammar
type ParseError struct {
	Input     string // full input given to the parser
	Remaining string // input left when the grammar stopped matching
}

func (e *ParseError) Error() string {
	if e.Remaining == "" {
		return fmt.Sprintf("%s: %q", ErrMalformed, e.Input)
	}
	return fmt.Sprintf("%s: %q: unexpected %q", ErrMalformed, e.Input, e.Remaining)
}

// Is makes errors.Is(err, ErrMalformed) true
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// ❌ PatternError reports a pattern the regexp engine rejected
type PatternError struct {
	Pattern string
	Err     error // diagnostic from regexp.Compile
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidPattern, e.Pattern, e.Err)
}

// Is makes errors.Is(err, ErrInvalidPattern) true
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
