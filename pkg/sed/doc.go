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

// Package sed parses and executes sed-style substitution commands.
//
// A command has the form
//
//	s/PATTERN/REPLACEMENT[/[g]]
//
// PATTERN is compiled with the standard regexp package (RE2 syntax) and
// REPLACEMENT may reference capture groups the way regexp.Expand does
// ($1, ${1}, ${name}, $$ for a literal dollar sign).
//
// There is no escaping: a literal '/' cannot appear in PATTERN or
// REPLACEMENT. The only recognized flag is 'g'.
//
// Note that "s//g" is read as an empty pattern with the replacement "g",
// the same way "s/a/g" replaces "a" with "g". Use "s///g" for a global
// substitution with an empty pattern and replacement.
//
// Basic usage:
//
//	cmd, err := sed.Parse("s/(\\w+)@/${1} at /g")
//	if err != nil {
//		// errors.Is(err, sed.ErrMalformed)
//	}
//	out, err := cmd.Execute("alice@ bob@")
//	// out == "alice at  bob at "
//
// Parsing and execution are pure: both are safe to call from any number of
// goroutines.
package sed
