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

package patch

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Substitution replaces every match of Pattern with Replacement
type Substitution struct {
	Description string         // Optional human note, logged at debug level
	Pattern     *regexp.Regexp // Compiled match pattern
	Replacement string         // Template, $1 and ${name} expand to submatches
}

// 🏭 NewSubstitution compiles pattern into a Substitution
func NewSubstitution(description, pattern, replacement string) (Substitution, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Substitution{}, errors.Errorf("compiling substitution: %w", &Error{
			Op:   "compile",
			Path: pattern,
			Kind: ErrPattern,
			Err:  err,
		})
	}
	return Substitution{
		Description: description,
		Pattern:     re,
		Replacement: replacement,
	}, nil
}

// 🏭 MustSubstitution is like NewSubstitution but panics on a bad pattern
func MustSubstitution(description, pattern, replacement string) Substitution {
	sub, err := NewSubstitution(description, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return sub
}

// 🔄 Apply runs subs over content in order, each one seeing the output of the
// previous. It returns the final text and the number of matches per substitution.
func Apply(content string, subs []Substitution) (string, []int) {
	counts := make([]int, len(subs))
	for i, sub := range subs {
		if sub.Pattern == nil {
			continue
		}
		counts[i] = len(sub.Pattern.FindAllStringIndex(content, -1))
		if counts[i] == 0 {
			continue
		}
		content = sub.Pattern.ReplaceAllString(content, sub.Replacement)
	}
	return content, counts
}
