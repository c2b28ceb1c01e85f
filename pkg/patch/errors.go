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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Sentinel errors, one per failure kind. Match with errors.Is.
var (
	ErrNotFound = errors.Base("file not found")
	ErrIO       = errors.Base("file i/o failed")
	ErrPattern  = errors.Base("invalid pattern")
)

// 🚨 Error describes a failed read, write or pattern compilation
type Error struct {
	Op   string // read, write or compile
	Path string // file path or pattern source
	Kind error  // one of ErrNotFound, ErrIO, ErrPattern
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}
