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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 FileOperation describes one patched file
type FileOperation struct {
	Path         string // Absolute file path
	IsModified   bool   // Whether the content changed
	Replacements int    // Number of matches replaced
}

// 🎯 Logger writes the user-facing console lines and carries the zerolog
// logger placed in context by NewContext
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a logger printing user lines to console and zerolog events
// to diagnostics
func New(console, diagnostics io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		zlog:    zerolog.New(diagnostics).With().Timestamp().Logger().Level(level),
		console: console,
	}
}

type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger, and its zerolog logger, to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Fixed prints "Fixed <path>" and logs the operation to the context logger
func (l *Logger) Fixed(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Fixed %s\n", op.Path)

	zerolog.Ctx(ctx).Info().
		Str("file", op.Path).
		Bool("is_modified", op.IsModified).
		Int("replacements", op.Replacements).
		Msg("file patched")
}

// 📝 Error prints err with its stack trace to w
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %+v\n", color.New(color.FgRed).Sprint("Error:"), err)
}
