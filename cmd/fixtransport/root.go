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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/fixtransport/pkg/log"
	"github.com/walteh/fixtransport/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags and the I/O the root command runs against
type rootOpts struct {
	debug  bool
	stdout io.Writer
	stderr io.Writer
	jobs   func(ctx context.Context) ([]patch.Job, error)
}

// newRootCmd creates the root command, which runs every built-in job
func newRootCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtransport",
		Short: "Migrate chat transport calls back to the api/append/reload API",
		Long: `fixtransport rewrites two known source files in place:
1. use-multi-chat.ts: transport option, sendMessage calls and the message type import
2. project-view.tsx: transport option, message type import and sendMessage/regenerate

Each file is read, patched with its substitutions in order and written back.
The first failure stops the run; files already rewritten stay rewritten.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.SetOut(opts.stdout)
	cmd.SetErr(opts.stderr)
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// run sets up logging and applies the jobs in order
func run(ctx context.Context, opts *rootOpts) error {
	level := zerolog.WarnLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	logger := log.New(opts.stdout, zerolog.ConsoleWriter{Out: opts.stderr}, level)
	ctx = log.NewContext(ctx, logger)

	jobs, err := opts.jobs(ctx)
	if err != nil {
		return errors.Errorf("loading jobs: %w", err)
	}

	if _, err := patch.New(logger).Run(ctx, jobs); err != nil {
		return errors.Errorf("running jobs: %w", err)
	}

	return nil
}
