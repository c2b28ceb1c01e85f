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

// Package patch applies ordered regular-expression substitutions to files in
// place. A Job names one file and its substitutions; a Patcher runs jobs one
// after another and stops at the first failure. Earlier jobs are not rolled
// back when a later one fails.
package patch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/fixtransport/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📦 Job is one target file and the substitutions applied to it, in order
type Job struct {
	Path          string
	Substitutions []Substitution
}

// 📊 Result describes what a job did to its file
type Result struct {
	Path         string // Target file
	Matches      []int  // Match count per substitution
	Replacements int    // Sum of Matches
	Modified     bool   // Whether the written bytes differ from what was read
}

// 📣 Reporter receives one notification per completed job
type Reporter interface {
	Fixed(ctx context.Context, op log.FileOperation)
}

// 🩹 Patcher runs jobs against the filesystem
type Patcher struct {
	reporter Reporter
}

// 🏭 New creates a Patcher that reports completed jobs to reporter
func New(reporter Reporter) *Patcher {
	return &Patcher{reporter: reporter}
}

// 🏃 ApplyJob reads job.Path, applies every substitution and writes the result
// back. Zero matches is not an error; the file is rewritten regardless.
func (p *Patcher) ApplyJob(ctx context.Context, job Job) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", job.Path).Logger()
	logger.Debug().Int("substitutions", len(job.Substitutions)).Msg("applying job")

	target, original, perm, err := readFile(job.Path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	if target != job.Path {
		logger.Debug().Str("target", target).Msg("following symlink")
	}

	patched, counts := Apply(string(original), job.Substitutions)

	result := &Result{
		Path:     job.Path,
		Matches:  counts,
		Modified: patched != string(original),
	}
	for i, n := range counts {
		result.Replacements += n
		logger.Debug().
			Int("index", i).
			Str("description", job.Substitutions[i].Description).
			Int("matches", n).
			Msg("substitution applied")
	}

	if err := writeFileAtomic(target, []byte(patched), perm); err != nil {
		return nil, errors.Errorf("writing job file: %w", err)
	}

	if p.reporter != nil {
		p.reporter.Fixed(ctx, log.FileOperation{
			Path:         job.Path,
			IsModified:   result.Modified,
			Replacements: result.Replacements,
		})
	}

	return result, nil
}

// 🏃 Run applies jobs in order. The first failure aborts the run and later
// jobs never start.
func (p *Patcher) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, errors.Errorf("run cancelled before %s: %w", job.Path, err)
		}
		res, err := p.ApplyJob(ctx, job)
		if err != nil {
			return results, errors.Errorf("applying job %s: %w", job.Path, err)
		}
		results = append(results, res)
	}
	return results, nil
}
