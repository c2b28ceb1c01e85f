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

package manifest

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fixtransport/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 📚 Manifest is the decoded list of patch jobs
type Manifest struct {
	Jobs []JobDef `json:"jobs" yaml:"jobs" hcl:"job,block"`
}

// 📦 JobDef is one target file and its ordered substitutions
type JobDef struct {
	Path          string            `json:"path" yaml:"path" hcl:"path"`
	Substitutions []SubstitutionDef `json:"substitutions" yaml:"substitutions" hcl:"substitution,block"`
}

// 🔄 SubstitutionDef is an uncompiled pattern and its replacement template
type SubstitutionDef struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Pattern     string `json:"pattern" yaml:"pattern" hcl:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement"`
}

// 🔍 Validate checks that the manifest names at least one job, that every job
// has an absolute path and that no pattern is empty
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return errors.Errorf("at least one job is required")
	}
	for i, job := range m.Jobs {
		if job.Path == "" {
			return errors.Errorf("job %d: path is required", i)
		}
		if !filepath.IsAbs(job.Path) {
			return errors.Errorf("job %d: path %q must be absolute", i, job.Path)
		}
		for j, sub := range job.Substitutions {
			if sub.Pattern == "" {
				return errors.Errorf("job %d substitution %d: pattern is required", i, j)
			}
		}
	}
	return nil
}

// 🏭 Compile turns the manifest into runnable jobs. A bad pattern fails here,
// before any file is touched.
func (m *Manifest) Compile(ctx context.Context) ([]patch.Job, error) {
	logger := zerolog.Ctx(ctx)

	jobs := make([]patch.Job, 0, len(m.Jobs))
	for i, def := range m.Jobs {
		job := patch.Job{
			Path:          def.Path,
			Substitutions: make([]patch.Substitution, 0, len(def.Substitutions)),
		}
		for j, sd := range def.Substitutions {
			sub, err := patch.NewSubstitution(sd.Description, sd.Pattern, sd.Replacement)
			if err != nil {
				return nil, errors.Errorf("job %d substitution %d: %w", i, j, err)
			}
			job.Substitutions = append(job.Substitutions, sub)
		}
		logger.Debug().Str("file", job.Path).Int("substitutions", len(job.Substitutions)).Msg("compiled job")
		jobs = append(jobs, job)
	}
	return jobs, nil
}
