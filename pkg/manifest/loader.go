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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/fixtransport/pkg/patch"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a manifest file from path and compiles its jobs.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func Load(ctx context.Context, path string) ([]patch.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading manifest file: %w", err)
	}
	return Parse(ctx, path, data)
}

// Parse decodes data according to the extension of filename, validates it and
// compiles its jobs.
func Parse(ctx context.Context, filename string, data []byte) ([]patch.Job, error) {
	zerolog.Ctx(ctx).Debug().Str("manifest", filename).Msg("parsing manifest")

	var (
		m   *Manifest
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		m, err = loadJSON(data)
	case ".yaml", ".yml":
		m, err = loadYAML(data)
	case ".hcl":
		m, err = loadHCL(data, filename)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	jobs, err := m.Compile(ctx)
	if err != nil {
		return nil, errors.Errorf("compiling manifest: %w", err)
	}
	return jobs, nil
}

// loadJSON loads a manifest from JSON data
func loadJSON(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &m, nil
}

// loadYAML loads a manifest from YAML data
func loadYAML(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &m, nil
}

// loadHCL loads a manifest from HCL data
func loadHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// No variables or functions; strings are taken literally
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var m Manifest
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &m)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &m, nil
}
