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

package plan

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
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// EnvPlan names a plan file when no --plan flag is given
const EnvPlan = "HOOKSPLIT_PLAN"

// Resolve returns the plan at path, the plan named by $HOOKSPLIT_PLAN, or the
// built-in plan resolved against the working directory, in that order.
func Resolve(ctx context.Context, path string) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		path = os.Getenv(EnvPlan)
		if path != "" {
			logger.Debug().Str("env", EnvPlan).Str("path", path).Msg("plan path from environment")
		}
	}

	if path != "" {
		return LoadFile(ctx, path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	p := Default()
	p.resolvePaths(cwd)
	if err := p.Validate(); err != nil {
		return nil, errors.Errorf("validating built-in plan: %w", err)
	}

	logger.Debug().Str("plan", p.String()).Msg("using built-in plan")
	return p, nil
}

// LoadFile loads a plan file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// Relative paths inside the plan resolve against the plan file's directory.
func LoadFile(ctx context.Context, path string) (*Plan, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	var p *Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		p, err = loadJSON(data)
	case ".yaml", ".yml":
		p, err = loadYAML(data)
	case ".hcl":
		p, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("getting absolute plan path: %w", err)
	}

	p.location = abs
	p.applyDefaults()
	p.resolvePaths(filepath.Dir(abs))

	if err := p.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	return p, nil
}

// loadJSON loads a plan from JSON data
func loadJSON(data []byte) (*Plan, error) {
	var p Plan
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &p, nil
}

// loadYAML loads a plan from YAML data
func loadYAML(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &p, nil
}

// loadHCL loads a plan from HCL data
func loadHCL(data []byte, filename string) (*Plan, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_input":  cty.StringVal(DefaultInput),
			"default_anchor": cty.StringVal(DefaultAnchor),
		},
	}

	var p Plan
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &p)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &p, nil
}
