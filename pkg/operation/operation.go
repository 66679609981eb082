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

// Package operation implements the source transformations: anchor based
// extraction, fixed offset splitting, composition of a full candidate and
// source analysis.
package operation

import (
	"context"
	"io"
	"os"
	"unicode/utf8"

	"github.com/walteh/hooksplit/pkg/blocks"
	"github.com/walteh/hooksplit/pkg/log"
	"github.com/walteh/hooksplit/pkg/output"
	"github.com/walteh/hooksplit/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single transformation run
type Operation interface {
	// Name returns the short name used in logs and status lines
	Name() string
	// Execute runs the transformation
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every operation needs
type Options struct {
	Plan   *plan.Plan
	Blocks *blocks.Set
	Writer *output.Writer
}

func (o Options) validate() error {
	if o.Plan == nil {
		return errors.Errorf("plan is required")
	}
	if o.Blocks == nil {
		return errors.Errorf("blocks are required")
	}
	if o.Writer == nil {
		return errors.Errorf("writer is required")
	}
	return nil
}

// 🏗️ BaseOperation provides the shared fields and helpers
type BaseOperation struct {
	Options
}

// NewBaseOperation creates a base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// readSource reads the whole input file as UTF-8 text
func readSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening input: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.Errorf("input %s is not valid UTF-8", path)
	}
	return string(data), nil
}

// renderBlocks renders the named blocks in order and concatenates them
func (op *BaseOperation) renderBlocks(names ...string) (string, error) {
	var out string
	for _, name := range names {
		text, err := op.Blocks.Render(name)
		if err != nil {
			return "", err
		}
		out += text
	}
	return out, nil
}

// write writes content to path, protecting the plan input and any extra
// paths, and reports the result
func (op *BaseOperation) write(ctx context.Context, kind, path string, content string, protected ...string) (*output.Result, error) {
	res, err := op.Writer.Write(ctx, path, []byte(content), append([]string{op.Plan.Input}, protected...)...)
	if err != nil {
		return nil, errors.Errorf("writing %s output: %w", kind, err)
	}

	logger := log.FromContext(ctx)
	logger.Line(output.FormatResult(kind, res))
	if res.Diff != "" {
		logger.Line(res.Diff)
	}
	return res, nil
}
