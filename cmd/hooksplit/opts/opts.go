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

package opts

import (
	"github.com/walteh/hooksplit/pkg/blocks"
	"github.com/walteh/hooksplit/pkg/operation"
	"github.com/walteh/hooksplit/pkg/output"
	"github.com/walteh/hooksplit/pkg/plan"
)

// RootOpts contains shared options used by all commands.
// The flag fields are bound by the root command; the rest is filled in
// before any subcommand runs.
type RootOpts struct {
	PlanFile string
	Debug    bool
	Diff     bool

	Plan   *plan.Plan
	Blocks *blocks.Set
	Writer *output.Writer
}

// Operation returns the options every operation is built from
func (o *RootOpts) Operation() operation.Options {
	return operation.Options{
		Plan:   o.Plan,
		Blocks: o.Blocks,
		Writer: o.Writer,
	}
}
