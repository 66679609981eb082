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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/hooksplit/cmd/hooksplit/opts"
	"github.com/walteh/hooksplit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewAnalyzeCmd creates a new analyze command.
// Positional arguments replace the plan's analyze inputs.
func NewAnalyzeCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [pattern...]",
		Short: "Count state, handlers and effects in the component body",
		Long: `Analyze reads one or more sources without changing them.
It will:
1. Expand the input patterns (** is supported)
2. Find the component anchor and its return statement
3. Count state declarations, handler declarations and useEffect calls
4. Print the results in input order and optionally write a report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Plan.Analyze.Inputs = args
			}

			op, err := operation.NewAnalyzeOperation(opts.Operation())
			if err != nil {
				return errors.Errorf("creating analyze operation: %w", err)
			}
			return run(cmd, op)
		},
	}

	return cmd
}
