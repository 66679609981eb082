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

// NewExtractCmd creates a new extract command
func NewExtractCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the component body and write the replacement blocks",
		Long: `Extract locates the component anchor and the first return statement after it.
It will:
1. Split the source into prefix, body and suffix
2. Write the rewritten header and helper blocks to the extract output
3. List the steps left to do by hand

Nothing is written when the anchor or the return statement is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.NewExtractOperation(opts.Operation())
			if err != nil {
				return errors.Errorf("creating extract operation: %w", err)
			}
			return run(cmd, op)
		},
	}

	return cmd
}

// run executes a single operation with the command's context
func run(cmd *cobra.Command, op operation.Operation) error {
	return operation.NewRunner().Run(cmd.Context(), op)
}
