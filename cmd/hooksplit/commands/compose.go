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

// NewComposeCmd creates a new compose command
func NewComposeCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a full candidate component",
		Long: `Compose builds a complete candidate from the source.
It will:
1. Keep the header and the JSX return block
2. Copy the configured line ranges with their indentation reduced
3. Insert the declaration, handler and effect blocks
4. Report how many lines were removed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.NewComposeOperation(opts.Operation())
			if err != nil {
				return errors.Errorf("creating compose operation: %w", err)
			}
			return run(cmd, op)
		},
	}

	return cmd
}
