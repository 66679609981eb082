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

// NewSplitCmd creates a new split command
func NewSplitCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the source at fixed line offsets",
		Long: `Split cuts the source at the configured line numbers.
It will:
1. Keep the header lines
2. Insert the hook imports inside the header
3. Append the hook declarations
4. List the segments that still need manual work

The offsets are not checked against the source; a short file is clamped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.NewSplitOperation(opts.Operation())
			if err != nil {
				return errors.Errorf("creating split operation: %w", err)
			}
			return run(cmd, op)
		},
	}

	return cmd
}
