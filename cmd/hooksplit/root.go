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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/hooksplit/cmd/hooksplit/commands"
	"github.com/walteh/hooksplit/cmd/hooksplit/opts"
	"github.com/walteh/hooksplit/pkg/blocks"
	"github.com/walteh/hooksplit/pkg/log"
	"github.com/walteh/hooksplit/pkg/output"
	"github.com/walteh/hooksplit/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the root command with all subcommands attached
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "hooksplit",
		Short: "Break an oversized React component into hook based pieces",
		Long: `hooksplit rewrites a single very large React component file into smaller
candidate files. The input file is never modified; every result is written to
a separate output path and reviewed by hand.

The plan is read from --plan, then $` + plan.EnvPlan + `, and falls back to the
built-in plan for src/App.jsx.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, rootOpts)
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewExtractCmd(rootOpts),
		commands.NewSplitCmd(rootOpts),
		commands.NewComposeCmd(rootOpts),
		commands.NewAnalyzeCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.PlanFile, "plan", "p", "", "plan file path (.hcl, .yaml, .yml or .json)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Diff, "diff", false, "print a line diff when an output changes")
}

// setupRootOpts configures logging and loads the plan and blocks
func setupRootOpts(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()

	zlog := *zerolog.Ctx(ctx)
	if o.Debug {
		zlog = zlog.Level(zerolog.DebugLevel)
	}
	ctx = zlog.WithContext(ctx)
	ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), zlog))
	cmd.SetContext(ctx)

	p, err := plan.Resolve(ctx, o.PlanFile)
	if err != nil {
		return errors.Errorf("loading plan: %w", err)
	}

	set, err := blocks.New(ctx, p.Blocks)
	if err != nil {
		return errors.Errorf("loading blocks: %w", err)
	}

	o.Plan = p
	o.Blocks = set
	o.Writer = output.NewWriter(o.Diff)

	zlog.Debug().Str("plan", p.String()).Bool("diff", o.Diff).Msg("ready")
	return nil
}
