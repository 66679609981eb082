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

package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/hooksplit/pkg/blocks"
	"github.com/walteh/hooksplit/pkg/log"
	"github.com/walteh/hooksplit/pkg/segment"
)

// 🧱 NewComposeOperation creates the full candidate composer
func NewComposeOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &composeOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

type composeOperation struct {
	BaseOperation
}

func (op *composeOperation) Name() string { return "compose" }

// Reduction returns the percentage of lines removed, rounded to one decimal
func Reduction(before, after int) string {
	if before == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", (1-float64(after)/float64(before))*100)
}

func (op *composeOperation) Execute(ctx context.Context) error {
	logger := log.FromContext(ctx)
	args := op.Plan.Compose

	src, err := readSource(op.Plan.Input)
	if err != nil {
		return err
	}

	lines := segment.SplitLines(src)
	part := segment.SplitAt(lines, args.HeaderEnd, args.JSXStart)

	zerolog.Ctx(ctx).Debug().
		Int("header_lines", len(part.Header)).
		Int("jsx_lines", len(part.JSX)).
		Bool("truncated", part.Truncated).
		Msg("partitioned source")

	if part.Truncated {
		logger.Warningf("source has %d lines; header_end %d and jsx_start %d were clamped",
			len(lines), args.HeaderEnd, args.JSXStart)
	}

	decls, err := op.renderBlocks(blocks.ComposeDeclarations)
	if err != nil {
		return err
	}
	tail, err := op.renderBlocks(blocks.ComposeHandlers, blocks.ComposeEffects)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(part.HeaderText())
	b.WriteString(decls)
	for _, r := range args.Ranges {
		text := segment.ExtractRange(lines, r.Start, r.End, args.Dedent)
		zerolog.Ctx(ctx).Debug().Str("range", r.Name).Int("bytes", len(text)).Msg("copied range")
		b.WriteString(text)
	}
	b.WriteString(tail)
	b.WriteString(part.JSXText())

	content := b.String()
	before := segment.LineCount(src)
	after := segment.LineCount(content)

	if _, err := op.write(ctx, op.Name(), args.Output, content); err != nil {
		return err
	}

	logger.Infof("original lines: %d", before)
	logger.Infof("new lines: %d", after)
	logger.Successf("reduction: %s%%", Reduction(before, after))

	logger.Steps("next steps", []string{
		"review " + args.Output,
		"test the candidate",
		"replace " + op.Plan.Input + " once it works",
	})

	return nil
}
