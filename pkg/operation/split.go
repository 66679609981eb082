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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/hooksplit/pkg/blocks"
	"github.com/walteh/hooksplit/pkg/log"
	"github.com/walteh/hooksplit/pkg/segment"
)

// 📐 NewSplitOperation creates the fixed offset split
func NewSplitOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &splitOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

type splitOperation struct {
	BaseOperation
}

func (op *splitOperation) Name() string { return "split" }

// Execute slices the input at the configured line boundaries and writes
// header lines, hook imports and the declaration block. The body and jsx
// segments are not re-attached.
func (op *splitOperation) Execute(ctx context.Context) error {
	logger := log.FromContext(ctx)
	args := op.Plan.Split

	src, err := readSource(op.Plan.Input)
	if err != nil {
		return err
	}

	part := segment.SplitAt(segment.SplitLines(src), args.BodyStart, args.JSXStart)

	// boundaries are not checked against the source structure
	zerolog.Ctx(ctx).Debug().
		Int("header_lines", len(part.Header)).
		Int("body_lines", len(part.Body)).
		Int("jsx_lines", len(part.JSX)).
		Bool("truncated", part.Truncated).
		Msg("partitioned source")

	if part.Truncated {
		logger.Warningf("source has %d lines; body_start %d and jsx_start %d were clamped",
			len(part.Header)+len(part.Body)+len(part.JSX), args.BodyStart, args.JSXStart)
	}

	importAt := min(args.ImportAt, len(part.Header))

	imports, err := op.renderBlocks(blocks.SplitImports)
	if err != nil {
		return err
	}
	decls, err := op.renderBlocks(blocks.SplitDeclarations)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(strings.Join(part.Header[:importAt], ""))
	b.WriteString(imports)
	b.WriteString(strings.Join(part.Header[importAt:], ""))
	b.WriteString(decls)

	logger.Info("generated part of the new component")

	if _, err := op.write(ctx, op.Name(), args.Output, b.String()); err != nil {
		return err
	}

	logger.Manual([]string{
		"remaining handlers and useEffect blocks from the component body",
		"the JSX return block",
		"circular reference between routinesHook and todosHook (setTodos and friends)",
	})

	return nil
}
