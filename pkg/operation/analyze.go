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
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/hooksplit/pkg/log"
	"github.com/walteh/hooksplit/pkg/segment"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var handlerPrefixes = []string{"const handle", "const fetch", "const get"}

// 📊 Analysis summarizes the component body of one source file.
// Line numbers are one based.
type Analysis struct {
	Path         string
	TotalLines   int
	AnchorLine   int
	ReturnLine   int
	StateDecls   int
	HandlerDecls int
	Effects      int
}

// String renders the analysis as an indented text block
func (a *Analysis) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", a.Path)
	fmt.Fprintf(&b, "  total lines:          %d\n", a.TotalLines)
	fmt.Fprintf(&b, "  anchor line:          %d\n", a.AnchorLine)
	fmt.Fprintf(&b, "  return line:          %d\n", a.ReturnLine)
	fmt.Fprintf(&b, "  state declarations:   %d\n", a.StateDecls)
	fmt.Fprintf(&b, "  handler declarations: %d\n", a.HandlerDecls)
	fmt.Fprintf(&b, "  useEffect calls:      %d\n", a.Effects)
	return b.String()
}

// AnalyzeSource finds the first line equal to anchor and the first line equal
// to returnLine after it (both compared after trimming whitespace), then counts
// declarations between them.
func AnalyzeSource(src, anchor, returnLine string) (*Analysis, error) {
	lines := segment.SplitLines(src)
	anchor = strings.TrimSpace(anchor)
	returnLine = strings.TrimSpace(returnLine)

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == anchor {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.Errorf("%w: %q", segment.ErrAnchorNotFound, anchor)
	}

	end := -1
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == returnLine {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, errors.Errorf("%w: %q after line %d", segment.ErrPatternNotFound, returnLine, start+1)
	}

	a := &Analysis{
		TotalLines: segment.LineCount(src),
		AnchorLine: start + 1,
		ReturnLine: end + 1,
	}

	for _, line := range lines[start:end] {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "useState") || strings.Contains(trimmed, "useRef") {
			a.StateDecls++
		}
		for _, prefix := range handlerPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				a.HandlerDecls++
				break
			}
		}
		if strings.HasPrefix(trimmed, "useEffect(") {
			a.Effects++
		}
	}

	return a, nil
}

// 🔎 NewAnalyzeOperation creates the read only analyzer
func NewAnalyzeOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &analyzeOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

type analyzeOperation struct {
	BaseOperation
}

func (op *analyzeOperation) Name() string { return "analyze" }

// ExpandInputs expands doublestar patterns in order. Each pattern's matches
// are sorted and duplicates are dropped. A pattern without matches is kept
// as a literal path so that a missing file fails when it is read.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, errors.Errorf("invalid input pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func (op *analyzeOperation) Execute(ctx context.Context) error {
	logger := log.FromContext(ctx)
	args := op.Plan.Analyze

	inputs, err := ExpandInputs(args.Inputs)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Strs("inputs", inputs).Int("parallelism", args.Parallelism).Msg("analyzing")

	results := make([]*Analysis, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(args.Parallelism)
	for i, path := range inputs {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := readSource(path)
			if err != nil {
				return errors.Errorf("%s: %w", path, err)
			}
			a, err := AnalyzeSource(src, op.Plan.Anchor, args.ReturnLine)
			if err != nil {
				return errors.Errorf("%s: %w", path, err)
			}
			a.Path = path
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var report strings.Builder
	for _, a := range results {
		text := a.String()
		logger.Line(strings.TrimSuffix(text, "\n"))
		report.WriteString(text)
	}

	if args.Report == "" {
		return nil
	}

	_, err = op.write(ctx, op.Name(), args.Report, report.String(), inputs...)
	return err
}
