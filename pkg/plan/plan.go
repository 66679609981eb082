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

package plan

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// Defaults matching the layout of the component this tool was written for
const (
	DefaultInput         = "src/App.jsx"
	DefaultAnchor        = "function App() {"
	DefaultReturnPattern = `\n  return \(`
	DefaultReturnLine    = "return ("

	DefaultExtractOutput = "src/App_new_body.jsx.tmp"

	DefaultSplitOutput = "src/App_refactored_partial.jsx"
	DefaultBodyStart   = 143
	DefaultJSXStart    = 3404
	DefaultImportAt    = 24

	DefaultComposeOutput    = "src/App_REFACTORED.jsx"
	DefaultComposeHeaderEnd = 149
	DefaultComposeJSXStart  = 3410
	DefaultComposeDedent    = 2

	DefaultAnalyzeParallelism = 4
)

// 🔍 ExtractArgs configures the anchor based extraction
type ExtractArgs struct {
	Output        string `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	ReturnPattern string `json:"return_pattern,omitempty" yaml:"return_pattern,omitempty" hcl:"return_pattern,optional"`
}

// 📐 SplitArgs configures the fixed offset split. Line numbers are zero based slice indices.
type SplitArgs struct {
	Output    string `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	BodyStart int    `json:"body_start,omitempty" yaml:"body_start,omitempty" hcl:"body_start,optional"`
	JSXStart  int    `json:"jsx_start,omitempty" yaml:"jsx_start,omitempty" hcl:"jsx_start,optional"`
	ImportAt  int    `json:"import_at,omitempty" yaml:"import_at,omitempty" hcl:"import_at,optional"`
}

// 📏 LineRange is a named [Start, End) range of zero based line indices
type LineRange struct {
	Name  string `json:"name" yaml:"name" hcl:"name,label"`
	Start int    `json:"start" yaml:"start" hcl:"start"`
	End   int    `json:"end" yaml:"end" hcl:"end"`
}

// 🧱 ComposeArgs configures the full candidate composition
type ComposeArgs struct {
	Output    string      `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	HeaderEnd int         `json:"header_end,omitempty" yaml:"header_end,omitempty" hcl:"header_end,optional"`
	JSXStart  int         `json:"jsx_start,omitempty" yaml:"jsx_start,omitempty" hcl:"jsx_start,optional"`
	Dedent    int         `json:"dedent,omitempty" yaml:"dedent,omitempty" hcl:"dedent,optional"`
	Ranges    []LineRange `json:"ranges,omitempty" yaml:"ranges,omitempty" hcl:"range,block"`
}

// 📊 AnalyzeArgs configures source analysis
type AnalyzeArgs struct {
	Inputs      []string `json:"inputs,omitempty" yaml:"inputs,omitempty" hcl:"inputs,optional"`
	ReturnLine  string   `json:"return_line,omitempty" yaml:"return_line,omitempty" hcl:"return_line,optional"`
	Report      string   `json:"report,omitempty" yaml:"report,omitempty" hcl:"report,optional"`
	Parallelism int      `json:"parallelism,omitempty" yaml:"parallelism,omitempty" hcl:"parallelism,optional"`
}

// 📚 Plan describes one run of the tool. Zero values mean "use the default".
type Plan struct {
	Input   string            `json:"input,omitempty" yaml:"input,omitempty" hcl:"input,optional"`
	Anchor  string            `json:"anchor,omitempty" yaml:"anchor,omitempty" hcl:"anchor,optional"`
	Blocks  map[string]string `json:"blocks,omitempty" yaml:"blocks,omitempty" hcl:"blocks,optional"`
	Extract *ExtractArgs      `json:"extract,omitempty" yaml:"extract,omitempty" hcl:"extract,block"`
	Split   *SplitArgs        `json:"split,omitempty" yaml:"split,omitempty" hcl:"split,block"`
	Compose *ComposeArgs      `json:"compose,omitempty" yaml:"compose,omitempty" hcl:"compose,block"`
	Analyze *AnalyzeArgs      `json:"analyze,omitempty" yaml:"analyze,omitempty" hcl:"analyze,block"`

	location      string
	returnPattern *regexp.Regexp
}

// 🏭 Default returns the built-in plan, resolved against the current directory
func Default() *Plan {
	p := &Plan{}
	p.applyDefaults()
	return p
}

// defaultRanges are the helper ranges copied out of the original body by compose
func defaultRanges() []LineRange {
	return []LineRange{
		{Name: "encouragement", Start: 340, End: 365},
		{Name: "dummy", Start: 367, End: 692},
		{Name: "date", Start: 694, End: 710},
	}
}

func (p *Plan) applyDefaults() {
	if p.Input == "" {
		p.Input = DefaultInput
	}
	if p.Anchor == "" {
		p.Anchor = DefaultAnchor
	}

	if p.Extract == nil {
		p.Extract = &ExtractArgs{}
	}
	if p.Extract.Output == "" {
		p.Extract.Output = DefaultExtractOutput
	}
	if p.Extract.ReturnPattern == "" {
		p.Extract.ReturnPattern = DefaultReturnPattern
	}

	if p.Split == nil {
		p.Split = &SplitArgs{}
	}
	if p.Split.Output == "" {
		p.Split.Output = DefaultSplitOutput
	}
	if p.Split.BodyStart == 0 {
		p.Split.BodyStart = DefaultBodyStart
	}
	if p.Split.JSXStart == 0 {
		p.Split.JSXStart = DefaultJSXStart
	}
	if p.Split.ImportAt == 0 {
		p.Split.ImportAt = DefaultImportAt
	}

	if p.Compose == nil {
		p.Compose = &ComposeArgs{}
	}
	if p.Compose.Output == "" {
		p.Compose.Output = DefaultComposeOutput
	}
	if p.Compose.HeaderEnd == 0 {
		p.Compose.HeaderEnd = DefaultComposeHeaderEnd
	}
	if p.Compose.JSXStart == 0 {
		p.Compose.JSXStart = DefaultComposeJSXStart
	}
	if p.Compose.Dedent == 0 {
		p.Compose.Dedent = DefaultComposeDedent
	}
	if len(p.Compose.Ranges) == 0 {
		p.Compose.Ranges = defaultRanges()
	}

	if p.Analyze == nil {
		p.Analyze = &AnalyzeArgs{}
	}
	if len(p.Analyze.Inputs) == 0 {
		p.Analyze.Inputs = []string{p.Input}
	}
	if p.Analyze.ReturnLine == "" {
		p.Analyze.ReturnLine = DefaultReturnLine
	}
	if p.Analyze.Parallelism == 0 {
		p.Analyze.Parallelism = DefaultAnalyzeParallelism
	}
}

// resolvePaths makes every relative path absolute against base
func (p *Plan) resolvePaths(base string) {
	abs := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return filepath.Clean(path)
		}
		return filepath.Join(base, path)
	}

	p.Input = abs(p.Input)
	p.Extract.Output = abs(p.Extract.Output)
	p.Split.Output = abs(p.Split.Output)
	p.Compose.Output = abs(p.Compose.Output)
	if p.Analyze.Report != "" {
		p.Analyze.Report = abs(p.Analyze.Report)
	}
	for i, in := range p.Analyze.Inputs {
		p.Analyze.Inputs[i] = abs(in)
	}
	for name, path := range p.Blocks {
		p.Blocks[name] = abs(path)
	}
}

// Location returns the plan file path, or "" for the built-in plan
func (p *Plan) Location() string {
	return p.location
}

// ReturnPattern returns the compiled extract return pattern. Only valid after Validate.
func (p *Plan) ReturnPattern() *regexp.Regexp {
	return p.returnPattern
}

// 🔍 Validate checks the plan and compiles its pattern
func (p *Plan) Validate() error {
	if p.Input == "" {
		return errors.Errorf("input is required")
	}
	if p.Anchor == "" {
		return errors.Errorf("anchor is required")
	}

	re, err := regexp.Compile(p.Extract.ReturnPattern)
	if err != nil {
		return errors.Errorf("extract.return_pattern: %w", err)
	}
	p.returnPattern = re

	outputs := map[string]string{
		"extract.output": p.Extract.Output,
		"split.output":   p.Split.Output,
		"compose.output": p.Compose.Output,
	}
	if p.Analyze.Report != "" {
		outputs["analyze.report"] = p.Analyze.Report
	}
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		if outputs[k] == "" {
			return errors.Errorf("%s is required", k)
		}
		path := filepath.Clean(outputs[k])
		if path == filepath.Clean(p.Input) {
			return errors.Errorf("%s must not be the input file %s", k, p.Input)
		}
		if other, ok := seen[path]; ok {
			return errors.Errorf("%s and %s must not share the path %s", other, k, path)
		}
		seen[path] = k
	}

	if p.Split.BodyStart < 0 || p.Split.JSXStart < p.Split.BodyStart {
		return errors.Errorf("split: need 0 <= body_start (%d) <= jsx_start (%d)", p.Split.BodyStart, p.Split.JSXStart)
	}
	if p.Split.ImportAt < 0 || p.Split.ImportAt > p.Split.BodyStart {
		return errors.Errorf("split: need 0 <= import_at (%d) <= body_start (%d)", p.Split.ImportAt, p.Split.BodyStart)
	}

	if p.Compose.HeaderEnd < 0 || p.Compose.JSXStart < p.Compose.HeaderEnd {
		return errors.Errorf("compose: need 0 <= header_end (%d) <= jsx_start (%d)", p.Compose.HeaderEnd, p.Compose.JSXStart)
	}
	if p.Compose.Dedent < 0 {
		return errors.Errorf("compose: dedent must not be negative")
	}
	for _, r := range p.Compose.Ranges {
		if r.Start < 0 || r.End < r.Start {
			return errors.Errorf("compose range %q: need 0 <= start (%d) <= end (%d)", r.Name, r.Start, r.End)
		}
	}

	if p.Analyze.Parallelism < 1 {
		return errors.Errorf("analyze.parallelism must be positive")
	}

	return nil
}

// 📝 String returns a short description of the plan
func (p *Plan) String() string {
	src := p.location
	if src == "" {
		src = "built-in"
	}
	return fmt.Sprintf("%s (%s) anchor=%q", p.Input, src, p.Anchor)
}
