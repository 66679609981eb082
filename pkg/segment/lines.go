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

package segment

import (
	"strings"
)

// SplitLines splits src into lines that keep their "\n" terminator.
// A source ending in a newline does not produce a trailing empty line, so
// strings.Join(SplitLines(src), "") == src always holds.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.SplitAfter(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineCount counts lines the way a plain split on "\n" does, so a trailing
// newline counts as an extra empty line.
func LineCount(src string) int {
	return strings.Count(src, "\n") + 1
}

// clamp bounds an index into [0, n] the way slice expressions on a short file would.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// 📐 Partition is a source split into header, body and jsx line ranges
type Partition struct {
	Header []string
	Body   []string
	JSX    []string

	// Truncated reports that a boundary fell past the end of the source and was clamped
	Truncated bool
}

// SplitAt partitions lines at two absolute zero-based line indices:
// header = lines[:bodyStart], body = lines[bodyStart:jsxStart], jsx = lines[jsxStart:].
// Out of range boundaries are clamped rather than rejected; nothing checks
// that the boundaries still fall on meaningful structure.
func SplitAt(lines []string, bodyStart, jsxStart int) *Partition {
	n := len(lines)
	b := clamp(bodyStart, n)
	j := clamp(jsxStart, n)
	if j < b {
		j = b
	}
	return &Partition{
		Header:    lines[:b],
		Body:      lines[b:j],
		JSX:       lines[j:],
		Truncated: b != bodyStart || j != jsxStart,
	}
}

// HeaderText returns the header lines joined
func (p *Partition) HeaderText() string { return strings.Join(p.Header, "") }

// BodyText returns the body lines joined
func (p *Partition) BodyText() string { return strings.Join(p.Body, "") }

// JSXText returns the jsx lines joined
func (p *Partition) JSXText() string { return strings.Join(p.JSX, "") }

// Join reassembles the partition into the original source
func (p *Partition) Join() string {
	return p.HeaderText() + p.BodyText() + p.JSXText()
}

// ExtractRange returns lines[start:end] joined, with up to dedent leading
// spaces removed from every line that starts with that many spaces.
func ExtractRange(lines []string, start, end, dedent int) string {
	n := len(lines)
	s := clamp(start, n)
	e := clamp(end, n)
	if e <= s {
		return ""
	}

	prefix := strings.Repeat(" ", max(dedent, 0))

	var b strings.Builder
	for _, line := range lines[s:e] {
		b.WriteString(strings.TrimPrefix(line, prefix))
	}
	return b.String()
}
