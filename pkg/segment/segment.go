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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrAnchorNotFound is returned when the literal anchor text is absent from the source
	ErrAnchorNotFound = errors.Base("anchor not found")

	// ErrPatternNotFound is returned when no pattern match follows the anchor
	ErrPatternNotFound = errors.Base("pattern not found")
)

// 🧩 Segment is a contiguous slice of the source text
type Segment struct {
	Name  string // Segment name (prefix, body, suffix, ...)
	Start int    // Byte offset of the first character
	End   int    // Byte offset one past the last character
	Text  string // Segment content, always src[Start:End]
}

// Len returns the segment length in bytes
func (s Segment) Len() int {
	return s.End - s.Start
}

// ✂️ Extraction is the result of splitting a source at an anchor and a following pattern
type Extraction struct {
	Prefix Segment // everything before the anchor
	Body   Segment // anchor up to the pattern match
	Suffix Segment // pattern match to end of source
}

// Join concatenates the three segments back into the source text
func (e *Extraction) Join() string {
	return e.Prefix.Text + e.Body.Text + e.Suffix.Text
}

// 🔍 FindAnchor returns the byte offset of the first occurrence of anchor in src
func FindAnchor(src, anchor string) (int, error) {
	idx := strings.Index(src, anchor)
	if idx == -1 {
		return -1, errors.Errorf("%w: %q", ErrAnchorNotFound, anchor)
	}
	return idx, nil
}

// ✂️ Extract splits src into prefix, body and suffix.
// The body starts at the first occurrence of anchor and ends where the first
// match of pattern at or after the anchor begins.
func Extract(src, anchor string, pattern *regexp.Regexp) (*Extraction, error) {
	if pattern == nil {
		return nil, errors.Errorf("pattern is required")
	}

	start, err := FindAnchor(src, anchor)
	if err != nil {
		return nil, err
	}

	loc := pattern.FindStringIndex(src[start:])
	if loc == nil {
		return nil, errors.Errorf("%w: %q after offset %d", ErrPatternNotFound, pattern.String(), start)
	}
	ret := start + loc[0]

	return &Extraction{
		Prefix: Segment{Name: "prefix", Start: 0, End: start, Text: src[:start]},
		Body:   Segment{Name: "body", Start: start, End: ret, Text: src[start:ret]},
		Suffix: Segment{Name: "suffix", Start: ret, End: len(src), Text: src[ret:]},
	}, nil
}
