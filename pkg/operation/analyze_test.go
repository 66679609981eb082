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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/hooksplit/pkg/segment"
)

func TestAnalyzeSource(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      *Analysis
		wantErrIs error
	}{
		{
			name:   "sample_component",
			source: sampleSource,
			want: &Analysis{
				TotalLines:   21,
				AnchorLine:   4,
				ReturnLine:   15,
				StateDecls:   2,
				HandlerDecls: 2,
				Effects:      1,
			},
		},
		{
			name:   "indented_anchor_and_getters",
			source: "  function App() {\n  const getA = () => 1\n  const getB = useRef(getA)\n  return (\n  )\n  }",
			want: &Analysis{
				TotalLines:   6,
				AnchorLine:   1,
				ReturnLine:   4,
				StateDecls:   1,
				HandlerDecls: 2,
				Effects:      0,
			},
		},
		{
			name:      "missing_anchor",
			source:    "const x = 1\n",
			wantErrIs: segment.ErrAnchorNotFound,
		},
		{
			name:      "missing_return",
			source:    "function App() {\n  return <div />\n}\n",
			wantErrIs: segment.ErrPatternNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnalyzeSource(tt.source, "function App() {", "return (")
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"b/App.jsx", "a/App.jsx", "a/nested/App.jsx", "a/Other.jsx"} {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0644))
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "recursive_glob_sorted",
			patterns: []string{filepath.Join(dir, "**", "App.jsx")},
			want: []string{
				filepath.Join(dir, "a", "App.jsx"),
				filepath.Join(dir, "a", "nested", "App.jsx"),
				filepath.Join(dir, "b", "App.jsx"),
			},
		},
		{
			name: "pattern_order_kept_and_deduplicated",
			patterns: []string{
				filepath.Join(dir, "b", "App.jsx"),
				filepath.Join(dir, "a", "*.jsx"),
				filepath.Join(dir, "b", "*.jsx"),
			},
			want: []string{
				filepath.Join(dir, "b", "App.jsx"),
				filepath.Join(dir, "a", "App.jsx"),
				filepath.Join(dir, "a", "Other.jsx"),
			},
		},
		{
			name:     "unmatched_literal_kept",
			patterns: []string{filepath.Join(dir, "missing.jsx")},
			want:     []string{filepath.Join(dir, "missing.jsx")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandInputs(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze(t *testing.T) {
	ctx, console := testContext(t)
	opts, dir := testOptions(t, ctx, sampleSource, `{
		"analyze": {
			"inputs": ["src/**/*.jsx"],
			"report": "report.txt",
			"parallelism": 2
		}
	}`)

	second := strings.Replace(sampleSource, "  const boxRef = useRef(null)\n", "", 1)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "z"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "z", "Page.jsx"), []byte(second), 0644))

	op, err := NewAnalyzeOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	report, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)

	first := filepath.Join(dir, "src", "App.jsx")
	next := filepath.Join(dir, "src", "z", "Page.jsx")

	text := string(report)
	assert.Less(t, strings.Index(text, first), strings.Index(text, next), "results follow input order")
	assert.Equal(t, 2, strings.Count(text, "useEffect calls:      1"))
	assert.Contains(t, text, "state declarations:   2")
	assert.Contains(t, text, "state declarations:   1")

	assert.Contains(t, console.String(), first)
	assert.Contains(t, console.String(), next)
}

func TestAnalyzeFailsOnBadInput(t *testing.T) {
	ctx, _ := testContext(t)
	opts, dir := testOptions(t, ctx, sampleSource, `{
		"analyze": {"inputs": ["src/App.jsx", "src/Broken.jsx"], "report": "report.txt"}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Broken.jsx"), []byte("export default 1\n"), 0644))

	op, err := NewAnalyzeOperation(opts)
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, segment.ErrAnchorNotFound)
	assert.Contains(t, err.Error(), "Broken.jsx")
	assert.NoFileExists(t, filepath.Join(dir, "report.txt"))
}
