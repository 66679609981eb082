package segment

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

var returnPattern = regexp.MustCompile(`\n  return \(`)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		anchor     string
		wantPrefix string
		wantBody   string
		wantSuffix string
		wantErr    error
	}{
		{
			name:       "simple_component",
			src:        "import x\nfunction App() {\n  const a = 1\n  return (\n    <div/>\n  )\n}\n",
			anchor:     "function App() {",
			wantPrefix: "import x\n",
			wantBody:   "function App() {\n  const a = 1",
			wantSuffix: "\n  return (\n    <div/>\n  )\n}\n",
		},
		{
			name:       "return_before_anchor_is_ignored",
			src:        "function Other() {\n  return (\n  )\n}\nfunction App() {\n  x()\n  return (\n  )\n}",
			anchor:     "function App() {",
			wantPrefix: "function Other() {\n  return (\n  )\n}\n",
			wantBody:   "function App() {\n  x()",
			wantSuffix: "\n  return (\n  )\n}",
		},
		{
			name:       "nested_return_stops_at_first_match",
			src:        "function App() {\n  const f = () => {\n    return (1)\n  }\n  return (\n  )\n}",
			anchor:     "function App() {",
			wantPrefix: "",
			wantBody:   "function App() {\n  const f = () => {\n    return (1)\n  }",
			wantSuffix: "\n  return (\n  )\n}",
		},
		{
			name:       "anchor_at_end_of_prefix_with_unicode",
			src:        "// 앱\nfunction App() {\n  return (\n)",
			anchor:     "function App() {",
			wantPrefix: "// 앱\n",
			wantBody:   "function App() {",
			wantSuffix: "\n  return (\n)",
		},
		{
			name:    "missing_anchor",
			src:     "function Main() {\n  return (\n  )\n}",
			anchor:  "function App() {",
			wantErr: ErrAnchorNotFound,
		},
		{
			name:    "missing_return",
			src:     "function App() {\n  return null\n}",
			anchor:  "function App() {",
			wantErr: ErrPatternNotFound,
		},
		{
			name:    "return_only_before_anchor",
			src:     "function Other() {\n  return (\n  )\n}\nfunction App() {\n}",
			anchor:  "function App() {",
			wantErr: ErrPatternNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := Extract(tt.src, tt.anchor, returnPattern)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, ext)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrefix, ext.Prefix.Text)
			assert.Equal(t, tt.wantBody, ext.Body.Text)
			assert.Equal(t, tt.wantSuffix, ext.Suffix.Text)

			// nothing dropped or duplicated
			assert.Equal(t, tt.src, ext.Join())
			assert.Equal(t, ext.Prefix.End, ext.Body.Start)
			assert.Equal(t, ext.Body.End, ext.Suffix.Start)
			assert.Equal(t, len(tt.src), ext.Prefix.Len()+ext.Body.Len()+ext.Suffix.Len())
		})
	}
}

func TestExtractDistinctErrors(t *testing.T) {
	_, anchorErr := Extract("nothing here", "function App() {", returnPattern)
	_, patternErr := Extract("function App() {}", "function App() {", returnPattern)

	require.Error(t, anchorErr)
	require.Error(t, patternErr)
	assert.False(t, errors.Is(anchorErr, ErrPatternNotFound))
	assert.False(t, errors.Is(patternErr, ErrAnchorNotFound))
	assert.NotEqual(t, anchorErr.Error(), patternErr.Error())
}

func TestExtractRequiresPattern(t *testing.T) {
	_, err := Extract("function App() {", "function App() {", nil)
	require.Error(t, err)
}

func TestFindAnchor(t *testing.T) {
	idx, err := FindAnchor("abc function App() { function App() {", "function App() {")
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	idx, err = FindAnchor("abc", "xyz")
	require.Error(t, err)
	assert.Equal(t, -1, idx)
	assert.True(t, strings.Contains(err.Error(), `"xyz"`))
}
