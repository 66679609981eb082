package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	assert.Equal(t, "src/App.jsx", p.Input)
	assert.Equal(t, "function App() {", p.Anchor)
	assert.Equal(t, 143, p.Split.BodyStart)
	assert.Equal(t, 3404, p.Split.JSXStart)
	assert.Equal(t, 24, p.Split.ImportAt)
	assert.Equal(t, "src/App_new_body.jsx.tmp", p.Extract.Output)
	assert.Equal(t, "src/App_refactored_partial.jsx", p.Split.Output)
	assert.Equal(t, "src/App_REFACTORED.jsx", p.Compose.Output)
	assert.Len(t, p.Compose.Ranges, 3)
	assert.Equal(t, []string{"src/App.jsx"}, p.Analyze.Inputs)
	require.NotNil(t, p.ReturnPattern())
	assert.True(t, p.ReturnPattern().MatchString("x\n  return (\n"))
	assert.Empty(t, p.Location())
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		validate func(t *testing.T, p *Plan)
	}{
		{
			name: "hcl",
			file: "plan.hcl",
			content: `
input  = "web/Main.jsx"
anchor = "function Main() {"

blocks = {
  "extract.helpers" = "blocks/helpers.jsx"
}

split {
  output     = "web/Main_partial.jsx"
  body_start = 10
  jsx_start  = 20
  import_at  = 3
}

compose {
  dedent = 4
  range "handlers" {
    start = 11
    end   = 15
  }
}
`,
			validate: func(t *testing.T, p *Plan) {
				dir := filepath.Dir(p.Location())
				assert.Equal(t, filepath.Join(dir, "web/Main.jsx"), p.Input)
				assert.Equal(t, "function Main() {", p.Anchor)
				assert.Equal(t, filepath.Join(dir, "web/Main_partial.jsx"), p.Split.Output)
				assert.Equal(t, 10, p.Split.BodyStart)
				assert.Equal(t, 20, p.Split.JSXStart)
				assert.Equal(t, 3, p.Split.ImportAt)
				assert.Equal(t, 4, p.Compose.Dedent)
				require.Len(t, p.Compose.Ranges, 1)
				assert.Equal(t, LineRange{Name: "handlers", Start: 11, End: 15}, p.Compose.Ranges[0])
				assert.Equal(t, filepath.Join(dir, "blocks/helpers.jsx"), p.Blocks["extract.helpers"])
				// untouched sections keep defaults
				assert.Equal(t, filepath.Join(dir, DefaultExtractOutput), p.Extract.Output)
				assert.Equal(t, []string{filepath.Join(dir, "web/Main.jsx")}, p.Analyze.Inputs)
			},
		},
		{
			name: "hcl_variables",
			file: "plan.hcl",
			content: `
input  = default_input
anchor = default_anchor
`,
			validate: func(t *testing.T, p *Plan) {
				assert.Equal(t, filepath.Join(filepath.Dir(p.Location()), DefaultInput), p.Input)
				assert.Equal(t, DefaultAnchor, p.Anchor)
			},
		},
		{
			name: "yaml",
			file: "plan.yaml",
			content: `
input: src/Page.jsx
extract:
  output: out/page.tmp
  return_pattern: '\n\treturn \('
analyze:
  inputs: ["src/**/*.jsx"]
  report: out/analysis.txt
  parallelism: 2
`,
			validate: func(t *testing.T, p *Plan) {
				dir := filepath.Dir(p.Location())
				assert.Equal(t, filepath.Join(dir, "out/page.tmp"), p.Extract.Output)
				assert.True(t, p.ReturnPattern().MatchString("\n\treturn ("))
				assert.Equal(t, []string{filepath.Join(dir, "src/**/*.jsx")}, p.Analyze.Inputs)
				assert.Equal(t, filepath.Join(dir, "out/analysis.txt"), p.Analyze.Report)
				assert.Equal(t, 2, p.Analyze.Parallelism)
			},
		},
		{
			name:    "json",
			file:    "plan.json",
			content: `{"input": "/abs/App.jsx", "compose": {"header_end": 5, "jsx_start": 9}}`,
			validate: func(t *testing.T, p *Plan) {
				assert.Equal(t, "/abs/App.jsx", p.Input)
				assert.Equal(t, 5, p.Compose.HeaderEnd)
				assert.Equal(t, 9, p.Compose.JSXStart)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, tt.file, tt.content)
			p, err := LoadFile(testContext(t), path)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unknown_yaml_field", file: "p.yaml", content: "inptu: x\n", wantErr: "parsing YAML"},
		{name: "unknown_json_field", file: "p.json", content: `{"inptu": "x"}`, wantErr: "parsing JSON"},
		{name: "unknown_hcl_attribute", file: "p.hcl", content: `inptu = "x"`, wantErr: "decoding HCL"},
		{name: "bad_hcl", file: "p.hcl", content: `input = `, wantErr: "parsing HCL"},
		{name: "bad_extension", file: "p.toml", content: ``, wantErr: "unsupported file extension"},
		{name: "output_is_input", file: "p.yaml", content: "input: a.jsx\nsplit:\n  output: a.jsx\n", wantErr: "split.output must not be the input"},
		{name: "shared_candidate_output", file: "p.yaml", content: "extract:\n  output: out.jsx\ncompose:\n  output: out.jsx\n", wantErr: "compose.output and extract.output must not share the path"},
		{name: "shared_unclean_output", file: "p.yaml", content: "split:\n  output: out/a.jsx\ncompose:\n  output: out/../out/a.jsx\n", wantErr: "compose.output and split.output must not share the path"},
		{name: "report_is_candidate", file: "p.json", content: `{"split": {"output": "x.jsx"}, "analyze": {"report": "x.jsx"}}`, wantErr: "analyze.report and split.output must not share the path"},
		{name: "inverted_split", file: "p.yaml", content: "split:\n  body_start: 50\n  jsx_start: 10\n", wantErr: "body_start"},
		{name: "import_after_body", file: "p.yaml", content: "split:\n  body_start: 5\n  jsx_start: 10\n  import_at: 7\n", wantErr: "import_at"},
		{name: "bad_pattern", file: "p.yaml", content: "extract:\n  return_pattern: '('\n", wantErr: "return_pattern"},
		{name: "bad_range", file: "p.json", content: `{"compose": {"ranges": [{"name": "x", "start": 9, "end": 2}]}}`, wantErr: `compose range "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, tt.file, tt.content)
			_, err := LoadFile(testContext(t), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("built_in", func(t *testing.T) {
		t.Setenv(EnvPlan, "")
		p, err := Resolve(testContext(t), "")
		require.NoError(t, err)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, DefaultInput), p.Input)
		assert.Empty(t, p.Location())
	})

	t.Run("from_env", func(t *testing.T) {
		path := writePlan(t, "env.yaml", "input: env.jsx\n")
		t.Setenv(EnvPlan, path)

		p, err := Resolve(testContext(t), "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "env.jsx"), p.Input)
	})

	t.Run("flag_wins_over_env", func(t *testing.T) {
		t.Setenv(EnvPlan, writePlan(t, "env.yaml", "input: env.jsx\n"))
		path := writePlan(t, "flag.yaml", "input: flag.jsx\n")

		p, err := Resolve(testContext(t), path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "flag.jsx"), p.Input)
	})
}
