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

// Package blocks holds the hand-authored replacement text that the
// transformations splice into their output. Blocks are never derived from the
// source file. Shared fragments (hook destructuring, ui state) are pulled into
// blocks with [[ template "name.jsx" ]].
package blocks

import (
	"context"
	"embed"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

//go:embed templates/*.jsx
var templatesFS embed.FS

// Block names
const (
	ExtractHeader       = "extract.header"
	ExtractHelpers      = "extract.helpers"
	SplitImports        = "split.imports"
	SplitDeclarations   = "split.declarations"
	ComposeDeclarations = "compose.declarations"
	ComposeHandlers     = "compose.handlers"
	ComposeEffects      = "compose.effects"
)

// ErrUnknownBlock is returned for a block name that is not registered
var ErrUnknownBlock = errors.Base("unknown block")

var registry = map[string]string{
	ExtractHeader:       "extract_header.jsx",
	ExtractHelpers:      "extract_helpers.jsx",
	SplitImports:        "hook_imports.jsx",
	SplitDeclarations:   "split_declarations.jsx",
	ComposeDeclarations: "compose_declarations.jsx",
	ComposeHandlers:     "compose_handlers.jsx",
	ComposeEffects:      "compose_effects.jsx",
}

// Names returns every registered block name in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateExt marks an override file whose [[ ]] actions are expanded.
// Any other override is used as literal text.
const TemplateExt = ".tmpl"

// 📦 Set renders named blocks, preferring override files over the embedded text
type Set struct {
	tmpl      *template.Template
	literal   map[string]string
	templated map[string]bool
}

func overrideTemplateName(name string) string {
	return "override:" + name
}

// New parses the embedded blocks plus any overrides (block name -> file path).
// Overrides ending in TemplateExt may include the embedded partials.
func New(ctx context.Context, overrides map[string]string) (*Set, error) {
	tmpl, err := template.New("blocks").
		Delims("[[", "]]").
		Option("missingkey=error").
		ParseFS(templatesFS, "templates/*.jsx")
	if err != nil {
		return nil, errors.Errorf("parsing embedded blocks: %w", err)
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	set := &Set{tmpl: tmpl, literal: map[string]string{}, templated: map[string]bool{}}
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return nil, errors.Errorf("%w: %q", ErrUnknownBlock, name)
		}

		path := overrides[name]
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading override for %s: %w", name, err)
		}

		isTemplate := strings.HasSuffix(path, TemplateExt)
		if isTemplate {
			if _, err := tmpl.New(overrideTemplateName(name)).Parse(string(data)); err != nil {
				return nil, errors.Errorf("parsing override for %s: %w", name, err)
			}
			set.templated[name] = true
		} else {
			set.literal[name] = string(data)
		}

		zerolog.Ctx(ctx).Debug().Str("block", name).Str("path", path).Bool("template", isTemplate).Msg("using block override")
	}

	return set, nil
}

// Render returns the text of the named block
func (s *Set) Render(name string) (string, error) {
	file, ok := registry[name]
	if !ok {
		return "", errors.Errorf("%w: %q", ErrUnknownBlock, name)
	}

	if text, ok := s.literal[name]; ok {
		return text, nil
	}

	tmplName := file
	if s.templated[name] {
		tmplName = overrideTemplateName(name)
	}

	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, tmplName, nil); err != nil {
		return "", errors.Errorf("rendering block %s: %w", name, err)
	}
	return b.String(), nil
}
