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

package output

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrWouldOverwriteInput is returned when an output path resolves to a protected input
var ErrWouldOverwriteInput = errors.Base("output would overwrite input")

// 📊 Status represents what a write did to the output path
type Status int

const (
	StatusUnknown   Status = iota
	StatusNew              // output did not exist
	StatusModified         // output existed with different content
	StatusUnchanged        // output existed with identical content
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 📄 Result describes a completed write
type Result struct {
	Path     string // Absolute output path
	Status   Status // What happened to the file
	Size     int    // Bytes written
	Lines    int    // Number of lines written
	Checksum string // SHA-256 of the written content
	Diff     string // Line diff against the previous content, only when requested and modified
}

// 💾 Writer writes candidate files next to their input, never over it
type Writer struct {
	diff bool
}

// NewWriter creates a writer. When diff is set, modified outputs carry a line diff.
func NewWriter(diff bool) *Writer {
	return &Writer{diff: diff}
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// resolve returns the canonical form of path, following symlinks on whatever
// prefix of it exists.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("getting absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// SamePath reports whether a and b name the same file
func SamePath(a, b string) (bool, error) {
	ra, err := resolve(a)
	if err != nil {
		return false, err
	}
	rb, err := resolve(b)
	if err != nil {
		return false, err
	}
	if ra == rb {
		return true, nil
	}

	ia, errA := os.Stat(ra)
	ib, errB := os.Stat(rb)
	if errA == nil && errB == nil {
		return os.SameFile(ia, ib), nil
	}
	return false, nil
}

// 📝 Write writes content to path atomically. It refuses to write when path
// names any of the protected files.
func (w *Writer) Write(ctx context.Context, path string, content []byte, protected ...string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	for _, p := range protected {
		same, err := SamePath(path, p)
		if err != nil {
			return nil, errors.Errorf("comparing %s with %s: %w", path, p, err)
		}
		if same {
			return nil, errors.Errorf("%w: %s", ErrWouldOverwriteInput, p)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("getting absolute output path: %w", err)
	}

	result := &Result{
		Path:     abs,
		Status:   StatusNew,
		Size:     len(content),
		Lines:    bytes.Count(content, []byte("\n")) + 1,
		Checksum: calculateChecksum(content),
	}

	previous, err := os.ReadFile(abs)
	switch {
	case err == nil:
		if calculateChecksum(previous) == result.Checksum {
			result.Status = StatusUnchanged
		} else {
			result.Status = StatusModified
			if w.diff {
				result.Diff = LineDiff(string(previous), string(content))
			}
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Errorf("reading previous output: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, errors.Errorf("creating parent directories: %w", err)
	}

	if err := writeFileAtomic(abs, content); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", abs).
		Str("status", result.Status.String()).
		Int("size", result.Size).
		Str("checksum", result.Checksum).
		Msg("wrote output")

	return result, nil
}

func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()
	defer os.Remove(tempPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return errors.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
