// Package pathutil provides the path normalization helpers shared by every
// pipeline stage.
//
// All case-insensitive matching in the tool is implemented by lower-casing
// once at ingestion boundaries (index insertion, extension checks, directory
// name comparison) so the hot comparison paths stay allocation-free.
package pathutil

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/conneroisu/ms2cc/internal/errors"
)

// Normalize lower-cases a filesystem path for case-insensitive comparison.
// Paths that are not valid UTF-8 cannot be normalized and yield a
// PathNormalization error.
func Normalize(path string) (string, error) {
	if !utf8.ValidString(path) {
		return "", errors.PathNormalization(path)
	}
	return strings.ToLower(path), nil
}

// FileName returns the final component of path, treating both forward and
// backward slashes as separators. Build logs mix native Windows separators
// with relative forward-slash paths, so filepath.Base alone is not enough.
func FileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SourceFileName extracts the lower-cased file name component of arg and
// validates that it carries an extension. Arguments without a file name or
// without an extension are not source file candidates.
func SourceFileName(arg string) (string, error) {
	lower := strings.ToLower(arg)
	name := FileName(lower)
	if name == "" || name == "." || name == ".." {
		return "", errors.MissingFileName(arg)
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return "", errors.MissingExtension(arg)
	}
	return name, nil
}

// ExtensionSet is a case-insensitive membership set of file extensions,
// stored without the leading dot.
type ExtensionSet struct {
	exts map[string]struct{}
	list []string
}

// NewExtensionSet builds a set from the configured extensions. Entries are
// lower-cased and leading dots stripped, so "cpp" and ".CPP" are equivalent.
func NewExtensionSet(extensions []string) *ExtensionSet {
	s := &ExtensionSet{exts: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.ToLower(ext), ".")
		if ext == "" {
			continue
		}
		if _, ok := s.exts[ext]; ok {
			continue
		}
		s.exts[ext] = struct{}{}
		s.list = append(s.list, ext)
	}
	return s
}

// Allows reports whether the extension of path is in the set.
func (s *ExtensionSet) Allows(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	_, ok := s.exts[ext]
	return ok
}

// MatchesSuffix reports whether line, after trimming trailing whitespace and
// quote characters, ends with one of the set's extensions. This is the check
// the log scanner uses to decide that a (possibly multi-line) compiler
// invocation is complete: the compiler always places the source file last.
func (s *ExtensionSet) MatchesSuffix(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	trimmed = strings.TrimRight(trimmed, `"'`)
	trimmed = strings.ToLower(trimmed)
	for _, ext := range s.list {
		if strings.HasSuffix(trimmed, "."+ext) {
			return true
		}
	}
	return false
}

// Extensions returns the normalized extensions in insertion order.
func (s *ExtensionSet) Extensions() []string {
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}
