// Package resolve turns tokenized compiler invocations into compilation
// database records.
//
// The hard part is reconstructing an authoritative absolute path for each
// trailing source file argument, which the log records bare or relative. The
// resolver consults the filename index built during phase one and falls back
// to probing around the /Fo output-directory argument when the index cannot
// help.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/ms2cc/internal/errors"
	"github.com/conneroisu/ms2cc/internal/index"
	"github.com/conneroisu/ms2cc/internal/pathutil"
	"github.com/conneroisu/ms2cc/internal/types"
)

// foPrefix is the compiler flag naming an output-object location. It is used
// only as a path reconstruction hint when no better information exists.
const foPrefix = "/Fo"

// Outcome is one result per trailing source file argument: either a finished
// record or a structured error, never both.
type Outcome struct {
	Command *types.CompileCommand
	Err     error
}

// Resolver converts token vectors into compile commands using the read-only
// file index.
type Resolver struct {
	index *index.FileIndex
}

// NewResolver creates a resolver backed by idx.
func NewResolver(idx *index.FileIndex) *Resolver {
	return &Resolver{index: idx}
}

// Resolve produces one outcome per trailing source file argument of tokens,
// in argument order. An empty vector yields a single EmptyTokenVector
// outcome; a vector with no qualifying trailing arguments yields a single
// MissingTrailingFile outcome.
func (r *Resolver) Resolve(tokens []string) []Outcome {
	if len(tokens) == 0 {
		return []Outcome{{Err: errors.EmptyTokenVector()}}
	}

	// Scan backward until the first argument that does not look like a
	// source file (no file name or no extension).
	start := len(tokens)
	for start > 0 {
		if _, err := pathutil.SourceFileName(tokens[start-1]); err != nil {
			break
		}
		start--
	}
	if start == len(tokens) {
		return []Outcome{{Err: errors.MissingTrailingFile(tokens)}}
	}

	outcomes := make([]Outcome, 0, len(tokens)-start)
	for _, arg := range tokens[start:] {
		path, err := r.resolveSourcePath(tokens, arg)
		if err != nil {
			outcomes = append(outcomes, Outcome{Err: err})
			continue
		}
		command, err := newCompileCommand(path, tokens)
		if err != nil {
			outcomes = append(outcomes, Outcome{Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Command: command})
	}
	return outcomes
}

// resolveSourcePath computes the absolute path of one source file argument.
// Candidates are tried in order: the argument itself if absolute, the
// indexed unique parent, then paths probed upward from the /Fo argument.
func (r *Resolver) resolveSourcePath(tokens []string, arg string) (string, error) {
	fileName, err := pathutil.SourceFileName(arg)
	if err != nil {
		return "", err
	}

	var path string
	switch {
	case filepath.IsAbs(arg):
		path = arg
	default:
		if parent, ok := r.index.Lookup(fileName); ok {
			path = filepath.Join(parent, fileName)
		}
	}

	if !filepath.IsAbs(path) {
		foArgument, ok := findFoArgument(tokens)
		if !ok {
			return "", errors.MissingFoArgument(tokens)
		}
		foPath, err := extractFoPath(foArgument)
		if err != nil {
			return "", err
		}
		path = probeFromFoPath(foPath, fileName, arg, path)
	}

	if !filepath.IsAbs(path) || !isRegularFile(path) {
		return "", errors.UnresolvedSourcePath(fileName, tokens)
	}
	return path, nil
}

// probeFromFoPath walks upward from the /Fo path, testing each ancestor
// joined with the bare file name and with the argument as given. The first
// existing file wins; running out of components leaves the previous
// candidate in place.
func probeFromFoPath(foPath, fileName, arg, fallback string) string {
	dir := foPath
	for filepath.IsAbs(dir) {
		candidate := filepath.Join(dir, fileName)
		if isRegularFile(candidate) {
			return candidate
		}
		candidate = filepath.Join(dir, arg)
		if isRegularFile(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if fallback == "" {
		return dir
	}
	return fallback
}

// findFoArgument locates the first token that textually starts with /Fo.
func findFoArgument(tokens []string) (string, bool) {
	for _, token := range tokens {
		if strings.HasPrefix(token, foPrefix) {
			return token, true
		}
	}
	return "", false
}

// extractFoPath strips the /Fo prefix and normalizes the remaining path,
// which may name a directory or an object file.
func extractFoPath(argument string) (string, error) {
	path := strings.TrimPrefix(argument, foPrefix)
	if path == "" {
		return "", errors.InvalidFoArgument(argument)
	}
	normalized, err := pathutil.Normalize(path)
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// newCompileCommand splits an absolute source path into directory and file
// name and attaches the original, unmodified argument vector so the record
// stays faithful to what the compiler actually received.
func newCompileCommand(path string, tokens []string) (*types.CompileCommand, error) {
	directory := filepath.Dir(path)
	if directory == path || directory == "" {
		return nil, errors.MissingParent(path)
	}
	fileName := filepath.Base(path)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, errors.MissingFileName(path)
	}
	arguments := make([]string, len(tokens))
	copy(arguments, tokens)
	return &types.CompileCommand{
		File:      fileName,
		Directory: directory,
		Arguments: arguments,
	}, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
