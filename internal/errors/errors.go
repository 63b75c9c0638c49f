// Package errors defines the structured error values produced while
// translating MSBuild logs into compile_commands.json entries.
//
// Every fallible operation in the pipeline reports one of a closed set of
// error kinds instead of interrupting control flow. Errors carry the
// offending path, argument, or log line so higher layers can display
// friendly diagnostics without stringly-typed plumbing. A pipeline run never
// aborts on these values; they are forwarded to a Collector and reported
// after each phase.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the category of a pipeline error. The set is closed so
// callers can branch on error kind rather than matching message text.
type Kind int

const (
	// KindIo is a generic I/O failure tagged with the offending path.
	KindIo Kind = iota
	// KindMissingFileName marks a path without a file name component.
	KindMissingFileName
	// KindMissingExtension marks a file name without an extension.
	KindMissingExtension
	// KindMissingParent marks a path without a parent directory.
	KindMissingParent
	// KindInvalidFoArgument marks a /Fo argument with no usable path.
	KindInvalidFoArgument
	// KindMissingFoArgument marks an invocation with no /Fo argument to
	// fall back on during path resolution.
	KindMissingFoArgument
	// KindPathNormalization marks a path that could not be lower-cased
	// because it is not valid UTF-8.
	KindPathNormalization
	// KindUnexpectedEntry marks a directory entry that is neither a
	// regular file nor a directory.
	KindUnexpectedEntry
	// KindLogRead is an I/O failure while reading the build log.
	KindLogRead
	// KindEmptyTokenVector marks an invocation with no tokens at all.
	KindEmptyTokenVector
	// KindMissingTrailingFile marks an invocation whose trailing arguments
	// contain no source file.
	KindMissingTrailingFile
	// KindUnexpectedLine marks a new compiler invocation that started
	// before the previous multi-line command finished.
	KindUnexpectedLine
	// KindUnresolvedSourcePath marks a source argument that could not be
	// resolved to an existing absolute file.
	KindUnresolvedSourcePath
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIo:
		return "io"
	case KindMissingFileName:
		return "missing-file-name"
	case KindMissingExtension:
		return "missing-extension"
	case KindMissingParent:
		return "missing-parent"
	case KindInvalidFoArgument:
		return "invalid-fo-argument"
	case KindMissingFoArgument:
		return "missing-fo-argument"
	case KindPathNormalization:
		return "path-normalization"
	case KindUnexpectedEntry:
		return "unexpected-entry"
	case KindLogRead:
		return "log-read"
	case KindEmptyTokenVector:
		return "empty-token-vector"
	case KindMissingTrailingFile:
		return "missing-trailing-file"
	case KindUnexpectedLine:
		return "unexpected-line"
	case KindUnresolvedSourcePath:
		return "unresolved-source-path"
	default:
		return "unknown"
	}
}

// Error is a structured error value covering filesystem failures, log
// structure problems, and path resolution failures. Only the fields relevant
// to the Kind are populated.
type Error struct {
	Kind Kind
	// Path is the filesystem path the error refers to, if any.
	Path string
	// Argument is the offending argument for /Fo failures.
	Argument string
	// Arguments is the full token vector for resolution failures.
	Arguments []string
	// Line is the offending log line for log structure errors.
	Line string
	// Partial is the accumulated command text abandoned on an
	// unexpected line.
	Partial string
	// Err is the wrapped cause for I/O failures.
	Err error
}

// Error implements the error interface with a message per kind.
func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingFileName:
		return fmt.Sprintf("path %q is missing a file name component", e.Path)
	case KindMissingExtension:
		return fmt.Sprintf("path %q is missing an extension", e.Path)
	case KindMissingParent:
		return fmt.Sprintf("path %q is missing a parent directory", e.Path)
	case KindInvalidFoArgument:
		return fmt.Sprintf("invalid /Fo argument: %s", e.Argument)
	case KindMissingFoArgument:
		return fmt.Sprintf("missing /Fo argument in compile arguments: %q", e.Arguments)
	case KindPathNormalization:
		return fmt.Sprintf("failed to normalize path %q", e.Path)
	case KindUnexpectedEntry:
		return fmt.Sprintf("encountered unexpected directory entry %q", e.Path)
	case KindLogRead:
		return fmt.Sprintf("failed to read log %q: %v", e.Path, e.Err)
	case KindEmptyTokenVector:
		return "token vector is empty"
	case KindMissingTrailingFile:
		return fmt.Sprintf("missing trailing source file in arguments: %q", e.Arguments)
	case KindUnexpectedLine:
		return fmt.Sprintf("unexpected line %q while building compile command %q", e.Line, e.Partial)
	case KindUnresolvedSourcePath:
		return fmt.Sprintf("failed to resolve source path for %q with arguments %q", e.Path, e.Arguments)
	default:
		return fmt.Sprintf("I/O error for %q: %v", e.Path, e.Err)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by kind so callers can compare against a sentinel value
// such as &Error{Kind: KindLogRead}.
func (e *Error) Is(target error) bool {
	var t *Error
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IoError wraps a raw I/O error together with the path that triggered it.
func IoError(err error, path string) *Error {
	return &Error{Kind: KindIo, Path: path, Err: err}
}

// LogRead wraps a read failure on the build log at path.
func LogRead(err error, path string) *Error {
	return &Error{Kind: KindLogRead, Path: path, Err: err}
}

// MissingFileName reports a path without a file name component.
func MissingFileName(path string) *Error {
	return &Error{Kind: KindMissingFileName, Path: path}
}

// MissingExtension reports a file name without an extension.
func MissingExtension(path string) *Error {
	return &Error{Kind: KindMissingExtension, Path: path}
}

// MissingParent reports a path without a parent directory.
func MissingParent(path string) *Error {
	return &Error{Kind: KindMissingParent, Path: path}
}

// InvalidFoArgument reports a /Fo argument that carries no usable path.
func InvalidFoArgument(argument string) *Error {
	return &Error{Kind: KindInvalidFoArgument, Argument: argument}
}

// MissingFoArgument reports an invocation with no /Fo argument.
func MissingFoArgument(arguments []string) *Error {
	return &Error{Kind: KindMissingFoArgument, Arguments: arguments}
}

// PathNormalization reports a path that could not be normalized.
func PathNormalization(path string) *Error {
	return &Error{Kind: KindPathNormalization, Path: path}
}

// UnexpectedEntry reports a directory entry that is neither a regular file
// nor a directory.
func UnexpectedEntry(path string) *Error {
	return &Error{Kind: KindUnexpectedEntry, Path: path}
}

// EmptyTokenVector reports an empty invocation.
func EmptyTokenVector() *Error {
	return &Error{Kind: KindEmptyTokenVector}
}

// MissingTrailingFile reports an invocation without a trailing source file.
func MissingTrailingFile(arguments []string) *Error {
	return &Error{Kind: KindMissingTrailingFile, Arguments: arguments}
}

// UnexpectedLine reports a new compiler invocation interrupting an
// unfinished multi-line command.
func UnexpectedLine(line, partial string) *Error {
	return &Error{Kind: KindUnexpectedLine, Line: line, Partial: partial}
}

// UnresolvedSourcePath reports a source argument that resolved to nothing.
func UnresolvedSourcePath(file string, arguments []string) *Error {
	return &Error{Kind: KindUnresolvedSourcePath, Path: file, Arguments: arguments}
}
