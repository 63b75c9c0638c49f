// Package logscan reassembles compiler invocations from an MSBuild log.
//
// The log dialect wraps long invocations across physical lines with no
// explicit continuation marker; the only reliable anchor is that a command
// always terminates in its source file argument. The scanner is a two-state
// machine (idle, accumulating) that merges wrapped commands back into one
// logical command string.
package logscan

import (
	"bufio"
	"io"
	"strings"

	"github.com/conneroisu/ms2cc/internal/errors"
	"github.com/conneroisu/ms2cc/internal/pathutil"
)

// Scanner yields logical compiler invocations from a build log, one per
// Next call.
type Scanner struct {
	reader     *bufio.Reader
	logPath    string
	executable string // lower-cased compiler executable name
	extensions *pathutil.ExtensionSet
	pending    string
	accum      bool
	done       bool
}

// NewScanner wraps r, which supplies the log at logPath. Matching against
// compilerExecutable and fileExtensions is case-insensitive.
func NewScanner(r io.Reader, logPath, compilerExecutable string, fileExtensions []string) *Scanner {
	return &Scanner{
		reader:     bufio.NewReader(r),
		logPath:    logPath,
		executable: strings.ToLower(compilerExecutable),
		extensions: pathutil.NewExtensionSet(fileExtensions),
	}
}

// Next returns the next complete logical command. It returns io.EOF when the
// log is exhausted, a structured error for malformed log sections or read
// failures, and continues past errors on subsequent calls where possible.
func (s *Scanner) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			// The reader is unusable after a hard failure; report it
			// once and end the scan.
			s.done = true
			return "", errors.LogRead(err, s.logPath)
		}
		eof := err == io.EOF
		if eof {
			s.done = true
			if line == "" {
				// An unterminated accumulating buffer is dropped:
				// it never received its source file argument.
				return "", io.EOF
			}
		}

		line = strings.TrimRight(line, "\r\n")
		if command, ok, cmdErr := s.consume(line); ok {
			return command, cmdErr
		}
		if eof {
			return "", io.EOF
		}
	}
}

// consume feeds one physical line through the state machine. It reports
// ok=true when a logical command or an error should be surfaced.
func (s *Scanner) consume(line string) (string, bool, error) {
	lower := strings.ToLower(line)

	if s.accum {
		s.pending += " " + line

		// Completion is decided from the newest physical line alone,
		// never the whole buffer, so continuation lines that merely
		// mention a source file mid-command do not terminate early.
		if s.extensions.MatchesSuffix(line) {
			command := s.pending
			s.reset()
			return command, true, nil
		}

		if containsExecutable(lower, s.executable) {
			err := errors.UnexpectedLine(line, s.pending)
			s.reset()
			return "", true, err
		}
		return "", false, nil
	}

	if !containsExecutable(lower, s.executable) {
		return "", false, nil
	}

	if s.extensions.MatchesSuffix(line) {
		return line, true, nil
	}

	s.pending = line
	s.accum = true
	return "", false, nil
}

func (s *Scanner) reset() {
	s.pending = ""
	s.accum = false
}

// containsExecutable reports whether lowerLine contains executable as a
// whole token: delimited by start/end of line, whitespace, quotes, path
// separators, or parentheses. This keeps "decl.exe" from matching "cl.exe"
// while still matching "c:\tools\cl.exe".
func containsExecutable(lowerLine, executable string) bool {
	if executable == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(lowerLine[start:], executable)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(lowerLine, i) && boundaryAfter(lowerLine, i+len(executable)) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(line string, i int) bool {
	if i == 0 {
		return true
	}
	switch line[i-1] {
	case ' ', '\t', '"', '\'', '\\', '/', '(':
		return true
	}
	return false
}

func boundaryAfter(line string, i int) bool {
	if i == len(line) {
		return true
	}
	switch line[i] {
	case ' ', '\t', '"', '\'', ')':
		return true
	}
	return false
}
