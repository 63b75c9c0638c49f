// Package tokenize splits logical command strings into argument vectors
// using native Windows command-line quoting rules.
//
// The splitting follows the CommandLineToArgvW conventions: backslashes are
// literal unless they precede a quote, 2n backslashes before a quote
// collapse to n literal backslashes plus a quote delimiter, 2n+1 collapse to
// n literal backslashes plus a literal quote, and quotes toggle whether
// whitespace separates arguments. Empty quoted arguments are preserved.
package tokenize

import "strings"

// executable path suffixes recognized by the reassembly pass.
var executableSuffixes = []string{".exe", ".com", ".cmd", ".bat"}

// Split tokenizes line into arguments and repairs unquoted executable paths
// containing embedded spaces.
func Split(line string) []string {
	return reassembleExecutable(splitArguments(line))
}

// splitArguments is a single left-to-right scan with three pieces of local
// state: an in-quotes flag, a pending backslash run, and an
// argument-in-progress flag.
func splitArguments(line string) []string {
	args := make([]string, 0, 16)
	var current strings.Builder
	inQuotes := false
	pending := 0 // buffered backslashes; meaning depends on what follows
	inArg := false

	flushBackslashes := func(count int) {
		for i := 0; i < count; i++ {
			current.WriteByte('\\')
		}
		if count > 0 {
			inArg = true
		}
	}

	closeArg := func() {
		if inArg {
			args = append(args, current.String())
			current.Reset()
			inArg = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			pending++
		case c == '"':
			flushBackslashes(pending / 2)
			if pending%2 == 0 {
				inQuotes = !inQuotes
			} else {
				current.WriteByte('"')
			}
			pending = 0
			inArg = true
		case (c == ' ' || c == '\t') && !inQuotes:
			flushBackslashes(pending)
			pending = 0
			closeArg()
		default:
			flushBackslashes(pending)
			pending = 0
			current.WriteByte(c)
			inArg = true
		}
	}

	flushBackslashes(pending)
	closeArg()
	return args
}

// reassembleExecutable re-joins a fragmented first token when it looks like
// an unquoted absolute executable path with embedded spaces: it contains a
// drive-letter colon but does not end in an executable suffix. Following
// tokens are space-joined until the result ends with such a suffix or input
// is exhausted.
func reassembleExecutable(args []string) []string {
	if len(args) == 0 {
		return args
	}
	first := args[0]
	if !strings.Contains(first, ":") || isExecutablePath(first) {
		return args
	}

	joined := first
	consumed := 1
	for consumed < len(args) {
		joined += " " + args[consumed]
		consumed++
		if isExecutablePath(joined) {
			break
		}
	}

	result := make([]string, 0, len(args)-consumed+1)
	result = append(result, joined)
	result = append(result, args[consumed:]...)
	return result
}

func isExecutablePath(s string) bool {
	lower := strings.ToLower(s)
	for _, suffix := range executableSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
