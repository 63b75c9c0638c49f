//go:build property
// +build property

package tokenize

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// quoteArgument encodes one argument so that splitArguments recovers it:
// the argument is wrapped in quotes, embedded quotes are backslash-escaped,
// and backslash runs before a quote or at the end are doubled.
func quoteArgument(arg string) string {
	var b strings.Builder
	b.WriteByte('"')
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			backslashes++
		case '"':
			b.WriteString(strings.Repeat(`\`, backslashes*2+1))
			b.WriteByte('"')
			backslashes = 0
		default:
			b.WriteString(strings.Repeat(`\`, backslashes))
			b.WriteByte(c)
			backslashes = 0
		}
	}
	b.WriteString(strings.Repeat(`\`, backslashes*2))
	b.WriteByte('"')
	return b.String()
}

// TestSplitProperties tests invariant properties of the argument splitter.
func TestSplitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	argGen := gen.SliceOf(gen.RegexMatch(`^[ a-zA-Z0-9_\\/.:"-]{0,12}$`))

	// Property 1: quoting then splitting recovers the original arguments.
	properties.Property("quote then split round-trips", prop.ForAll(
		func(args []string) bool {
			if len(args) == 0 {
				return true
			}

			quoted := make([]string, len(args))
			for i, arg := range args {
				quoted[i] = quoteArgument(arg)
			}

			got := splitArguments(strings.Join(quoted, " "))
			if len(got) != len(args) {
				return false
			}
			for i := range args {
				if got[i] != args[i] {
					return false
				}
			}
			return true
		},
		argGen,
	))

	// Property 2: splitting never invents quote characters.
	properties.Property("unescaped quotes are delimiters", prop.ForAll(
		func(words []string) bool {
			line := strings.Join(words, " ")
			if strings.Contains(line, `\`) {
				return true
			}
			total := 0
			for _, tok := range splitArguments(line) {
				total += strings.Count(tok, `"`)
			}
			// Without backslash escapes every quote toggles state and is
			// consumed by the splitter.
			return total == 0
		},
		gen.SliceOf(gen.RegexMatch(`^["a-z ]{0,10}$`)),
	))

	// Property 3: whitespace-only input yields no arguments.
	properties.Property("blank input yields nothing", prop.ForAll(
		func(spaces uint8) bool {
			line := strings.Repeat(" ", int(spaces%16)) + strings.Repeat("\t", int(spaces%4))
			return len(Split(line)) == 0
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
