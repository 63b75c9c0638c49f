// Package types defines the shared data structures exchanged between the
// pipeline stages and the output writer.
package types

// CompileCommand is a single entry of a compilation database in the standard
// compile_commands.json convention: the compiled file, the working directory
// the compiler ran in, and the argument vector exactly as the compiler
// received it.
type CompileCommand struct {
	// File is the source file name, relative to Directory.
	File string `json:"file" yaml:"file"`
	// Directory is the absolute working directory for the invocation.
	Directory string `json:"directory" yaml:"directory"`
	// Arguments holds the original, unmodified compiler argument vector.
	Arguments []string `json:"arguments" yaml:"arguments"`
}

// Equal reports whether two compile commands carry identical content,
// including argument order.
func (c CompileCommand) Equal(other CompileCommand) bool {
	if c.File != other.File || c.Directory != other.Directory {
		return false
	}
	if len(c.Arguments) != len(other.Arguments) {
		return false
	}
	for i, arg := range c.Arguments {
		if arg != other.Arguments[i] {
			return false
		}
	}
	return true
}
